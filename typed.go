// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Char is a single character value. It is distinct from int32 so that
// character arguments can be told apart from integer ones.
type Char rune

// Scalar is the set of Go types a single argument value can have.
// json.RawMessage holds an arbitrary JSON value.
type Scalar interface {
	bool | Char | string | json.RawMessage |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Value is the set of Go types a Var can have: a Scalar, or a slice of one
// for arguments that take multiple values.
type Value interface {
	Scalar |
		[]Char | []string |
		[]int | []int8 | []int16 | []int32 | []int64 |
		[]uint | []uint8 | []uint16 | []uint32 | []uint64 |
		[]float32 | []float64
}

// TypeOf returns the Type corresponding to T.
func TypeOf[T Value]() Type {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Type{Kind: KindBool}
	case Char:
		return Type{Kind: KindChar}
	case string:
		return Type{Kind: KindString}
	case json.RawMessage:
		return Type{Kind: KindJSON}
	case int:
		return Type{Kind: KindInt}
	case int8:
		return Type{Kind: KindInt8}
	case int16:
		return Type{Kind: KindInt16}
	case int32:
		return Type{Kind: KindInt32}
	case int64:
		return Type{Kind: KindInt64}
	case uint:
		return Type{Kind: KindUint}
	case uint8:
		return Type{Kind: KindUint8}
	case uint16:
		return Type{Kind: KindUint16}
	case uint32:
		return Type{Kind: KindUint32}
	case uint64:
		return Type{Kind: KindUint64}
	case float32:
		return Type{Kind: KindFloat32}
	case float64:
		return Type{Kind: KindFloat64}
	case []Char:
		return Type{Kind: KindChar, Multiple: true}
	case []string:
		return Type{Kind: KindString, Multiple: true}
	case []int:
		return Type{Kind: KindInt, Multiple: true}
	case []int8:
		return Type{Kind: KindInt8, Multiple: true}
	case []int16:
		return Type{Kind: KindInt16, Multiple: true}
	case []int32:
		return Type{Kind: KindInt32, Multiple: true}
	case []int64:
		return Type{Kind: KindInt64, Multiple: true}
	case []uint:
		return Type{Kind: KindUint, Multiple: true}
	case []uint8:
		return Type{Kind: KindUint8, Multiple: true}
	case []uint16:
		return Type{Kind: KindUint16, Multiple: true}
	case []uint32:
		return Type{Kind: KindUint32, Multiple: true}
	case []uint64:
		return Type{Kind: KindUint64, Multiple: true}
	case []float32:
		return Type{Kind: KindFloat32, Multiple: true}
	case []float64:
		return Type{Kind: KindFloat64, Multiple: true}
	}
	panic(fmt.Sprintf("argcfg: unsupported type %T", zero))
}

// A Var is a typed view of one argument's resolved value.
//
// A Var is built unattached, configured with its chaining methods, and then
// attached to a Resolver:
//
//	foo := argcfg.Named[int]("foo", "number of foos").Short('f').Required().MustAttach(r)
//	...
//	n := foo.Get()
type Var[T Value] struct {
	arg *Arg
	def T
}

// Named returns an unattached named argument of type T.
func Named[T Value](name, info string) *Var[T] {
	return newVar[T](NewNamed(name, info, TypeOf[T]()))
}

// Switch returns an unattached switch: a named bool argument that takes no
// value and is true when given.
func Switch(name, info string) *Var[bool] {
	return Named[bool](name, info)
}

// Free returns an unattached free argument of type T.
func Free[T Value](name, info string) *Var[T] {
	return newVar[T](NewFree(name, info, TypeOf[T]()))
}

func newVar[T Value](a *Arg) *Var[T] {
	v := &Var[T]{arg: a}
	a.def, a.hasDef = v.encode(v.def), true
	return v
}

func (v *Var[T]) encode(x T) any {
	return v.arg.typ.Encode(reflect.ValueOf(x))
}

// Required marks the argument as required.
func (v *Var[T]) Required() *Var[T] {
	v.arg.Require()
	return v
}

// Short adds the one-character alias c.
func (v *Var[T]) Short(c rune) *Var[T] {
	return v.Alias(string(c))
}

// Alias adds aliases. See Arg.WithAlias.
func (v *Var[T]) Alias(names ...string) *Var[T] {
	v.arg.WithAlias(names...)
	return v
}

// Default sets the value Get returns when the argument has none.
func (v *Var[T]) Default(def T) *Var[T] {
	v.def = def
	v.arg.WithDefault(v.encode(def))
	return v
}

// Meta sets the type hint shown in help text.
func (v *Var[T]) Meta(meta string) *Var[T] {
	v.arg.WithMeta(meta)
	return v
}

// Attach registers the argument with r.
func (v *Var[T]) Attach(r *Resolver) error {
	return r.Register(v.arg)
}

// MustAttach registers the argument with r and returns v.
// It panics if registration fails.
func (v *Var[T]) MustAttach(r *Resolver) *Var[T] {
	r.MustRegister(v.arg)
	return v
}

// Arg returns the underlying argument.
func (v *Var[T]) Arg() *Arg {
	return v.arg
}

// Get returns the resolved value, or the default if there is none.
// It panics if v was never attached.
func (v *Var[T]) Get() T {
	stored, ok := v.value()
	if !ok {
		return v.def
	}
	var x T
	if !v.arg.typ.Extract(stored, reflect.ValueOf(&x).Elem()) {
		return v.def
	}
	return x
}

// IsSet reports whether the argument has a resolved value.
// It panics if v was never attached.
func (v *Var[T]) IsSet() bool {
	_, ok := v.value()
	return ok
}

func (v *Var[T]) value() (any, bool) {
	r := v.arg.r
	if r == nil {
		panic(v.arg.reportedName() + " wasn't added to config")
	}
	x, ok := r.data[v.arg.name]
	return x, ok
}
