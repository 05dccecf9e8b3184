// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"encoding/json"
	"errors"
	"fmt"
)

type argKind int

const (
	namedArg argKind = iota
	freeArg
	actionArg
)

// An Arg describes one argument: a named option or switch, a free
// (positional) argument, or an action.
//
// An Arg is built with NewNamed, NewFree or NewAction and the builder methods
// below, then registered exactly once with Resolver.Register. After
// registration only aliases may be added.
type Arg struct {
	name     string
	info     string
	meta     string
	kind     argKind
	required bool
	typ      Type
	arity    Arity
	action   ActionFunc
	def      any // JSON shape of the default, if hasDef
	hasDef   bool
	explicit bool // default was set by the program rather than implied
	aliases  []string
	r        *Resolver
}

// NewNamed returns a named argument with values of type t.
// A named argument of KindBool is a switch.
func NewNamed(name, info string, t Type) *Arg {
	return &Arg{
		name:  name,
		info:  info,
		meta:  t.Meta(),
		kind:  namedArg,
		typ:   t,
		arity: t.Arity(),
	}
}

// NewFree returns a free argument with values of type t. Free arguments are
// bound by position, in registration order.
func NewFree(name, info string, t Type) *Arg {
	a := NewNamed(name, info, t)
	a.kind = freeArg
	return a
}

// Require marks a as required. It returns a.
func (a *Arg) Require() *Arg {
	a.required = true
	return a
}

// WithMeta sets the type hint shown in help text. It returns a.
func (a *Arg) WithMeta(meta string) *Arg {
	a.meta = meta
	return a
}

// WithDefault sets the default, in JSON shape, reported by help text and
// Resolver.Save. It returns a.
func (a *Arg) WithDefault(v any) *Arg {
	a.def, a.hasDef, a.explicit = v, true, true
	return a
}

// WithAlias adds names that match a in addition to its name.
// Once a is registered, each alias goes through Resolver.AddAlias, and
// WithAlias panics if that fails.
func (a *Arg) WithAlias(names ...string) *Arg {
	for _, n := range names {
		if a.r == nil {
			a.aliases = append(a.aliases, n)
			continue
		}
		if err := a.r.AddAlias(a.name, n); err != nil {
			panic(err)
		}
	}
	return a
}

func (a *Arg) Name() string { return a.name }
func (a *Arg) Info() string { return a.info }
func (a *Arg) Meta() string { return a.meta }
func (a *Arg) Type() Type   { return a.typ }
func (a *Arg) Arity() Arity { return a.arity }

func (a *Arg) IsFree() bool     { return a.kind == freeArg }
func (a *Arg) IsAction() bool   { return a.kind == actionArg }
func (a *Arg) IsRequired() bool { return a.required }
func (a *Arg) IsSwitch() bool   { return a.arity == NoValue }
func (a *Arg) IsMultiple() bool { return a.arity == MultipleValues }

// Aliases returns the alternative names of a, in the order they were added.
func (a *Arg) Aliases() []string {
	return append([]string(nil), a.aliases...)
}

// Names returns the name of a followed by its aliases.
func (a *Arg) Names() []string {
	return append([]string{a.name}, a.aliases...)
}

// Default returns the default of a in JSON shape.
func (a *Arg) Default() (any, bool) {
	return a.def, a.hasDef
}

// Resolver returns the Resolver a is registered with, or nil.
func (a *Arg) Resolver() *Resolver {
	return a.r
}

func (a *Arg) reportedName() string {
	return "Option '" + a.name + "'"
}

func (a *Arg) reportedDefault() string {
	if a.required || !a.explicit {
		return ""
	}
	b, err := json.Marshal(a.def)
	if err != nil {
		return ""
	}
	return " (default value: " + string(b) + ")"
}

// check validates a value for a taken from a JSON document.
func (a *Arg) check(v any) error {
	if a.IsAction() {
		return errors.New("Action argument can not be loaded from config")
	}
	if err := a.typ.Validate(v); err != nil {
		return fmt.Errorf("Failed to load value: %w", err)
	}
	return nil
}

// parse binds one occurrence of a, with value tok, during Resolver.Parse.
func (a *Arg) parse(s *parseState, tok string) error {
	if a.IsAction() {
		return a.action(&ActionContext{s: s, arg: a}, tok)
	}
	if err := a.typ.Accumulate(s.data, a.name, tok); err != nil {
		return fmt.Errorf("Failed to parse value: %w", err)
	}
	return nil
}
