// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Parsers and validators for argument values.
//
// Values are kept in the Resolver's store in their JSON shape: bool, string,
// int64, uint64, float64, []any, or whatever encoding/json decodes for the
// JSON kind. Values that come from a loaded document may also be json.Number,
// float64 or any Go integer type; the conversions below accept all of them.

// Kind is the scalar type of an argument's values.
type Kind int

const (
	KindBool Kind = iota
	KindChar
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindJSON
)

// Arity is the number of values an argument consumes.
type Arity int

const (
	NoValue        Arity = iota // a switch
	SingleValue                 // exactly one value
	MultipleValues              // one value per occurrence, any number of occurrences
)

func (a Arity) String() string {
	switch a {
	case NoValue:
		return "none"
	case SingleValue:
		return "single"
	case MultipleValues:
		return "multiple"
	default:
		return fmt.Sprintf("Arity(%d)", int(a))
	}
}

// Type describes the values of an argument: a scalar kind, or a sequence of it.
type Type struct {
	Kind     Kind
	Multiple bool
}

// checkFunc validates a JSON value against a scalar kind.
type checkFunc func(any) error

// parseFunc converts a command-line token into a stored JSON value.
type parseFunc func(string) (any, error)

type scalar struct {
	meta  string
	bits  int
	check checkFunc
	parse parseFunc
}

var scalars = map[Kind]scalar{
	KindBool:    {check: checkBool, parse: parseSwitch},
	KindChar:    {meta: "char", check: checkChar, parse: parseChar},
	KindInt:     {meta: "int", bits: strconv.IntSize},
	KindInt8:    {meta: "int8", bits: 8},
	KindInt16:   {meta: "int16", bits: 16},
	KindInt32:   {meta: "int32", bits: 32},
	KindInt64:   {meta: "int64", bits: 64},
	KindUint:    {meta: "uint", bits: strconv.IntSize},
	KindUint8:   {meta: "uint8", bits: 8},
	KindUint16:  {meta: "uint16", bits: 16},
	KindUint32:  {meta: "uint32", bits: 32},
	KindUint64:  {meta: "uint64", bits: 64},
	KindFloat32: {meta: "float32", bits: 32},
	KindFloat64: {meta: "float64", bits: 64},
	KindString:  {meta: "string", check: checkString, parse: parseString},
	KindJSON:    {meta: "JSON", check: func(any) error { return nil }, parse: parseJSON},
}

func init() {
	// Numeric kinds share their closures, parameterized by width.
	for k, s := range scalars {
		switch {
		case k.signed():
			s.check, s.parse = checkInt(s.bits), parseInt(s.bits)
		case k.unsigned():
			s.check, s.parse = checkUint(s.bits), parseUint(s.bits)
		case k.float():
			s.check, s.parse = checkFloat, parseFloat(s.bits)
		}
		scalars[k] = s
	}
}

func (k Kind) signed() bool   { return k >= KindInt && k <= KindInt64 }
func (k Kind) unsigned() bool { return k >= KindUint && k <= KindUint64 }
func (k Kind) float() bool    { return k == KindFloat32 || k == KindFloat64 }

func (k Kind) String() string {
	if k == KindBool {
		return "bool"
	}
	if s, ok := scalars[k]; ok {
		return s.meta
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arity reports how many values an argument of type t consumes.
func (t Type) Arity() Arity {
	switch {
	case t.Multiple:
		return MultipleValues
	case t.Kind == KindBool:
		return NoValue
	default:
		return SingleValue
	}
}

// Meta returns the type hint shown in help text. Switches have none.
func (t Type) Meta() string {
	return scalars[t.Kind].meta
}

func (t Type) valid() bool {
	_, ok := scalars[t.Kind]
	if !ok {
		return false
	}
	return !t.Multiple || (t.Kind != KindBool && t.Kind != KindJSON)
}

// Validate checks that v, a value from a JSON document, has the shape of t.
// Every element of a sequence is checked.
func (t Type) Validate(v any) error {
	s := scalars[t.Kind]
	if !t.Multiple {
		return s.check(v)
	}
	elems, ok := sliceOf(v)
	if !ok {
		return errors.New("Expected array")
	}
	for _, e := range elems {
		if err := s.check(e); err != nil {
			return fmt.Errorf("%v array", err)
		}
	}
	return nil
}

// ParseToken converts a single command-line token to a stored value.
func (t Type) ParseToken(s string) (any, error) {
	return scalars[t.Kind].parse(s)
}

// Accumulate parses tok and stores it under name: a single value replaces
// what is there, a multiple value is appended to the array.
func (t Type) Accumulate(store map[string]any, name, tok string) error {
	v, err := t.ParseToken(tok)
	if err != nil {
		return err
	}
	if !t.Multiple {
		store[name] = v
		return nil
	}
	prev, _ := store[name].([]any)
	// The full slice expression keeps append from writing into an array
	// shared with another store.
	store[name] = append(prev[:len(prev):len(prev)], v)
	return nil
}

// normalize converts a validated document value into the stored form, the
// one Accumulate produces: int64, uint64 or float64 for numbers and []any
// for arrays.
func (t Type) normalize(v any) any {
	if !t.Multiple {
		return normalizeScalar(t.Kind, v)
	}
	elems, _ := sliceOf(v)
	res := make([]any, len(elems))
	for i, e := range elems {
		res[i] = normalizeScalar(t.Kind, e)
	}
	return res
}

func normalizeScalar(k Kind, v any) any {
	switch {
	case k.signed():
		if i, ok := toInt64(v); ok {
			return i
		}
	case k.unsigned():
		if u, ok := toUint64(v); ok {
			return u
		}
	case k.float():
		if f, ok := toFloat64(v); ok {
			return f
		}
	}
	return v
}

// Extract converts the stored value v into dst, which must have the Go type
// corresponding to t. It reports whether the conversion succeeded.
func (t Type) Extract(v any, dst reflect.Value) bool {
	if !t.Multiple {
		return extractScalar(t.Kind, v, dst)
	}
	elems, ok := sliceOf(v)
	if !ok {
		return false
	}
	s := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
	for i, e := range elems {
		if !extractScalar(t.Kind, e, s.Index(i)) {
			return false
		}
	}
	dst.Set(s)
	return true
}

// Encode converts a Go value of the type corresponding to t into its JSON shape.
func (t Type) Encode(v reflect.Value) any {
	if !t.Multiple {
		return encodeScalar(t.Kind, v)
	}
	res := make([]any, v.Len())
	for i := range res {
		res[i] = encodeScalar(t.Kind, v.Index(i))
	}
	return res
}

func extractScalar(k Kind, v any, dst reflect.Value) bool {
	switch {
	case k == KindBool:
		b, ok := v.(bool)
		dst.SetBool(b)
		return ok
	case k == KindString:
		s, ok := v.(string)
		dst.SetString(s)
		return ok
	case k == KindChar:
		s, ok := v.(string)
		r, _ := utf8.DecodeRuneInString(s)
		dst.SetInt(int64(r))
		return ok
	case k == KindJSON:
		b, err := json.Marshal(v)
		dst.SetBytes(b)
		return err == nil
	case k.signed():
		i, ok := toInt64(v)
		dst.SetInt(i)
		return ok
	case k.unsigned():
		u, ok := toUint64(v)
		dst.SetUint(u)
		return ok
	case k.float():
		f, ok := toFloat64(v)
		dst.SetFloat(f)
		return ok
	}
	return false
}

func encodeScalar(k Kind, v reflect.Value) any {
	switch {
	case k == KindBool:
		return v.Bool()
	case k == KindString:
		return v.String()
	case k == KindChar:
		return string(rune(v.Int()))
	case k == KindJSON:
		if v.Len() == 0 {
			return nil
		}
		doc, err := decodeJSON(v.Bytes())
		if err != nil {
			return nil
		}
		return doc
	case k.signed():
		return v.Int()
	case k.unsigned():
		return v.Uint()
	case k.float():
		return v.Float()
	}
	return nil
}

func checkBool(v any) error {
	if _, ok := v.(bool); !ok {
		return errors.New("Expected boolean")
	}
	return nil
}

func parseSwitch(string) (any, error) {
	return true, nil
}

func checkChar(v any) error {
	s, ok := v.(string)
	if !ok || utf8.RuneCountInString(s) != 1 {
		return errors.New("Expected one character string")
	}
	return nil
}

func parseChar(s string) (any, error) {
	if utf8.RuneCountInString(s) != 1 {
		return nil, errors.New("Expected one character string")
	}
	return s, nil
}

func checkString(v any) error {
	if _, ok := v.(string); !ok {
		return errors.New("Expected string")
	}
	return nil
}

func parseString(s string) (any, error) {
	return s, nil
}

func checkInt(bits int) checkFunc {
	return func(v any) error {
		i, ok := toInt64(v)
		if !ok {
			return errors.New("Expected signed integer")
		}
		if bits < 64 {
			min := int64(-1) << (bits - 1)
			if i < min || i > -min-1 {
				return fmt.Errorf("Value %d is out of range for int%d", i, bits)
			}
		}
		return nil
	}
}

func parseInt(bits int) parseFunc {
	return func(s string) (any, error) {
		i, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, err
		}
		return i, nil
	}
}

func checkUint(bits int) checkFunc {
	return func(v any) error {
		u, ok := toUint64(v)
		if !ok {
			return errors.New("Expected unsigned integer")
		}
		if bits < 64 && u > uint64(1)<<bits-1 {
			return fmt.Errorf("Value %d is out of range for uint%d", u, bits)
		}
		return nil
	}
}

func parseUint(bits int) parseFunc {
	return func(s string) (any, error) {
		u, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
}

func checkFloat(v any) error {
	if _, ok := toFloat64(v); !ok {
		return errors.New("Expected floating point")
	}
	return nil
}

func parseFloat(bits int) parseFunc {
	return func(s string) (any, error) {
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

func parseJSON(s string) (any, error) {
	v, err := decodeJSON([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("Failed to parse JSON: %v", err)
	}
	return v, nil
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number.
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func sliceOf(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}
	return s, true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint, uint8, uint16, uint32, uint64:
		u, _ := toUint64(n)
		return int64(u), u <= math.MaxInt64
	case float32:
		return toInt64(float64(n))
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int, int8, int16, int32, int64:
		i, _ := toInt64(n)
		return uint64(i), i >= 0
	case float32:
		return toUint64(float64(n))
	case float64:
		if n != math.Trunc(n) || n < 0 || n >= math.MaxUint64 {
			return 0, false
		}
		return uint64(n), true
	case json.Number:
		u, err := strconv.ParseUint(string(n), 10, 64)
		return u, err == nil
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	if u, ok := toUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}
