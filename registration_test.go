// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestResolver returns a Resolver with the given flavours whose actions
// do not exit or touch the file system.
func newTestResolver(fl Flavours) *Resolver {
	return NewResolver(fl, &Options{
		Name:   "test",
		Output: &strings.Builder{},
		Exit:   func(int) {},
		ReadFile: func(name string) ([]byte, error) {
			return nil, errors.New("no files in tests")
		},
	})
}

func argNames(r *Resolver) []string {
	var names []string
	for _, a := range r.Args() {
		names = append(names, a.Name())
	}
	return names
}

func TestRegisterErrors(t *testing.T) {
	str := Type{Kind: KindString}
	strs := Type{Kind: KindString, Multiple: true}
	for _, test := range []struct {
		name  string
		fl    Flavours
		prior []*Arg
		arg   *Arg
		want  string
	}{
		{
			name:  "duplicate",
			fl:    UnixFlavours,
			prior: []*Arg{NewNamed("foo", "FOO", Type{Kind: KindBool})},
			arg:   NewNamed("foo", "BAR", Type{Kind: KindBool}),
			want:  "Option 'foo': Failed to add to config: Option name 'foo' is already used",
		},
		{
			name:  "duplicate of alias",
			fl:    UnixFlavours,
			prior: []*Arg{NewNamed("foo", "FOO", str).WithAlias("bar")},
			arg:   NewNamed("bar", "BAR", str),
			want:  "Option name 'bar' is already used",
		},
		{
			name: "empty",
			fl:   UnixFlavours,
			arg:  NewNamed("", "", str),
			want: "can not be empty",
		},
		{
			name: "space",
			fl:   UnixFlavours,
			arg:  NewNamed("a b", "", str),
			want: "can not contain space",
		},
		{
			name: "tab",
			fl:   UnixFlavours,
			arg:  NewNamed("a\tb", "", str),
			want: "can not contain space",
		},
		{
			name: "dash",
			fl:   UnixFlavours,
			arg:  NewNamed("-a", "", str),
			want: "can not start with dash",
		},
		{
			name: "single dash flavour",
			fl:   LongSingleDash,
			arg:  NewNamed("-a", "", str),
			want: "can not start with dash",
		},
		{
			name: "equals",
			fl:   UnixFlavours | EqualsSep,
			arg:  NewNamed("a=b", "", str),
			want: "can not contain equals sign",
		},
		{
			name:  "alias collision",
			fl:    UnixFlavours,
			prior: []*Arg{NewNamed("foo", "FOO", str).WithAlias("x")},
			arg:   NewNamed("bar", "BAR", str).WithAlias("x"),
			want:  "Option 'bar': Failed to add to config: Alias 'x' is already used by option 'foo'",
		},
		{
			name: "alias with dash",
			fl:   UnixFlavours,
			arg:  NewNamed("bar", "BAR", str).WithAlias("-x"),
			want: "can not start with dash",
		},
		{
			name:  "free after optional free",
			fl:    UnixFlavours,
			prior: []*Arg{NewFree("foo", "FOO", str).Require(), NewFree("bar", "BAR", str)},
			arg:   NewFree("jar", "JAR", str).Require(),
			want:  "Option 'jar': Failed to add to config: Only the last free arg is allowed to be optional or accept multiple values",
		},
		{
			name:  "free after multiple free",
			fl:    UnixFlavours,
			prior: []*Arg{NewFree("foo", "FOO", strs).Require()},
			arg:   NewFree("bar", "BAR", str),
			want:  "Only the last free arg is allowed",
		},
		{
			name: "free switch",
			fl:   UnixFlavours,
			arg:  NewFree("foo", "FOO", Type{Kind: KindBool}),
			want: "Free argument can not be a switch",
		},
		{
			name: "free alias",
			fl:   UnixFlavours,
			arg:  NewFree("foo", "FOO", str).WithAlias("f"),
			want: "Free argument can not have aliases",
		},
		{
			name: "bad type",
			fl:   UnixFlavours,
			arg:  NewNamed("foo", "FOO", Type{Kind: KindBool, Multiple: true}),
			want: "Unsupported value type",
		},
		{
			name: "action name",
			fl:   UnixFlavours,
			arg:  NewNamed("help", "", str),
			want: "Option name 'help' is already used",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			r := newTestResolver(test.fl)
			for _, a := range test.prior {
				r.MustRegister(a)
			}
			before := argNames(r)
			err := r.Register(test.arg)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Fatalf("got %v, want error containing %q", err, test.want)
			}
			if !cmp.Equal(argNames(r), before) {
				t.Error("failed registration changed the argument list")
			}
			if test.arg.Resolver() != nil {
				t.Error("failed registration attached the argument")
			}
		})
	}
}

func TestRegisterOrder(t *testing.T) {
	r := newTestResolver(LongDoubleDash | SpaceSep)
	foo := NewNamed("foo", "", Type{Kind: KindInt})
	a := NewFree("a", "", Type{Kind: KindString}).Require()
	bar := NewNamed("bar", "", Type{Kind: KindBool})
	b := NewFree("b", "", Type{Kind: KindString, Multiple: true})
	for _, arg := range []*Arg{foo, a, bar, b} {
		if err := r.Register(arg); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := argNames(r), []string{"foo", "bar", "a", "b"}; !cmp.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	err := r.Register(foo)
	if err == nil || !strings.Contains(err.Error(), "already") {
		t.Errorf("second registration: got %v", err)
	}
}

func TestMustRegisterPanics(t *testing.T) {
	r := newTestResolver(UnixFlavours)
	r.MustRegister(NewNamed("foo", "", Type{Kind: KindBool}))
	defer func() {
		if recover() == nil {
			t.Error("MustRegister did not panic")
		}
	}()
	r.MustRegister(NewNamed("foo", "", Type{Kind: KindBool}))
}

func TestAddAlias(t *testing.T) {
	r := newTestResolver(UnixFlavours)
	foo := NewNamed("foo", "FOO", Type{Kind: KindBool})
	bar := NewNamed("bar", "BAR", Type{Kind: KindBool})
	r.MustRegister(foo)
	r.MustRegister(bar)

	if err := r.AddAlias("foo", "f"); err != nil {
		t.Fatal(err)
	}
	if a, ok := r.Lookup("f"); !ok || a != foo {
		t.Errorf("Lookup(f) = %v, %t", a, ok)
	}
	if got, want := foo.Names(), []string{"foo", "f"}; !cmp.Equal(got, want) {
		t.Errorf("Names: got %v, want %v", got, want)
	}

	for _, test := range []struct {
		name, alias string
		want        string
	}{
		{"foo", "foo", "Alias 'foo' is the name of the option"},
		{"wat", "w", "Option 'wat': Failed to add alias: Unknown option 'wat'"},
		{"foo", "bar", "Option 'foo': Failed to add alias: Alias 'bar' is already used by option 'bar'"},
		{"bar", "f", "Alias 'f' is already used by option 'foo'"},
		{"foo", "f", "Alias 'f' is already used by option 'foo'"},
		{"foo", "a b", "can not contain space"},
	} {
		err := r.AddAlias(test.name, test.alias)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("AddAlias(%q, %q): got %v, want error containing %q", test.name, test.alias, err, test.want)
		}
	}
	if got, want := foo.Names(), []string{"foo", "f"}; !cmp.Equal(got, want) {
		t.Errorf("Names after failures: got %v, want %v", got, want)
	}
}

func TestWithAliasAfterRegisterPanics(t *testing.T) {
	r := newTestResolver(UnixFlavours)
	foo := NewNamed("foo", "FOO", Type{Kind: KindBool})
	bar := NewNamed("bar", "BAR", Type{Kind: KindBool})
	r.MustRegister(foo)
	r.MustRegister(bar)
	foo.WithAlias("g")
	if a, _ := r.Lookup("g"); a != foo {
		t.Errorf("alias added after registration does not resolve")
	}
	defer func() {
		v := recover()
		err, ok := v.(error)
		if !ok || !strings.Contains(err.Error(), "Alias 'bar' is already used by option 'bar'") {
			t.Errorf("got panic %v", v)
		}
	}()
	foo.WithAlias("bar")
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	newTestResolver(0).Register(nil)
}
