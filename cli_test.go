// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestFlavoursString(t *testing.T) {
	for _, test := range []struct {
		f    Flavours
		want string
	}{
		{0, "0"},
		{LongDoubleDash | SpaceSep, "LongDoubleDash|SpaceSep"},
		{CommonActions, "HelpAction|VersionAction|ConfigAction"},
		{ShortNoDash | 0x100000, "ShortNoDash|0x100000"},
		{UnixFlavours, "LongDoubleDash|SpaceSep|ShortDash|ShortStacked|ShortNoSep|" +
			"HelpAction|VersionAction|ConfigAction|HelpShort|VersionShort|ConfigShort"},
	} {
		if got := test.f.String(); got != test.want {
			t.Errorf("%#x: got %q, want %q", uint64(test.f), got, test.want)
		}
	}
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(LongDoubleDash|SpaceSep, nil)
	if got, want := r.opts.Name, filepath.Base(os.Args[0]); got != want {
		t.Errorf("Name: got %q, want %q", got, want)
	}
	if r.opts.Output != os.Stdout || r.opts.Exit == nil || r.opts.ReadFile == nil || r.logger == nil {
		t.Error("defaults not filled in")
	}
	if len(r.Args()) != 0 {
		t.Errorf("got actions %v without action flavours", argNames(r))
	}
	if r.Flavours() != LongDoubleDash|SpaceSep {
		t.Errorf("Flavours: got %v", r.Flavours())
	}

	r = newTestResolver(UnixFlavours)
	if got, want := argNames(r), []string{"help", "version", "config"}; !cmp.Equal(got, want) {
		t.Errorf("actions: got %v, want %v", got, want)
	}
	r = newTestResolver(LongDoubleDash | VersionAction)
	if a, ok := r.Lookup("version"); !ok || len(a.Aliases()) != 0 || !a.IsAction() {
		t.Errorf("version action: %v %t", a, ok)
	}
}

func TestLookupValue(t *testing.T) {
	r := newTestResolver(UnixFlavours)
	foo := NewNamed("foo", "FOO", Type{Kind: KindString}).WithAlias("fu")
	r.MustRegister(foo)
	if a, ok := r.Lookup("fu"); !ok || a != foo {
		t.Errorf("Lookup(fu) = %v, %t", a, ok)
	}
	if _, ok := r.Lookup("bar"); ok {
		t.Error("Lookup(bar) succeeded")
	}
	if _, ok := r.Value("foo"); ok {
		t.Error("Value before Parse")
	}
	if err := r.Parse([]string{"--fu", "x"}); err != nil {
		t.Fatal(err)
	}
	if v, ok := r.Value("fu"); !ok || v != "x" {
		t.Errorf("Value(fu) = %v, %t", v, ok)
	}
	if _, ok := r.Value("bar"); ok {
		t.Error("Value(bar) succeeded")
	}

	// Get returns a copy.
	m := r.Get()
	m["foo"] = "y"
	if v, _ := r.Value("foo"); v != "x" {
		t.Errorf("store changed through Get: %v", v)
	}
}

func TestError(t *testing.T) {
	r := newTestResolver(UnixFlavours)
	Named[int]("foo", "").MustAttach(r)
	err := r.Parse([]string{"--foo", "1", "bar"})
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("got %T, want *Error", err)
	}
	if aerr.Name != "" || aerr.Pos != 3 {
		t.Errorf("got Name %q, Pos %d", aerr.Name, aerr.Pos)
	}

	inner := errors.New("inner")
	e := &Error{Name: "x", Err: inner}
	if e.Error() != "inner" || !errors.Is(e, inner) {
		t.Errorf("Error does not wrap: %v", e)
	}
}

func TestDebugLogging(t *testing.T) {
	var b strings.Builder
	logger := log.New(&b)
	logger.SetLevel(log.DebugLevel)
	r := NewResolver(UnixFlavours, &Options{Name: "test", Logger: logger, Exit: func(int) {}})
	Named[int]("foo", "").Short('f').MustAttach(r)
	Free[string]("bar", "").MustAttach(r)
	if err := r.Parse([]string{"--foo", "1", "-f2", "x"}); err == nil {
		t.Fatal("no error for repeated foo")
	}
	if err := r.Load(map[string]any{"foo": 3}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"matched long option",
		"matched short option",
		"matched free argument",
		"loaded config",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
