// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Code to register arguments and their aliases.

// MustRegister registers a with r, and panics if that fails.
func (r *Resolver) MustRegister(a *Arg) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// Register adds a to r. The aliases a was given before registration are
// added as with AddAlias.
//
// Only the last free argument may be optional or take multiple values, so
// free arguments must be registered mandatory first, then optional, then
// variadic.
func (r *Resolver) Register(a *Arg) error {
	if a == nil {
		panic("argcfg: Register of nil Arg")
	}
	fail := func(err error) error {
		return argError(a, 0, fmt.Errorf("Failed to add to config: %w", err))
	}
	if a.r != nil {
		return fail(errors.New("Option is already registered"))
	}
	if _, ok := r.byName[a.name]; ok {
		return fail(fmt.Errorf("Option name '%s' is already used", a.name))
	}
	if err := r.checkName(a.name); err != nil {
		return fail(err)
	}
	if a.kind != actionArg && !a.typ.valid() {
		return fail(fmt.Errorf("Unsupported value type %v", a.typ))
	}
	if a.IsFree() {
		if a.IsSwitch() {
			return fail(errors.New("Free argument can not be a switch"))
		}
		if len(a.aliases) > 0 {
			return fail(errors.New("Free argument can not have aliases"))
		}
		if n := len(r.free); n > 0 && (!r.free[n-1].required || r.free[n-1].IsMultiple()) {
			return fail(errors.New("Only the last free arg is allowed to be optional or accept multiple values"))
		}
	}
	// Check aliases before changing anything, so a failed registration
	// leaves r as it was.
	seen := map[string]bool{a.name: true}
	for _, n := range a.aliases {
		if err := r.checkAlias(a, n); err != nil {
			return fail(err)
		}
		if seen[n] {
			return fail(fmt.Errorf("Alias '%s' is given more than once", n))
		}
		seen[n] = true
	}

	for _, n := range a.Names() {
		r.byName[n] = a
	}
	if a.IsFree() {
		r.free = append(r.free, a)
	} else {
		r.named = append(r.named, a)
	}
	a.r = r
	return nil
}

// AddAlias makes alias another name for the argument called name.
// It fails if there is no such argument or alias is already in use.
func (r *Resolver) AddAlias(name, alias string) error {
	a, ok := r.byName[name]
	if !ok {
		return &Error{Err: fmt.Errorf("Option '%s': Failed to add alias: Unknown option '%s'", name, name)}
	}
	if err := r.checkAlias(a, alias); err != nil {
		return argError(a, 0, fmt.Errorf("Failed to add alias: %w", err))
	}
	a.aliases = append(a.aliases, alias)
	r.byName[alias] = a
	return nil
}

func (r *Resolver) checkAlias(a *Arg, alias string) error {
	if a.IsFree() {
		return errors.New("Free argument can not have aliases")
	}
	if alias == a.name {
		return fmt.Errorf("Alias '%s' is the name of the option", alias)
	}
	if other, ok := r.byName[alias]; ok {
		return fmt.Errorf("Alias '%s' is already used by option '%s'", alias, other.name)
	}
	return r.checkName(alias)
}

// checkName reports whether name can be matched under r's flavours.
func (r *Resolver) checkName(name string) error {
	switch {
	case name == "":
		return errors.New("Option name can not be empty")
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return errors.New("Option name can not contain space")
	case r.flavours.longDash() && name[0] == '-':
		return errors.New("Option name can not start with dash")
	case r.flavours.Has(EqualsSep) && strings.ContainsRune(name, '='):
		return errors.New("Option name can not contain equals sign '=' since it is value separator")
	}
	return nil
}
