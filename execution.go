// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Code for matching command-line tokens against arguments.

// ParseArgs parses the program's command line, os.Args[1:].
func (r *Resolver) ParseArgs() error {
	return r.Parse(os.Args[1:])
}

// Parse matches args against the registered arguments and merges the values
// found into the resolved values. For each token it tries, in order: a long
// form (after splitting on '=' when EqualsSep is set), a stack of short
// forms, and the next free argument.
//
// After all tokens are consumed, an argument that does not take multiple
// values must not have been given more than once, and every required
// argument must have a value, either loaded or parsed. If any of this fails,
// the resolved values are unchanged.
func (r *Resolver) Parse(args []string) error {
	s := &parseState{
		r:      r,
		args:   args,
		data:   make(map[string]any, len(r.data)),
		counts: map[string]int{},
	}
	for k, v := range r.data {
		s.data[k] = v
	}
	for s.idx < len(args) {
		n, err := s.step()
		if err != nil {
			return err
		}
		if n == 0 {
			return &Error{
				Pos: s.idx + 1,
				Err: fmt.Errorf("Unknown argument '%s' at position %d", args[s.idx], s.idx+1),
			}
		}
		s.idx += n
	}
	if err := s.finish(); err != nil {
		return err
	}
	r.data = s.data
	return nil
}

// parseState is the state of a single call to Parse.
type parseState struct {
	r      *Resolver
	args   []string
	idx    int            // next token
	pos    int            // next free argument
	data   map[string]any // working copy of r.data
	counts map[string]int // occurrences by canonical name
}

// step consumes the token at s.idx and any value token after it.
// It returns the number of tokens consumed, or zero if the token matched
// nothing.
func (s *parseState) step() (int, error) {
	fl := s.r.flavours
	tok := s.args[s.idx]
	name, val, hasVal := tok, "", false
	if fl.Has(EqualsSep) {
		name, val, hasVal = strings.Cut(tok, "=")
	}

	if a := s.r.matchLong(name); a != nil {
		return s.bindLong(a, val, hasVal)
	}
	if n, err := s.bindShort(tok, name, val, hasVal); n > 0 || err != nil {
		return n, err
	}
	if s.pos < len(s.r.free) {
		a := s.r.free[s.pos]
		s.r.logger.Debug("matched free argument", "arg", a.name, "token", tok)
		if err := s.bind(a, tok); err != nil {
			return 0, err
		}
		if !a.IsMultiple() {
			s.pos++
		}
		return 1, nil
	}
	return 0, nil
}

// bindLong binds a matched long form. val is the value given after '=',
// if hasVal. An empty value after '=' counts as no value: a switch accepts
// it and any other argument reports that it requires one.
func (s *parseState) bindLong(a *Arg, val string, hasVal bool) (int, error) {
	s.r.logger.Debug("matched long option", "arg", a.name, "token", s.args[s.idx])
	n := 1
	switch {
	case a.IsSwitch():
		if val != "" {
			return 0, argErrorf(a, s.idx+1, "is a switch, value can not be specified")
		}
	case hasVal:
		if val == "" {
			return 0, argErrorf(a, s.idx+1, "requires value")
		}
	default:
		v, err := s.next(a)
		if err != nil {
			return 0, err
		}
		val, n = v, 2
	}
	if err := s.bind(a, val); err != nil {
		return 0, err
	}
	return n, nil
}

// bindShort matches the characters of name, after stripping its dash, one
// by one against single-character aliases. tok is the whole token.
//
// Each matched character is bound as the scan goes. The scan stops at the
// first character that matches nothing; the token then counts as unmatched
// and falls through to the free arguments, but what was bound stays bound.
func (s *parseState) bindShort(tok, name, val string, hasVal bool) (int, error) {
	fl := s.r.flavours
	var body string
	switch {
	case fl.Has(ShortDash) && len(name) > 1 && name[0] == '-':
		body = name[1:]
	case fl.Has(ShortNoDash) && name != "":
		body = name
	default:
		return 0, nil
	}
	offset := len(name) - len(body) // of body within tok

	for i := 0; i < len(body); {
		c, size := utf8.DecodeRuneInString(body[i:])
		a := s.r.matchShort(c)
		if a == nil {
			return 0, nil
		}
		s.r.logger.Debug("matched short option", "arg", a.name, "token", tok)
		rest := body[i+size:]
		if a.IsSwitch() {
			if rest == "" && val != "" {
				return 0, argErrorf(a, s.idx+1, "is a switch, value can not be specified")
			}
			if rest != "" && !fl.Has(ShortStacked) {
				return 0, argErrorf(a, s.idx+1, "shortcut '%c' is followed by unexpected symbol", c)
			}
			if err := s.bind(a, ""); err != nil {
				return 0, err
			}
			if rest == "" {
				return 1, nil
			}
			i += size
			continue
		}

		n := 1
		var v string
		switch {
		case rest != "":
			if !fl.Has(ShortNoSep) {
				return 0, argErrorf(a, s.idx+1, "shortcut '%c' is followed by unexpected symbol, value is expected", c)
			}
			// The value is the rest of the token, '=' and all.
			v = tok[offset+i+size:]
		case hasVal:
			if val == "" {
				return 0, argErrorf(a, s.idx+1, "requires value")
			}
			v = val
		default:
			var err error
			if v, err = s.next(a); err != nil {
				return 0, err
			}
			n = 2
		}
		if err := s.bind(a, v); err != nil {
			return 0, err
		}
		return n, nil
	}
	return 0, nil
}

// next returns the token after the current one as the value of a.
func (s *parseState) next(a *Arg) (string, error) {
	if !s.r.flavours.Has(SpaceSep) {
		return "", argErrorf(a, s.idx+1, "requires value")
	}
	if s.idx+1 >= len(s.args) {
		return "", argErrorf(a, s.idx+1, "required value is missing")
	}
	return s.args[s.idx+1], nil
}

// bind records an occurrence of a with value val.
func (s *parseState) bind(a *Arg, val string) error {
	if a.IsMultiple() && s.counts[a.name] == 0 {
		// Values given on the command line replace loaded ones.
		delete(s.data, a.name)
	}
	s.counts[a.name]++
	if err := a.parse(s, val); err != nil {
		return argError(a, s.idx+1, err)
	}
	return nil
}

// finish checks multiplicity and requiredness once every token is bound.
func (s *parseState) finish() error {
	for _, a := range s.r.Args() {
		n := s.counts[a.name]
		if n > 1 && !a.IsMultiple() {
			return argErrorf(a, 0, "was specified multiple times")
		}
		if _, ok := s.data[a.name]; ok {
			n++
		}
		if a.required && n == 0 {
			return argErrorf(a, 0, "is required and was not set")
		}
	}
	return nil
}

// matchLong returns the first named argument, in registration order, that
// tok spells in a long form.
func (r *Resolver) matchLong(tok string) *Arg {
	for _, a := range r.named {
		for _, name := range a.Names() {
			if r.flavours.matchLong(name, tok) {
				return a
			}
		}
	}
	return nil
}

// matchShort returns the first named argument with the one-character name
// or alias c.
func (r *Resolver) matchShort(c rune) *Arg {
	for _, a := range r.named {
		for _, name := range a.Names() {
			if x, size := utf8.DecodeRuneInString(name); size == len(name) && x == c {
				return a
			}
		}
	}
	return nil
}
