// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// An ActionFunc is run each time its action argument is matched by Parse.
// value is empty for an action that takes no value.
type ActionFunc func(c *ActionContext, value string) error

// An ActionContext gives an action access to the Parse call that ran it.
type ActionContext struct {
	s   *parseState
	arg *Arg
}

// Resolver returns the Resolver being parsed into.
func (c *ActionContext) Resolver() *Resolver {
	return c.s.r
}

// Arg returns the action argument that was matched.
func (c *ActionContext) Arg() *Arg {
	return c.arg
}

// Load validates doc as Resolver.Load does and merges its values into those
// being parsed. Keys in doc replace values loaded before Parse, but not values
// already given on the command line; values given later on the command line
// replace them in turn. Nothing is committed unless the whole Parse succeeds.
func (c *ActionContext) Load(doc any) error {
	data, err := c.s.r.validate(doc)
	if err != nil {
		return err
	}
	for k, v := range data {
		if c.s.counts[k] > 0 {
			// Already given on the command line.
			continue
		}
		c.s.data[k] = v
	}
	return nil
}

// NewAction returns a named argument that runs fn instead of storing a
// value. arity must be NoValue or SingleValue. Action arguments are never
// required, can not be loaded from a document and are not saved.
func NewAction(name, info string, arity Arity, fn ActionFunc) *Arg {
	if fn == nil {
		panic("argcfg: NewAction with nil ActionFunc")
	}
	meta := ""
	if arity != NoValue {
		meta = "string"
	}
	return &Arg{
		name:   name,
		info:   info,
		meta:   meta,
		kind:   actionArg,
		arity:  arity,
		action: fn,
	}
}

// registerActions registers the built-in actions selected by r's flavours.
func (r *Resolver) registerActions() {
	add := func(on, short Flavours, a *Arg, alias string) {
		if !r.flavours.Has(on) {
			return
		}
		if r.flavours.Has(short) {
			a.WithAlias(alias)
		}
		r.MustRegister(a)
	}
	add(HelpAction, HelpShort, NewAction("help", "Print help and exit", NoValue, helpAction), "h")
	add(VersionAction, VersionShort, NewAction("version", "Print version and exit", NoValue, versionAction), "v")
	add(ConfigAction, ConfigShort,
		NewAction("config", "Load config JSON from file", SingleValue, configAction).WithMeta("file"), "c")
}

func helpAction(c *ActionContext, _ string) error {
	r := c.Resolver()
	if err := r.WriteHelp(r.opts.Output); err != nil {
		return err
	}
	r.opts.Exit(0)
	return nil
}

func versionAction(c *ActionContext, _ string) error {
	r := c.Resolver()
	if err := r.WriteVersion(r.opts.Output); err != nil {
		return err
	}
	r.opts.Exit(0)
	return nil
}

// configAction loads the JSON file named by value. The file may contain
// comments and trailing commas.
func configAction(c *ActionContext, value string) error {
	r := c.Resolver()
	b, err := r.opts.ReadFile(value)
	if err != nil {
		return fmt.Errorf("Failed to read config: %w", err)
	}
	b, err = hujson.Standardize(b)
	if err != nil {
		return fmt.Errorf("Failed to parse config JSON: %w", err)
	}
	doc, err := decodeJSON(b)
	if err != nil {
		return fmt.Errorf("Failed to parse config JSON: %w", err)
	}
	r.logger.Debug("loading config file", "file", value)
	return c.Load(doc)
}
