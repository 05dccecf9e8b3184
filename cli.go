// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options configure a Resolver. The zero value is usable.
type Options struct {
	// Name and Info head the help and version text. Name defaults to the
	// base name of os.Args[0].
	Name    string
	Info    string
	Version string

	// Output receives help and version text. Defaults to os.Stdout.
	Output io.Writer

	// Logger receives debug records of how tokens were matched.
	// Defaults to a logger that discards everything.
	Logger *log.Logger

	// Exit is called by the help and version actions after printing.
	// Defaults to os.Exit. Tests set it to a function that returns.
	Exit func(code int)

	// ReadFile reads the file named by the config action.
	// Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// A Resolver holds a set of registered arguments and their resolved values.
//
// Values come from JSON documents (Load) and from command-line tokens
// (Parse). Both replace the store only when they succeed as a whole.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	flavours Flavours
	opts     Options
	logger   *log.Logger
	named    []*Arg
	free     []*Arg
	byName   map[string]*Arg // names and aliases
	data     map[string]any  // canonical name to value
}

// NewResolver returns a Resolver that matches tokens according to flavours.
// The help, version and config actions selected by flavours are registered
// immediately. opts may be nil.
func NewResolver(flavours Flavours, opts *Options) *Resolver {
	r := &Resolver{
		flavours: flavours,
		byName:   map[string]*Arg{},
		data:     map[string]any{},
	}
	if opts != nil {
		r.opts = *opts
	}
	if r.opts.Name == "" {
		r.opts.Name = filepath.Base(os.Args[0])
	}
	if r.opts.Output == nil {
		r.opts.Output = os.Stdout
	}
	if r.opts.Exit == nil {
		r.opts.Exit = os.Exit
	}
	if r.opts.ReadFile == nil {
		r.opts.ReadFile = os.ReadFile
	}
	r.logger = r.opts.Logger
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	r.registerActions()
	return r
}

// Flavours returns the conventions r was created with.
func (r *Resolver) Flavours() Flavours {
	return r.flavours
}

// Args returns the registered arguments: named ones first, then free ones,
// each in registration order.
func (r *Resolver) Args() []*Arg {
	args := make([]*Arg, 0, len(r.named)+len(r.free))
	args = append(args, r.named...)
	return append(args, r.free...)
}

// Lookup returns the argument with the given name or alias.
func (r *Resolver) Lookup(name string) (*Arg, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Get returns a copy of the resolved values, keyed by canonical name.
func (r *Resolver) Get() map[string]any {
	return maps.Clone(r.data)
}

// Value returns the resolved value of the argument with the given name or
// alias, in JSON shape.
func (r *Resolver) Value(name string) (any, bool) {
	a, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	v, ok := r.data[a.name]
	return v, ok
}

// An Error is a failure to register, load or parse arguments.
type Error struct {
	// Name is the canonical name of the argument the error is about,
	// or empty if there is none.
	Name string
	// Pos is the 1-based position of the offending token for Parse errors,
	// or zero.
	Pos int
	Err error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// argError attributes err to a: "Option 'foo': err".
func argError(a *Arg, pos int, err error) *Error {
	return &Error{Name: a.name, Pos: pos, Err: fmt.Errorf("%s: %w", a.reportedName(), err)}
}

// argErrorf builds a message about a: "Option 'foo' was ...".
func argErrorf(a *Arg, pos int, format string, args ...any) *Error {
	return &Error{Name: a.name, Pos: pos, Err: fmt.Errorf(a.reportedName()+" "+format, args...)}
}
