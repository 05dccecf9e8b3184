// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// WriteHelp writes a usage summary of r's arguments to w.
func (r *Resolver) WriteHelp(w io.Writer) error {
	var b strings.Builder
	r.writeTitle(&b)
	fmt.Fprintf(&b, "Usage: %s [options]", r.opts.Name)
	var req, opt []*Arg
	for _, a := range r.Args() {
		if a.required {
			req = append(req, a)
			fmt.Fprintf(&b, " %s", r.usageTerm(a))
			continue
		}
		opt = append(opt, a)
		if a.IsFree() {
			fmt.Fprintf(&b, " %s", r.usageTerm(a))
		}
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "\nRequired arguments:\n")
	for _, a := range req {
		r.writeArg(&b, a)
	}
	fmt.Fprintf(&b, "\nOptional arguments:\n")
	for _, a := range opt {
		r.writeArg(&b, a)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteVersion writes the program name, version and description to w.
func (r *Resolver) WriteVersion(w io.Writer) error {
	var b strings.Builder
	if r.opts.Version != "" {
		fmt.Fprintf(&b, "%s %s\n", r.opts.Name, r.opts.Version)
	} else {
		fmt.Fprintln(&b, r.opts.Name)
	}
	if r.opts.Info != "" {
		fmt.Fprintln(&b, r.opts.Info)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Resolver) writeTitle(b *strings.Builder) {
	if r.opts.Info != "" {
		fmt.Fprintf(b, "%s: %s\n", r.opts.Name, r.opts.Info)
	} else {
		fmt.Fprintln(b, r.opts.Name)
	}
}

// usageTerm is how a appears in the "Usage:" line.
func (r *Resolver) usageTerm(a *Arg) string {
	switch {
	case !a.IsFree():
		return r.displayName(a.name) + r.valueHint(a)
	case a.IsMultiple() && a.required:
		return fmt.Sprintf("<%[1]s1> [%[1]s2 ... %[1]sN]", a.name)
	case a.IsMultiple():
		return fmt.Sprintf("[%[1]s1 ... %[1]sN]", a.name)
	case a.required:
		return "<" + a.name + ">"
	default:
		return "[" + a.name + "]"
	}
}

func (r *Resolver) writeArg(b *strings.Builder, a *Arg) {
	if a.IsFree() {
		fmt.Fprintf(b, "  %s", a.name)
	} else {
		names := a.Names()
		for i, n := range names {
			names[i] = r.displayName(n)
		}
		fmt.Fprintf(b, "  %s%s", strings.Join(names, ", "), r.valueHint(a))
	}
	fmt.Fprintf(b, "\t-- %s%s\n", a.info, a.reportedDefault())
}

// displayName writes a name or alias the way it is typed: one-character
// names in short form when short forms are enabled, others in long form.
func (r *Resolver) displayName(name string) string {
	if utf8.RuneCountInString(name) == 1 && r.flavours&(ShortDash|ShortNoDash) != 0 {
		if r.flavours.Has(ShortDash) {
			return "-" + name
		}
		return name
	}
	return r.flavours.longPrefix() + name
}

func (r *Resolver) valueHint(a *Arg) string {
	if a.IsSwitch() {
		return ""
	}
	return " <" + a.meta + ">"
}
