// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Load replaces the resolved values with those of doc, a JSON object keyed by
// argument names or aliases. Every key must name a registered argument and
// its value must have the argument's type; no argument may appear more than
// once under different aliases. Requiredness is not checked: Parse does that
// for the combination of loaded and parsed values.
//
// On failure the resolved values are unchanged and the returned error lists
// every problem found.
func (r *Resolver) Load(doc any) error {
	data, err := r.validate(doc)
	if err != nil {
		return err
	}
	r.data = data
	r.logger.Debug("loaded config", "keys", len(data))
	return nil
}

// LoadJSON decodes b as a JSON document and loads it as with Load.
func (r *Resolver) LoadJSON(b []byte) error {
	doc, err := decodeJSON(b)
	if err != nil {
		return &Error{Err: fmt.Errorf("Failed to parse config JSON: %w", err)}
	}
	return r.Load(doc)
}

// validate checks doc and returns it keyed by canonical names.
func (r *Resolver) validate(doc any) (map[string]any, error) {
	src, ok := doc.(map[string]any)
	if !ok {
		return nil, &Error{Err: errors.New("Expecting json object as config source")}
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs *multierror.Error
	for _, k := range keys {
		a, ok := r.byName[k]
		if !ok {
			errs = multierror.Append(errs, &Error{Err: fmt.Errorf("Unknown option '%s' was specified in config", k)})
			continue
		}
		if err := a.check(src[k]); err != nil {
			errs = multierror.Append(errs, argError(a, 0, err))
		}
	}
	for _, a := range r.Args() {
		n := 0
		for _, name := range a.Names() {
			if _, ok := src[name]; ok {
				n++
			}
		}
		if n > 1 {
			errs = multierror.Append(errs, argErrorf(a, 0, "or one of its aliases was specified in config multiple times"))
		}
	}
	if errs != nil {
		errs.ErrorFormat = formatErrors
		return nil, errs.ErrorOrNil()
	}

	data := make(map[string]any, len(src))
	for k, v := range src {
		a := r.byName[k]
		data[a.name] = a.typ.normalize(v)
	}
	return data, nil
}

// formatErrors writes a single error as itself and several one per line.
func formatErrors(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors in config:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}
