// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/google/renameio"
)

// Save returns the resolved values together with the defaults of arguments
// that have no value, keyed by canonical name. The result can be passed back
// to Load.
func (r *Resolver) Save() map[string]any {
	res := make(map[string]any, len(r.data))
	for _, a := range r.Args() {
		if a.IsAction() {
			continue
		}
		if v, ok := r.data[a.name]; ok {
			res[a.name] = v
		} else if a.hasDef {
			res[a.name] = a.def
		}
	}
	return res
}

// Dump writes the resolved values to w as JSON. If indent is positive the
// output is indented by that many spaces per level.
func (r *Resolver) Dump(w io.Writer, indent int) error {
	return writeJSON(w, r.data, indent)
}

// WriteFile atomically replaces the file named path with the JSON form of
// Save, so it can later be read back by the config action or LoadJSON.
func (r *Resolver) WriteFile(path string, indent int) error {
	var b strings.Builder
	if err := writeJSON(&b, r.Save(), indent); err != nil {
		return err
	}
	return renameio.WriteFile(path, []byte(b.String()), 0o644)
}

func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(v)
}
