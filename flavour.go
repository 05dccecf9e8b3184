// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"fmt"
	"strings"
)

// Flavours is a bitmask selecting the syntactic conventions a Resolver
// accepts when matching command-line tokens against arguments.
type Flavours uint64

const (
	LongDoubleDash Flavours = 0x0001 // --foo
	LongSingleDash Flavours = 0x0002 // -foo
	LongNoDash     Flavours = 0x0004 // foo

	SpaceSep  Flavours = 0x0010 // --foo val
	EqualsSep Flavours = 0x0020 // --foo=val

	ShortDash    Flavours = 0x0100 // -a
	ShortNoDash  Flavours = 0x0200 // a
	ShortStacked Flavours = 0x0400 // -ab is -a -b
	ShortNoSep   Flavours = 0x0800 // -aval is -a val

	HelpAction    Flavours = 0x001000 // --help
	VersionAction Flavours = 0x002000 // --version
	ConfigAction  Flavours = 0x004000 // --config file.json
	CommonActions          = HelpAction | VersionAction | ConfigAction

	HelpShort      Flavours = 0x010000 // -h
	VersionShort   Flavours = 0x020000 // -v
	ConfigShort    Flavours = 0x040000 // -c
	CommonActShort          = HelpShort | VersionShort | ConfigShort

	UnixFlavours = LongDoubleDash |
		SpaceSep |
		ShortDash |
		ShortStacked |
		ShortNoSep |
		CommonActions |
		CommonActShort
)

var flavourNames = []struct {
	f    Flavours
	name string
}{
	{LongDoubleDash, "LongDoubleDash"},
	{LongSingleDash, "LongSingleDash"},
	{LongNoDash, "LongNoDash"},
	{SpaceSep, "SpaceSep"},
	{EqualsSep, "EqualsSep"},
	{ShortDash, "ShortDash"},
	{ShortNoDash, "ShortNoDash"},
	{ShortStacked, "ShortStacked"},
	{ShortNoSep, "ShortNoSep"},
	{HelpAction, "HelpAction"},
	{VersionAction, "VersionAction"},
	{ConfigAction, "ConfigAction"},
	{HelpShort, "HelpShort"},
	{VersionShort, "VersionShort"},
	{ConfigShort, "ConfigShort"},
}

// Has reports whether all the bits of g are set in f.
func (f Flavours) Has(g Flavours) bool {
	return f&g == g
}

func (f Flavours) String() string {
	var parts []string
	rest := f
	for _, n := range flavourNames {
		if f.Has(n.f) {
			parts = append(parts, n.name)
			rest &^= n.f
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint64(rest)))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// longDash reports whether any dash-prefixed long form is enabled.
func (f Flavours) longDash() bool {
	return f&(LongDoubleDash|LongSingleDash) != 0
}

// matchLong reports whether tok is name written in one of the enabled long forms.
func (f Flavours) matchLong(name, tok string) bool {
	return (f.Has(LongDoubleDash) && tok == "--"+name) ||
		(f.Has(LongSingleDash) && tok == "-"+name) ||
		(f.Has(LongNoDash) && tok == name)
}

// longPrefix is the prefix used to display named arguments in help text.
func (f Flavours) longPrefix() string {
	switch {
	case f.Has(LongDoubleDash):
		return "--"
	case f.Has(LongSingleDash):
		return "-"
	default:
		return ""
	}
}
