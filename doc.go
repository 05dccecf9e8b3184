// Copyright 2021 Jonathan Amsterdam.

/*
Package argcfg resolves a program's settings from a JSON configuration
document and from its command line. A program declares named options,
switches and free (positional) arguments, each with a type, a description,
an optional default and any number of aliases, and registers them with a
Resolver. The Resolver then loads JSON documents and parses argument lists
into a single store of values keyed by argument name.

# Declaring arguments

Most programs use the generic Var type:

	r := argcfg.NewResolver(argcfg.UnixFlavours, &argcfg.Options{
	  Name: "example",
	  Info: "Example app",
	})
	foo := argcfg.Named[int]("foo", "FOO").Short('f').Required().MustAttach(r)
	bar := argcfg.Named[uint32]("bar", "BAR").Short('b').Default(100500).MustAttach(r)
	wat := argcfg.Named[[]string]("wat", "WAT").Short('w').MustAttach(r)
	in := argcfg.Free[string]("A", "input").Required().MustAttach(r)

Registration is two-phase: a Var (or the lower-level Arg) is built first and
attached afterwards. Attach returns an error; MustAttach panics, which suits
arguments declared at program start, where a registration error is a bug.

A Var of type bool is a switch: it takes no value. A Var of a slice type
takes multiple values, one per occurrence. Only the last free argument may be
optional or take multiple values; it then consumes every token left over.

# Resolving

Load takes a decoded JSON object whose keys are argument names or aliases;
LoadJSON decodes one first. Parse takes the command-line tokens, usually
os.Args[1:], and merges what it finds with what was loaded. Both calls are
all or nothing: when they fail, the store is unchanged.

	if err := r.ParseArgs(); err != nil {
	  fmt.Fprintln(os.Stderr, err)
	  os.Exit(1)
	}
	fmt.Println(foo.Get(), bar.Get(), wat.Get(), in.Get())

# Flavours

The Flavours passed to NewResolver choose which spellings match: --name,
-name or bare name for long forms; name=value and "name value" for values;
-a, stacked -abc and -aVALUE for one-character aliases. UnixFlavours
selects the usual conventions together with the help (-h), version (-v) and
config (-c) actions. The config action loads a JSON file, which may contain
comments, as if it had been passed to Load at that point of the command line.

# Output

WriteHelp and WriteVersion produce the text of the help and version
actions. Dump writes the resolved values as JSON, Save returns them with
defaults filled in, and WriteFile persists that snapshot atomically.
*/
package argcfg
