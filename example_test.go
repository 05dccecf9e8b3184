// Copyright 2021 Jonathan Amsterdam.

package argcfg_test

import (
	"fmt"
	"os"

	"github.com/jba/argcfg"
)

func Example() {
	r := argcfg.NewResolver(argcfg.UnixFlavours|argcfg.EqualsSep, &argcfg.Options{
		Name: "example",
		Info: "Example app",
	})
	foo := argcfg.Named[int]("foo", "FOO").Short('f').Required().MustAttach(r)
	bar := argcfg.Named[uint32]("bar", "BAR").Short('b').Default(100500).MustAttach(r)
	wat := argcfg.Named[[]string]("wat", "WAT").Short('w').MustAttach(r)
	in := argcfg.Free[string]("A", "input").Required().MustAttach(r)

	if err := r.LoadJSON([]byte(`{"bar": 7}`)); err != nil {
		fmt.Printf("Error: %v", err)
	}
	err := r.Parse([]string{"-f", "-1", "-w", "WAT IS", "-w=WAT", "in.txt"})
	if err != nil {
		fmt.Printf("Error: %v", err)
	}
	fmt.Println(foo.Get(), bar.Get(), wat.Get(), in.Get())
	if err := r.Dump(os.Stdout, 0); err != nil {
		fmt.Printf("Error: %v", err)
	}

	// Output:
	// -1 7 [WAT IS WAT] in.txt
	// {"A":"in.txt","bar":7,"foo":-1,"wat":["WAT IS","WAT"]}
}

func ExampleResolver_WriteHelp() {
	r := argcfg.NewResolver(argcfg.LongDoubleDash|argcfg.SpaceSep|argcfg.ShortDash|argcfg.HelpAction, &argcfg.Options{
		Name: "greet",
		Info: "Say hello",
	})
	argcfg.Switch("loud", "Shout").Short('l').MustAttach(r)
	argcfg.Free[[]string]("name", "Who to greet").Required().MustAttach(r)
	if err := r.WriteHelp(os.Stdout); err != nil {
		fmt.Printf("Error: %v", err)
	}

	// Output:
	// greet: Say hello
	// Usage: greet [options] <name1> [name2 ... nameN]
	//
	// Required arguments:
	//   name	-- Who to greet
	//
	// Optional arguments:
	//   --help	-- Print help and exit
	//   --loud, -l	-- Shout
}
