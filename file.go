// Copyright 2021 Jonathan Amsterdam.

package argcfg

import (
	"io"
	"os"

	"github.com/google/renameio"
)

// Stdio is the file name that stands for standard input or standard output.
const Stdio = "-"

// A File is a string argument naming a file to read or write.
// The name "-" means standard input for an input file and standard output
// for an output file.
type File struct {
	v      *Var[string]
	output bool
}

// InputFile returns an unattached named argument naming a file to read.
func InputFile(name, info string) *File {
	return newFile(Named[string](name, info), false)
}

// OutputFile returns an unattached named argument naming a file to write.
func OutputFile(name, info string) *File {
	return newFile(Named[string](name, info), true)
}

// FreeInputFile returns an unattached free argument naming a file to read.
func FreeInputFile(name, info string) *File {
	return newFile(Free[string](name, info), false)
}

// FreeOutputFile returns an unattached free argument naming a file to write.
func FreeOutputFile(name, info string) *File {
	return newFile(Free[string](name, info), true)
}

func newFile(v *Var[string], output bool) *File {
	v.Meta("file")
	return &File{v: v, output: output}
}

func (f *File) Required() *File             { f.v.Required(); return f }
func (f *File) Short(c rune) *File          { f.v.Short(c); return f }
func (f *File) Alias(names ...string) *File { f.v.Alias(names...); return f }
func (f *File) Default(name string) *File   { f.v.Default(name); return f }
func (f *File) Meta(meta string) *File      { f.v.Meta(meta); return f }

// Attach registers the argument with r.
func (f *File) Attach(r *Resolver) error {
	return f.v.Attach(r)
}

// MustAttach registers the argument with r and returns f.
// It panics if registration fails.
func (f *File) MustAttach(r *Resolver) *File {
	f.v.MustAttach(r)
	return f
}

func (f *File) Arg() *Arg    { return f.v.Arg() }
func (f *File) Name() string { return f.v.Get() }
func (f *File) IsSet() bool  { return f.v.IsSet() }

// Open opens the named file for reading. Closing the result of opening "-"
// leaves standard input open.
// It panics if f is an output file.
func (f *File) Open() (io.ReadCloser, error) {
	if f.output {
		panic(f.v.arg.reportedName() + " is an output file")
	}
	name := f.Name()
	if name == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// Create starts writing the named file. The file is replaced atomically
// when the result is closed; until then the old contents, if any, remain.
// Closing the result of creating "-" leaves standard output open.
// It panics if f is an input file.
func (f *File) Create() (io.WriteCloser, error) {
	if !f.output {
		panic(f.v.arg.reportedName() + " is an input file")
	}
	name := f.Name()
	if name == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}
	t, err := renameio.TempFile("", name)
	if err != nil {
		return nil, err
	}
	return &pendingFile{t}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// pendingFile replaces its target on Close.
type pendingFile struct {
	*renameio.PendingFile
}

func (p *pendingFile) Close() error {
	defer p.Cleanup()
	return p.CloseAtomicallyReplace()
}
