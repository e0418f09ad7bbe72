// Command sregen embeds a compiled pattern's serialized automaton into a
// Go source file, so a program can construct its Regexp with
// symregex.Deserialize instead of parsing and compiling the pattern at
// package init or on first use.
//
// Usage:
//
//	sregen -pattern 'a{2,4}' -name CountWord -pkg patterns -out patterns/count_word.go
//
// The generated file declares a string constant <name>Serialized holding
// the v1 textual form and a var <name> initialized by symregex.MustDeserialize,
// so callers use it exactly like a MustCompile'd package-level Regexp.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/symregex"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "sregen:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sregen", flag.ContinueOnError)
	pattern := fs.String("pattern", "", "regular expression to compile (required)")
	name := fs.String("name", "", "exported Go identifier for the generated var (required)")
	pkg := fs.String("pkg", "main", "package name for the generated file")
	out := fs.String("out", "", "output file path (default: stdout)")
	foldCase := fs.Bool("i", false, "compile case-insensitively")
	multiline := fs.Bool("m", false, "^ and $ match at line boundaries")
	dotNL := fs.Bool("s", false, ". matches \\n as well")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pattern == "" || *name == "" {
		fs.Usage()
		return fmt.Errorf("both -pattern and -name are required")
	}

	var opts []symregex.Option
	if *foldCase {
		opts = append(opts, symregex.WithFoldCase())
	}
	if *multiline {
		opts = append(opts, symregex.WithMultiline())
	}
	if *dotNL {
		opts = append(opts, symregex.WithDotNL())
	}
	re, err := symregex.Compile(*pattern, opts...)
	if err != nil {
		return fmt.Errorf("compiling %q: %w", *pattern, err)
	}

	f := generate(*pkg, *name, *pattern, re.Serialize())
	if *out == "" {
		return f.Render(os.Stdout)
	}
	return f.Save(*out)
}

// generate builds the jennifer file for one embedded pattern: a comment
// recording the source pattern, a constant with the serialized form, and
// a package-level var built from it with MustDeserialize.
func generate(pkg, name, pattern, serialized string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by sregen from pattern " + pattern + ". DO NOT EDIT.")
	f.ImportAlias("github.com/coregx/symregex", "symregex")

	serializedConst := name + "Serialized"
	f.Const().Id(serializedConst).Op("=").Lit(serialized)
	f.Line()
	f.Var().Id(name).Op("=").Qual("github.com/coregx/symregex", "MustDeserialize").Call(jen.Id(serializedConst))
	return f
}
