package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/diagnostics"
	"github.com/stefdev49/vs-zx-sub002/internal/format"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// check validates each file and prints its findings, one per line in the
// usual file:line:column form. It returns 1 when any file has an error.
func check(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dialect := fs.String("dialect", "48k", "BASIC dialect: 48k, 128k or interface1")
	strict := fs.Bool("strict", false, "Raise style findings to warnings and errors")
	maxLine := fs.Int("max-line-length", 0, "Warn about lines longer than this (0 disables)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	d, ok := token.ParseDialect(*dialect)
	if !ok {
		fmt.Fprintf(stderr, "unknown dialect %q\n", *dialect)
		return 2
	}
	opts := analysis.Options{Dialect: d, Strict: *strict, MaxLineLength: *maxLine}

	status := 0
	for _, path := range fs.Args() {
		text, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			status = 1
			continue
		}
		for _, f := range analysis.Analyze(string(text), opts).Findings {
			fmt.Fprintf(stdout, "%s:%d:%d: %s: %s [%s]\n",
				path, f.Range.Start.Line, f.Range.Start.Column, f.Severity, f.Message, f.Rule)
			if f.Severity == diagnostics.Error {
				status = 1
			}
		}
	}
	return status
}

// formatFiles formats each file to stdout, or in place with -w.
func formatFiles(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.Bool("w", false, "Write the result back to the file")
	renumber := fs.Bool("renumber", false, "Renumber lines while formatting")
	increment := fs.Int("increment", 10, "First line number and step used by -renumber")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	status := 0
	for _, path := range fs.Args() {
		if err := formatFile(path, *write, *renumber, *increment, stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", path, err)
			status = 1
		}
	}
	return status
}

func formatFile(path string, write, renumber bool, increment int, stdout io.Writer) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	snap := analysis.Analyze(string(text), analysis.Options{})
	out, err := format.Format(snap, format.Options{Renumber: renumber, Start: increment, Step: increment})
	if err != nil {
		return err
	}

	if !write {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if out == string(text) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), info.Mode().Perm())
}
