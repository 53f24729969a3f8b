package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds flags for the convert command.
type convertFlags struct {
	config  string
	fullDoc bool
	title   string
	css     string
	verbose bool
}

// serveFlags holds flags shared by the http and stdio commands.
type serveFlags struct {
	config  string
	port    int
	verbose bool
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVar(&f.fullDoc, "full-doc", false, "wrap HTML output as a full styled document")
	fs.StringVar(&f.title, "title", "", "document title for wrapped output and DOCX metadata")
	fs.StringVar(&f.css, "css", "", "extra CSS appended to the default stylesheet")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses http/stdio command flags.
func parseServeFlags(name string, args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.IntVarP(&f.port, "port", "p", 0, "listen port (0 = DOCSMITH_PORT or 3000)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")

	fs.Usage = func() { printServeUsage(os.Stderr, name) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `docsmith converts Markdown and HTML to HTML, PDF and DOCX.

Usage:
  docsmith convert <type> <input> <output> [flags]
  docsmith http [--port P]
  docsmith stdio
  docsmith version

Commands:
  convert   Convert a file; type is one of md-to-html, md-to-pdf,
            html-to-pdf, md-to-docx, html-to-docx
  http      Serve HTTP: health, SSE transport and REST conversion endpoints
  stdio     Serve the tool protocol on stdin/stdout
  version   Print the version`)
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: docsmith convert <type> <input> <output> [flags]

Types: md-to-html, md-to-pdf, html-to-pdf, md-to-docx, html-to-docx

Flags:
  --full-doc        wrap HTML output as a full styled document
  --title string    document title
  --css string      extra CSS appended to the default stylesheet
  -c, --config      config file path
  -v, --verbose     show detailed progress`)
}

func printServeUsage(w io.Writer, name string) {
	fmt.Fprintf(w, `Usage: docsmith %s [flags]

Flags:
  -p, --port int    listen port (http only; 0 = DOCSMITH_PORT or 3000)
  -c, --config      config file path
  -v, --verbose     debug logging
`, name)
}
