// Command docsmith converts Markdown and HTML documents to HTML, PDF and
// DOCX, and serves the same conversions as MCP tools over stdio or HTTP.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-docsmith/internal/server"

	// Tool packages register themselves on import.
	_ "github.com/alnah/go-docsmith/internal/tools/convert"
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCodeFor(err))
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "http":
		return runHTTP(args[1:])
	case "stdio":
		return runStdio(args[1:])
	case "version":
		fmt.Println(server.Name + " " + server.Version)
		return nil
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}
