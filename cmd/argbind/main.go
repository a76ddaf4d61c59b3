// Package main provides the argbind CLI.
//
// argbind works with call contracts declared in YAML:
//   - check validates a contract file
//   - explain shows how a format string compiles
//   - call binds JSON arguments against a contract function
//   - gen renders typed argument structs
//
// Settings come from ARGBIND_* environment variables and an optional .env file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"argbind/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries what every subcommand needs.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}

	switch args[0] {
	case "check":
		return c.check(args[1:])
	case "explain":
		return c.explain(args[1:])
	case "call":
		return c.call(args[1:])
	case "gen":
		return c.gen(args[1:])
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: argbind <command> [flags]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  check <contracts.yaml>                  validate a contract file")
	fmt.Fprintln(w, "  explain <format> [names...]             show a compiled format")
	fmt.Fprintln(w, "  explain -contract <file> -func <name>   show a contract function")
	fmt.Fprintln(w, "  call -contract <file> -func <name> [-args JSON] [-kwargs JSON]")
	fmt.Fprintln(w, "  gen -contract <file> [-out dir] [-package name]")
}
