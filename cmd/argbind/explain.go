package main

import (
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"

	"argbind/internal/contract"
	"argbind/internal/spec"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (c *cli) explain(args []string) error {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	contractPath := fs.String("contract", "", "contract file")
	funcName := fs.String("func", "", "function in the contract file")
	dump := fs.Bool("dump", false, "dump the full compiled structure")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.compileTarget(*contractPath, *funcName, fs.Args())
	if err != nil {
		return err
	}

	c.describe(s)

	if *dump {
		dumper.Fdump(c.stdout, s)
	}

	return nil
}

// compileTarget compiles either a contract function or a format string
// given on the command line with its names.
func (c *cli) compileTarget(contractPath, funcName string, rest []string) (*spec.Specification, error) {
	strict := spec.WithStrict(c.cfg.Strict)

	if contractPath != "" {
		f, err := contract.LoadFile(contractPath)
		if err != nil {
			return nil, err
		}

		fn, ok := f.FindFunction(funcName)
		if !ok {
			return nil, fmt.Errorf("%w %q in %s", contract.ErrUnknownFunction, funcName, contractPath)
		}

		return fn.Compile(strict)
	}

	if len(rest) == 0 {
		return nil, errors.New("argbind explain: format string or -contract required")
	}

	return spec.Compile(rest[0], rest[1:], strict)
}

func (c *cli) describe(s *spec.Specification) {
	fmt.Fprintf(c.stdout, "format:     %s\n", s.Format)

	if s.FuncName != "" {
		fmt.Fprintf(c.stdout, "function:   %s\n", s.FuncName)
	}

	if s.HasCustomMessage {
		fmt.Fprintf(c.stdout, "message:    %s\n", s.CustomMessage)
	}

	fmt.Fprintf(c.stdout, "positional: at most %d\n", s.MaxPositional())
	fmt.Fprintf(c.stdout, "hooks:      %d\n", s.Hooks)
	fmt.Fprintf(c.stdout, "collect:    positional=%t keyword=%t\n", s.AcceptsExtraPositional(), s.AcceptsExtraKeyword())

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tCODE\tREGION\tREQUIRED")

	for i, d := range s.Params {
		name := d.Name
		if name == "" {
			name = "-"
		}

		code := string(d.Code)
		if d.Code.IsTuple() {
			code = fmt.Sprintf("tuple(%d)", d.Nested.Len())
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", i, name, code, s.Region(i), s.IsRequired(i))
	}

	tw.Flush()
}
