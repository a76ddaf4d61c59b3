package main

import (
	"errors"
	"flag"
	"fmt"

	"argbind/internal/contract"
	"argbind/internal/diagnostic"
	"argbind/internal/spec"
)

func (c *cli) check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return errors.New("argbind check: contract file required")
	}

	var (
		total  diagnostic.Diagnostics
		failed int
	)

	for _, path := range fs.Args() {
		f, err := contract.LoadFile(path)
		if err != nil {
			return err
		}

		res := contract.Validate(f, spec.WithStrict(c.cfg.Strict))
		total.Merge(*res)

		for _, d := range res.Errors {
			fmt.Fprintf(c.stdout, "%s: error: %s\n", path, d)
		}

		for _, d := range res.Warnings {
			fmt.Fprintf(c.stdout, "%s: warning: %s\n", path, d)
		}

		if res.HasErrors() {
			failed++
			continue
		}

		fmt.Fprintf(c.stdout, "%s: %d function(s) ok\n", path, len(f.Functions))
	}

	if len(total.Warnings) > 0 || failed > 0 {
		fmt.Fprintf(c.stdout, "%d error(s), %d warning(s)\n", len(total.Errors), len(total.Warnings))
	}

	if failed > 0 {
		return fmt.Errorf("%d contract file(s) failed validation", failed)
	}

	return nil
}
