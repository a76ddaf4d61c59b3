package main

import (
	"errors"
	"flag"
	"fmt"

	"argbind/internal/contract"
	"argbind/internal/gen"
	"argbind/internal/spec"
)

func (c *cli) gen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	contractPath := fs.String("contract", "", "contract file")
	outDir := fs.String("out", c.cfg.OutputDir, "output directory")
	pkg := fs.String("package", c.cfg.Package, "generated package name")
	comments := fs.Bool("comments", true, "annotate fields with code and region")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *contractPath == "" {
		return errors.New("argbind gen: -contract is required")
	}

	f, err := contract.LoadFile(*contractPath)
	if err != nil {
		return err
	}

	if res := contract.Validate(f, spec.WithStrict(c.cfg.Strict)); res.HasErrors() {
		return fmt.Errorf("%w: %w", contract.ErrInvalidContract, res.Error())
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		PackageName:      *pkg,
		OutputDir:        *outDir,
		ModulePath:       c.cfg.ModulePath,
		GenerateComments: *comments,
	})

	files, err := generator.Generate(f, spec.WithStrict(c.cfg.Strict))
	if err != nil {
		return err
	}

	written, err := gen.WriteFiles(files, *outDir)
	if err != nil {
		return err
	}

	for _, name := range written {
		fmt.Fprintf(c.stdout, "wrote %s\n", name)
	}

	fmt.Fprintf(c.stdout, "%d file(s) generated, %d updated\n", len(files), len(written))

	return nil
}
