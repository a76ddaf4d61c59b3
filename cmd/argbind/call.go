package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"argbind/binder"
	"argbind/internal/contract"
	"argbind/internal/ledger"
	"argbind/value"
)

// builtinConverters are the "O&" converters a contract may name when
// called from the command line.
var builtinConverters = map[string]binder.ItemFunc{
	"identity": func(v value.Value, _ *binder.Hook, _ *ledger.Ledger) (any, error) {
		return v, nil
	},
	"repr": func(v value.Value, _ *binder.Hook, _ *ledger.Ledger) (any, error) {
		return value.Repr(v), nil
	},
}

func (c *cli) call(args []string) error {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	contractPath := fs.String("contract", "", "contract file")
	funcName := fs.String("func", "", "function in the contract file")
	argsJSON := fs.String("args", "[]", "positional arguments as a JSON array")
	kwargsJSON := fs.String("kwargs", "{}", "keyword arguments as a JSON object")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *contractPath == "" || *funcName == "" {
		return errors.New("argbind call: -contract and -func are required")
	}

	f, err := contract.LoadFile(*contractPath)
	if err != nil {
		return err
	}

	opts := []contract.RegistryOption{
		contract.WithStrict(c.cfg.Strict),
		contract.WithLogger(c.cfg.Logger(c.stderr)),
		contract.WithBinderOptions(binder.WithFastPath(c.cfg.FastPath)),
	}
	for name, fn := range builtinConverters {
		opts = append(opts, contract.WithConverter(name, fn))
	}

	reg, err := contract.NewRegistry(f, opts...)
	if err != nil {
		return err
	}

	positional, kwargs, err := parseCallArgs(*argsJSON, *kwargsJSON)
	if err != nil {
		return err
	}

	res, err := reg.Bind(*funcName, positional, kwargs)
	if err != nil {
		return err
	}
	defer res.Release()

	b, _ := reg.Lookup(*funcName)
	for i, name := range b.Spec().Names() {
		if name == "" {
			name = "#" + strconv.Itoa(i)
		}

		fmt.Fprintf(c.stdout, "%s = %s\n", name, render(res.Arg(i)))
	}

	if extra := res.ExtraPositional(); extra != nil {
		fmt.Fprintf(c.stdout, "* = %s\n", value.Repr(extra))
	}

	if extra := res.ExtraKeyword(); extra != nil {
		fmt.Fprintf(c.stdout, "** = %s\n", value.Repr(extra))
	}

	return nil
}

func parseCallArgs(argsJSON, kwargsJSON string) (value.Tuple, *value.Dict, error) {
	a, err := value.FromJSON([]byte(argsJSON))
	if err != nil {
		return nil, nil, fmt.Errorf("-args: %w", err)
	}

	list, ok := a.(value.List)
	if !ok {
		return nil, nil, fmt.Errorf("-args: expected a JSON array, got %s", a.TypeName())
	}

	k, err := value.FromJSON([]byte(kwargsJSON))
	if err != nil {
		return nil, nil, fmt.Errorf("-kwargs: %w", err)
	}

	kwargs, ok := k.(*value.Dict)
	if !ok {
		return nil, nil, fmt.Errorf("-kwargs: expected a JSON object, got %s", k.TypeName())
	}

	return value.Tuple(list), kwargs, nil
}

// render prints a converted output.
func render(out any) string {
	switch t := out.(type) {
	case nil:
		return "<absent>"
	case value.Value:
		return value.Repr(t)
	case *value.Buffer:
		return fmt.Sprintf("<buffer %s>", strconv.Quote(string(t.Data)))
	case []byte:
		return "b" + strconv.Quote(string(t))
	case string:
		return strconv.Quote(t)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = render(item)
		}

		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprint(t)
	}
}
