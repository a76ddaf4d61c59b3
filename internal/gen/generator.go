package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"argbind/internal/contract"
	"argbind/internal/spec"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is where generated files are written; unformatted sources
	// are dumped there when formatting fails.
	OutputDir string
	// ModulePath is the import path of the argbind module.
	ModulePath string
	// GenerateComments enables per-field comments naming code and region.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "bindings",
		OutputDir:        "./generated",
		ModulePath:       "argbind",
		GenerateComments: true,
	}
}

// Generator renders argument structs for contract functions.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "open_args.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

type templateData struct {
	PackageName string
	Imports     []string
	FuncName    string
	Description string
	StructName  string
	Format      string
	Params      []string
	Fields      []fieldData
	// Setup are binder options the Bind method always applies.
	Setup []string
	// OpenHooks counts hook slots the caller must supply.
	OpenHooks int
}

type fieldData struct {
	Name    string
	Type    string
	Tag     string
	Comment string
}

// Generate renders one file per function of f. Formats are compiled with
// opts.
func (g *Generator) Generate(f *contract.File, opts ...spec.Option) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(f.Functions))

	for i := range f.Functions {
		fn := &f.Functions[i]

		file, err := g.generateFunction(fn, opts)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", fn.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateFunction(fn *contract.Function, opts []spec.Option) (*GeneratedFile, error) {
	s, err := fn.Compile(opts...)
	if err != nil {
		return nil, err
	}

	data := &templateData{
		PackageName: g.config.PackageName,
		Imports: []string{
			path.Join(g.config.ModulePath, "binder"),
			path.Join(g.config.ModulePath, "value"),
		},
		FuncName:    fn.Name,
		Description: strings.Join(strings.Fields(fn.Description), " "),
		StructName:  camelCase(fn.Name) + "Args",
		Format:      strconv.Quote(fn.Format),
		Params:      quoteAll(fn.Params),
		Fields:      g.fields(s),
	}

	g.setup(data, fn, s)

	filename := snakeCase(fn.Name) + "_args.go"

	var buf bytes.Buffer
	if err := argsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeFile(g.config.OutputDir, debugName(filename), buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{Filename: filename, Content: formatted}, nil
}

// fields lays out one struct field per parameter followed by the catch-alls.
func (g *Generator) fields(s *spec.Specification) []fieldData {
	used := map[string]struct{}{}
	fields := make([]fieldData, 0, s.Len()+2)

	add := func(base string, fd fieldData) {
		name := base
		for n := 2; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}

			name = base + strconv.Itoa(n)
		}

		used[name] = struct{}{}
		fd.Name = name
		fields = append(fields, fd)
	}

	for i, d := range s.Params {
		t := typeFor(d)
		fd := fieldData{
			Type: fieldType(t, !s.IsRequired(i)),
			Tag:  d.Name,
		}

		base := camelCase(d.Name)
		if d.Name == "" {
			base = "Arg" + strconv.Itoa(i)
			fd.Tag = "#" + strconv.Itoa(i)
		}

		if g.config.GenerateComments {
			fd.Comment = fmt.Sprintf("code %q, %s", string(d.Code), s.Region(i))
			if d.Code.IsTuple() {
				fd.Comment = fmt.Sprintf("tuple of %d, %s", d.Nested.Len(), s.Region(i))
			}
		}

		add(base, fd)
	}

	if s.AcceptsExtraPositional() {
		add("ExtraArgs", fieldData{Type: "value.Tuple", Tag: "*"})
	}

	if s.AcceptsExtraKeyword() {
		add("ExtraKwargs", fieldData{Type: "*value.Dict", Tag: "**"})
	}

	return fields
}

// setup derives the options Bind applies before the caller's: the
// collector restriction and, unless an "O&" slot needs a Go function, the
// declared hooks.
func (g *Generator) setup(data *templateData, fn *contract.Function, s *spec.Specification) {
	if mask, ok := fn.Collectors(); ok && fn.HasPercent() {
		data.Setup = append(data.Setup, fmt.Sprintf("binder.WithCollectors(%s)", collectorExpr(mask)))
	}

	codes := s.HookCodes()
	if len(codes) == 0 {
		return
	}

	if slices.Contains(codes, "O&") {
		data.OpenHooks = len(codes)
		return
	}

	hooks := make([]string, 0, len(codes))

	for slot, code := range codes {
		var def contract.HookDef
		if slot < len(fn.Hooks) {
			def = fn.Hooks[slot]
		}

		if code == "O!" {
			hooks = append(hooks, fmt.Sprintf("binder.Hook{TypeName: %q}", def.Type))
		} else {
			hooks = append(hooks, fmt.Sprintf("binder.Hook{Encoding: %q}", def.Encoding))
		}
	}

	data.Setup = append(data.Setup, "binder.WithHooks("+strings.Join(hooks, ", ")+")")
}

func collectorExpr(mask spec.CollectorEnum) string {
	switch mask {
	case spec.CollectAll:
		return "binder.CollectAll"
	case spec.CollectPositional:
		return "binder.CollectPositional"
	case spec.CollectKeyword:
		return "binder.CollectKeyword"
	default:
		return "binder.CollectNone"
	}
}

func quoteAll(names []string) []string {
	out := slices.Clone(names)
	for i, n := range out {
		out[i] = strconv.Quote(n)
	}

	return out
}

var argsTemplate = template.Must(template.New("args").Parse(`// Code generated by argbind gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	"{{.}}"
{{end}})

// {{.StructName}}Format and {{.StructName}}Params declare the arguments of {{.FuncName}}.
const {{.StructName}}Format = {{.Format}}

var {{.StructName}}Params = []string{ {{- range $i, $p := .Params}}{{if $i}}, {{end}}{{$p}}{{end -}} }

{{if .Description}}// {{.StructName}} holds the arguments of {{.FuncName}}. {{.Description}}
{{else}}// {{.StructName}} holds the arguments of {{.FuncName}}.
{{end}}type {{.StructName}} struct {
{{range .Fields}}{{if .Comment}}	// {{.Comment}}
{{end}}	{{.Name}} {{.Type}} ` + "`" + `arg:"{{.Tag}}"` + "`" + `
{{end}}}

// Bind binds one call into a. The returned result owns any buffers the
// fields reference; release it once a is no longer used.
{{- if .OpenHooks}}
// opts must supply the {{.OpenHooks}} hook slot(s) with binder.WithHooks.
{{- end}}
func (a *{{.StructName}}) Bind(args value.Tuple, kwargs *value.Dict, opts ...binder.Option) (*binder.Result, error) {
{{- if .Setup}}
	opts = append([]binder.Option{ {{- range $i, $o := .Setup}}{{if $i}}, {{end}}{{$o}}{{end -}} }, opts...)
{{end}}
	res, err := binder.ParseTupleAndKeywords(args, kwargs, {{.StructName}}Format, {{.StructName}}Params, opts...)
	if err != nil {
		return nil, err
	}

	if err := res.Decode(a); err != nil {
		res.Release()
		return nil, err
	}

	return res, nil
}
`))
