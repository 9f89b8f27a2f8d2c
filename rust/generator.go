package rust

import (
	"context"

	"github.com/pkg/errors"

	"github.com/broady/krpcgen/ir"
)

// RustGenerator implements the Generator interface for Rust client bindings.
type RustGenerator struct{}

var _ Generator = (*RustGenerator)(nil)

// Name returns "rust".
func (g *RustGenerator) Name() string {
	return "rust"
}

// Generate renders schema and writes the result to opts.Sink as a single file.
// Nothing is written if rendering fails.
func (g *RustGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if schema == nil {
		return nil, errors.New("schema is nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("sink is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, result := Render(schema, opts.Config)

	path := opts.OutputFile
	if path == "" {
		path = DefaultOutputFile
	}
	if err := opts.Sink.WriteFile(ctx, path, []byte(content)); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}
	result.Files = []OutputFile{{Path: path, Size: int64(len(content))}}

	return result, nil
}

// Render emits every service of schema, in schema order, and returns the
// rendered text. The returned result has no Files.
func Render(schema *ir.Schema, cfg GeneratorConfig) (string, *GenerateResult) {
	indent := cfg.IndentSize
	if indent <= 0 {
		indent = 4
	}

	result := &GenerateResult{}
	result.Warnings = append(result.Warnings, schema.Warnings...)
	result.Warnings = append(result.Warnings, schema.Validate()...)

	var scope Scope
	if cfg.Frontmatter != "" {
		scope = scope.With(Raw(cfg.Frontmatter))
	}

	emitter := NewEmitter(cfg)
	for i := range schema.Services {
		out := emitter.EmitService(&schema.Services[i])
		scope = scope.With(out.Module)
		result.Services++
		result.Procedures += out.Procedures
		result.Skipped += out.Skipped
		result.Warnings = append(result.Warnings, out.Warnings...)
	}

	return scope.Render(indent), result
}
