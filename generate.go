package krpcgen

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/broady/krpcgen/ir"
	"github.com/broady/krpcgen/provider"
	"github.com/broady/krpcgen/rust"
	"github.com/broady/krpcgen/sink"
)

// GenerateResult describes a completed run.
type GenerateResult struct {
	// Files lists the files written to the sink.
	Files []rust.OutputFile

	// Documents lists the schema files that were read, in processing order.
	Documents []string

	// Services is the number of service modules emitted.
	Services int

	// Procedures is the number of methods emitted.
	Procedures int

	// Skipped counts procedures whose name is not in type style.
	Skipped int

	// Warnings contains non-fatal issues. The library never logs them.
	Warnings []ir.Warning

	// External lists the services referenced by class types that were not
	// part of the run, sorted by name.
	External []string

	// Content is the generated text. Only set by Generator.Generate.
	Content string
}

// Generate reads every schema document in cfg.SchemaDir and writes the
// bindings to cfg.OutputFile inside cfg.OutDir.
func Generate(ctx context.Context, cfg *Config) (*GenerateResult, error) {
	if cfg.OutDir == "" {
		return nil, &Error{Code: CodeConfig, Err: errors.New("OutDir is required")}
	}
	return GenerateTo(ctx, cfg, sink.NewFilesystemSink(cfg.OutDir))
}

// GenerateTo is Generate with a caller-supplied sink. The sink receives
// exactly one write, and only after every document parsed successfully.
func GenerateTo(ctx context.Context, cfg *Config, out sink.OutputSink) (*GenerateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = applyConfigDefaults(cfg)

	schema, err := LoadSchema(ctx, cfg.SchemaDir, cfg.Pattern)
	if err != nil {
		return nil, err
	}

	gen := &rust.RustGenerator{}
	res, err := gen.Generate(ctx, schema, rust.GenerateOptions{
		Sink:       out,
		OutputFile: cfg.OutputFile,
		Config:     cfg.generatorConfig(),
	})
	if err != nil {
		return nil, wrapError(CodeSink, cfg.OutputFile, err, "")
	}

	return &GenerateResult{
		Files:      res.Files,
		Documents:  sourceFiles(schema),
		Services:   res.Services,
		Procedures: res.Procedures,
		Skipped:    res.Skipped,
		Warnings:   res.Warnings,
		External:   schema.ExternalServices(),
	}, nil
}

// LoadSchema parses every regular file in dir whose name matches pattern
// (all files if pattern is empty) and folds the documents into one schema.
// Files are processed in name order. The first malformed document aborts
// the load.
func LoadSchema(ctx context.Context, dir, pattern string) (*ir.Schema, error) {
	files, err := listSchemaFiles(dir, pattern)
	if err != nil {
		return nil, err
	}

	p := &provider.JSONProvider{}
	schema := &ir.Schema{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, wrapError(CodeIO, file, err, "failed to read schema")
		}
		doc, err := p.BuildDocument(ctx, provider.JSONInputOptions{Path: file, Data: data})
		if err != nil {
			return nil, wrapError(CodeSchema, file, err, "")
		}
		schema.AddDocument(*doc)
	}
	return schema, nil
}

// listSchemaFiles returns the paths of the regular files in dir, sorted by
// name. Symlinks are followed; subdirectories are not descended into.
func listSchemaFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, wrapError(CodeIO, dir, err, "failed to list schema directory")
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern != "" {
			ok, err := filepath.Match(pattern, entry.Name())
			if err != nil {
				return nil, wrapError(CodeConfig, "", err, "invalid pattern %q", pattern)
			}
			if !ok {
				continue
			}
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			return nil, wrapError(CodeIO, path, err, "failed to stat schema")
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func sourceFiles(schema *ir.Schema) []string {
	files := make([]string, 0, len(schema.Documents))
	for _, src := range schema.Documents {
		files = append(files, src.File)
	}
	return files
}
