package krpcgen

import (
	"context"
	"io"
	"path/filepath"

	"github.com/broady/krpcgen/sink"
)

// Generator provides a fluent API for code generation.
// Create with FromDir() and configure with method chaining.
//
// Example:
//
//	krpcgen.FromDir("./schemas").
//	    ServicesPath("crate::rpc").
//	    ToFile("./src/rpc/services.rs")
type Generator struct {
	cfg    Config
	ctx    context.Context
	optErr error
}

// FromDir creates a Generator reading the schema documents in dir.
func FromDir(dir string) *Generator {
	return &Generator{cfg: Config{SchemaDir: dir}}
}

// Context sets the context for the run. Default: context.Background().
func (g *Generator) Context(ctx context.Context) *Generator {
	g.ctx = ctx
	return g
}

// Pattern restricts the schema files to names matching glob.
func (g *Generator) Pattern(glob string) *Generator {
	g.cfg.Pattern = glob
	return g
}

// ServicesPath sets the path the generated modules are mounted at.
func (g *Generator) ServicesPath(path string) *Generator {
	g.cfg.ServicesPath = path
	return g
}

// ClientPath sets the path of the transport client type.
func (g *Generator) ClientPath(path string) *Generator {
	g.cfg.ClientPath = path
	return g
}

// SchemaPath sets the path of the module providing the runtime glue.
func (g *Generator) SchemaPath(path string) *Generator {
	g.cfg.SchemaPath = path
	return g
}

// IndentSize sets the number of spaces per indentation level.
func (g *Generator) IndentSize(n int) *Generator {
	g.cfg.IndentSize = n
	return g
}

// DebugResponses makes every generated method dbg! its raw response.
func (g *Generator) DebugResponses() *Generator {
	g.cfg.DebugResponses = true
	return g
}

// Frontmatter replaces the banner at the top of the generated file.
// An empty string removes it.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	g.cfg.NoFrontmatter = content == ""
	return g
}

// Options applies a protoc-style option string (see ParseOptions).
// An invalid string is reported by the terminal operation.
func (g *Generator) Options(s string) *Generator {
	opts, err := ParseOptions(s)
	if err != nil {
		g.optErr = err
		return g
	}
	opts.Apply(&g.cfg)
	return g
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// ToFile generates the bindings and writes them to path.
// This is a terminal operation that writes to disk.
func (g *Generator) ToFile(path string) (*GenerateResult, error) {
	if g.optErr != nil {
		return nil, g.optErr
	}
	cfg := g.cfg
	cfg.OutDir = filepath.Dir(path)
	cfg.OutputFile = filepath.ToSlash(filepath.Base(path))
	return Generate(g.context(), &cfg)
}

// WriteTo generates the bindings and writes them to w.
func (g *Generator) WriteTo(w io.Writer) (*GenerateResult, error) {
	if g.optErr != nil {
		return nil, g.optErr
	}
	return GenerateTo(g.context(), &g.cfg, sink.NewWriterSink(w))
}

// Generate returns the bindings in memory without writing to disk.
// The text is in GenerateResult.Content.
func (g *Generator) Generate() (*GenerateResult, error) {
	if g.optErr != nil {
		return nil, g.optErr
	}
	mem := sink.NewMemorySink()
	res, err := GenerateTo(g.context(), &g.cfg, mem)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Files {
		res.Content += string(mem.Get(f.Path))
	}
	return res, nil
}

func (g *Generator) context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}
	return g.ctx
}
