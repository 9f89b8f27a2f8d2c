package rust

import (
	"context"

	"github.com/broady/krpcgen/ir"
	"github.com/broady/krpcgen/sink"
)

// Generator transforms a schema into target language source code.
type Generator interface {
	// Name returns the generator's identifier (e.g. "rust").
	Name() string

	// Generate produces source code for the given schema.
	Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives the generated output.
	Sink sink.OutputSink

	// OutputFile is the sink-relative path of the generated file.
	// Defaults to DefaultOutputFile.
	OutputFile string

	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// Services is the number of service modules emitted.
	Services int

	// Procedures is the number of methods emitted.
	Procedures int

	// Skipped counts procedures left out because their name is not in
	// type style.
	Skipped int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	Path string
	Size int64
}

// DefaultOutputFile is the file name used when GenerateOptions.OutputFile is empty.
const DefaultOutputFile = "services.rs"

// GeneratorConfig holds the paths the generated code refers to and the
// formatting options.
type GeneratorConfig struct {
	// ServicesPath is where the service modules are mounted in the consuming
	// crate. Class references are qualified with it.
	ServicesPath string

	// ClientPath is the path of the transport client type.
	ClientPath string

	// SchemaPath is the module providing Request, ToArgument and the
	// rpc_object!/rpc_enum! macros.
	SchemaPath string

	IndentSize int // Spaces per indent level (default 4)

	// DebugResponses adds a dbg!(&response) statement to every method.
	DebugResponses bool

	// Frontmatter is emitted verbatim before the first module.
	Frontmatter string
}

// DefaultGeneratorConfig returns the configuration matching the module
// layout the generated code expects by default.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ServicesPath: "crate::services",
		ClientPath:   "crate::client::Client",
		SchemaPath:   "crate::schema",
		IndentSize:   4,
	}
}
