package krpcgen

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"

	"github.com/broady/krpcgen/rust"
	"github.com/broady/krpcgen/sink"
)

// DefaultFrontmatter is the banner placed above the generated modules.
const DefaultFrontmatter = "// Code generated by krpcgen. DO NOT EDIT."

// Config holds the configuration for code generation.
type Config struct {
	// SchemaDir is the directory holding the JSON service descriptions.
	// Every regular file in it is read; subdirectories are ignored.
	SchemaDir string `validate:"required"`

	// Pattern restricts the schema files to names matching this glob
	// (e.g. "*.json"). Empty means every file.
	Pattern string `validate:"omitempty,glob"`

	// OutDir is the directory the output file is written to. It is not
	// used by Generator.Generate and Generator.WriteTo.
	OutDir string

	// OutputFile is the output path relative to OutDir.
	// Default: "services.rs"
	OutputFile string `validate:"relpath"`

	// ServicesPath is where the consuming crate mounts the generated modules.
	// Default: "crate::services"
	ServicesPath string `validate:"rustpath"`

	// ClientPath is the path of the transport client type.
	// Default: "crate::client::Client"
	ClientPath string `validate:"rustpath"`

	// SchemaPath is the module providing Request, ToArgument and the
	// declaration macros.
	// Default: "crate::schema"
	SchemaPath string `validate:"rustpath"`

	// IndentSize is the number of spaces per indentation level.
	// Default: 4
	IndentSize int `validate:"min=1,max=16"`

	// DebugResponses emits dbg!(&response) in every generated method.
	DebugResponses bool

	// Frontmatter is placed at the top of the generated file.
	// Default: DefaultFrontmatter. Set NoFrontmatter to omit it.
	Frontmatter string

	// NoFrontmatter disables the frontmatter, including the default one.
	NoFrontmatter bool
}

var validate = newValidator()

var rustPathRE = regexp.MustCompile(`^(::)?(r#)?[A-Za-z_][A-Za-z0-9_]*(::(r#)?[A-Za-z_][A-Za-z0-9_]*)*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("rustpath", func(fl validator.FieldLevel) bool {
		return rustPathRE.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		_, err := filepath.Match(fl.Field().String(), "")
		return err == nil
	}))
	must(v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		return sink.ValidatePath(fl.Field().String()) == nil
	}))
	return v
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg
	def := rust.DefaultGeneratorConfig()

	if result.OutputFile == "" {
		result.OutputFile = rust.DefaultOutputFile
	}
	if result.ServicesPath == "" {
		result.ServicesPath = def.ServicesPath
	}
	if result.ClientPath == "" {
		result.ClientPath = def.ClientPath
	}
	if result.SchemaPath == "" {
		result.SchemaPath = def.SchemaPath
	}
	if result.IndentSize == 0 {
		result.IndentSize = def.IndentSize
	}
	if result.NoFrontmatter {
		result.Frontmatter = ""
	} else if result.Frontmatter == "" {
		result.Frontmatter = DefaultFrontmatter
	}

	return &result
}

// Validate applies defaults to a copy of cfg and checks it.
func (cfg *Config) Validate() error {
	if err := validate.Struct(applyConfigDefaults(cfg)); err != nil {
		return configError(err)
	}
	return nil
}

func (cfg *Config) generatorConfig() rust.GeneratorConfig {
	return rust.GeneratorConfig{
		ServicesPath:   cfg.ServicesPath,
		ClientPath:     cfg.ClientPath,
		SchemaPath:     cfg.SchemaPath,
		IndentSize:     cfg.IndentSize,
		DebugResponses: cfg.DebugResponses,
		Frontmatter:    cfg.Frontmatter,
	}
}

// Options are the settings that can be passed as a single option string,
// in the style of protoc plugin parameters:
//
//	services_path=crate::rpc,debug_responses=true
type Options struct {
	ServicesPath   string `schema:"services_path"`
	ClientPath     string `schema:"client_path"`
	SchemaPath     string `schema:"schema_path"`
	OutputFile     string `schema:"output_file"`
	Pattern        string `schema:"pattern"`
	IndentSize     *int   `schema:"indent_size"`
	DebugResponses *bool  `schema:"debug_responses"`
	Frontmatter    *bool  `schema:"frontmatter"`
}

// ParseOptions decodes a comma-separated list of key=value pairs.
// Unknown keys are an error.
func ParseOptions(s string) (*Options, error) {
	values := url.Values{}
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, &Error{Code: CodeConfig, Err: errors.Errorf("option %q is not of the form key=value", kv)}
		}
		values.Add(strings.TrimSpace(k), strings.TrimSpace(v))
	}

	decoder := schema.NewDecoder()
	var opts Options
	if err := decoder.Decode(&opts, values); err != nil {
		return nil, &Error{Code: CodeConfig, Err: errors.Wrap(err, "invalid options")}
	}
	return &opts, nil
}

// Apply overrides cfg with every option that was set.
func (o *Options) Apply(cfg *Config) {
	if o.ServicesPath != "" {
		cfg.ServicesPath = o.ServicesPath
	}
	if o.ClientPath != "" {
		cfg.ClientPath = o.ClientPath
	}
	if o.SchemaPath != "" {
		cfg.SchemaPath = o.SchemaPath
	}
	if o.OutputFile != "" {
		cfg.OutputFile = o.OutputFile
	}
	if o.Pattern != "" {
		cfg.Pattern = o.Pattern
	}
	if o.IndentSize != nil {
		cfg.IndentSize = *o.IndentSize
	}
	if o.DebugResponses != nil {
		cfg.DebugResponses = *o.DebugResponses
	}
	if o.Frontmatter != nil {
		cfg.NoFrontmatter = !*o.Frontmatter
	}
}
