package gen

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/broady/krpcgen"
)

type Cmd struct {
	SchemaDir      string   `arg:"" help:"Directory containing the JSON service descriptions." type:"existingdir"`
	Out            string   `help:"Output file (default: stdout)." short:"o" type:"path"`
	Pattern        string   `help:"Only read schema files matching this glob (e.g. *.json)."`
	ServicesPath   string   `help:"Path the generated modules are mounted at." placeholder:"PATH"`
	ClientPath     string   `help:"Path of the transport client type." placeholder:"PATH"`
	SchemaPath     string   `help:"Path of the module providing Request, ToArgument and the declaration macros." placeholder:"PATH"`
	Opt            []string `help:"Generator options, comma-separated key=value pairs. Repeatable." placeholder:"KEY=VALUE"`
	DebugResponses bool     `help:"Emit dbg!(&response) in every generated method."`
	NoFrontmatter  bool     `help:"Omit the generated-code banner."`

	Stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *zerolog.Logger) error {
	g := c.generator()

	var (
		res *krpcgen.GenerateResult
		err error
	)
	if c.Out == "" {
		w := c.Stdout
		if w == nil {
			w = os.Stdout
		}
		res, err = g.WriteTo(w)
	} else {
		res, err = g.ToFile(c.Out)
	}
	if err != nil {
		return err
	}

	LogResult(logger, res)
	ev := logger.Info().
		Int("services", res.Services).
		Int("procedures", res.Procedures).
		Int("skipped", res.Skipped)
	if c.Out != "" {
		ev = ev.Str("out", c.Out)
	}
	ev.Msg("generated bindings")
	return nil
}

// generator builds the fluent generator. Option strings apply first so the
// dedicated flags take precedence.
func (c *Cmd) generator() *krpcgen.Generator {
	g := krpcgen.FromDir(c.SchemaDir)
	for _, opt := range c.Opt {
		g = g.Options(opt)
	}
	if c.Pattern != "" {
		g = g.Pattern(c.Pattern)
	}
	if c.ServicesPath != "" {
		g = g.ServicesPath(c.ServicesPath)
	}
	if c.ClientPath != "" {
		g = g.ClientPath(c.ClientPath)
	}
	if c.SchemaPath != "" {
		g = g.SchemaPath(c.SchemaPath)
	}
	if c.DebugResponses {
		g = g.DebugResponses()
	}
	if c.NoFrontmatter {
		g = g.Frontmatter("")
	}
	return g
}

// LogResult logs the documents read and the external services at debug
// level, and every warning.
func LogResult(logger *zerolog.Logger, res *krpcgen.GenerateResult) {
	for _, doc := range res.Documents {
		logger.Debug().Str("file", doc).Msg("read schema")
	}
	for _, svc := range res.External {
		logger.Debug().Str("service", svc).Msg("class references a service outside this run")
	}
	for _, w := range res.Warnings {
		ev := logger.Warn().Str("code", w.Code)
		if w.Service != "" {
			ev = ev.Str("service", w.Service)
		}
		if w.Source != nil {
			ev = ev.Str("file", w.Source.File)
		}
		ev.Msg(w.Message)
	}
}
