package check

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/broady/krpcgen"
	"github.com/broady/krpcgen/cmd/krpcgen/internal/gen"
)

type Cmd struct {
	SchemaDir string `arg:"" help:"Directory containing the JSON service descriptions." type:"existingdir"`
	Pattern   string `help:"Only read schema files matching this glob (e.g. *.json)."`
	Strict    bool   `help:"Fail if generation produced warnings."`

	Stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *zerolog.Logger) error {
	res, err := krpcgen.FromDir(c.SchemaDir).Pattern(c.Pattern).Generate()
	if err != nil {
		return err
	}
	gen.LogResult(logger, res)

	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "✓ %d documents, %d services\n", len(res.Documents), res.Services)
	fmt.Fprintf(w, "✓ %d procedures bound, %d skipped\n", res.Procedures, res.Skipped)
	if len(res.External) > 0 {
		fmt.Fprintf(w, "• references services outside this run: %s\n", strings.Join(res.External, ", "))
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "✗ %d warnings\n", len(res.Warnings))
		if c.Strict {
			return errors.Errorf("%d warnings", len(res.Warnings))
		}
		return nil
	}
	fmt.Fprintln(w, "✓ No warnings")
	return nil
}
