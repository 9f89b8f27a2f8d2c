package provider

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SchemaError reports a document whose shape does not match the expected
// service description layout. It is always fatal for the generation run.
type SchemaError struct {
	// File is the document path.
	File string

	// Path is the sequence of keys and array indexes leading to the offending
	// value, e.g. ["SpaceCenter", "procedures", "GetName", "parameters", "0"].
	Path []string

	// Message describes the violation.
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if len(e.Path) > 0 {
		sb.WriteString(strings.Join(e.Path, "."))
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// PathString returns the dotted path of the offending value.
func (e *SchemaError) PathString() string {
	return strings.Join(e.Path, ".")
}

func (b *documentBuilder) errorf(path []string, format string, args ...any) error {
	return errors.WithStack(&SchemaError{
		File:    b.source.File,
		Path:    append([]string(nil), path...),
		Message: fmt.Sprintf(format, args...),
	})
}
