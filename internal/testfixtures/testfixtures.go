// Package testfixtures provides golden test cases for the generator tests.
//
// Each case is a txtar archive in testdata/. Files under schema/ form the
// schema directory, "want.rs" is the expected output, and the optional
// "options" file holds an option string for krpcgen.ParseOptions.
package testfixtures

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

//go:embed testdata/*.txtar
var testdata embed.FS

// Case is one golden test case.
type Case struct {
	Name    string
	Comment string
	Schemas []txtar.File
	Options string
	Want    string
}

// Names returns the names of all cases, sorted.
func Names(t testing.TB) []string {
	t.Helper()
	entries, err := testdata.ReadDir("testdata")
	if err != nil {
		t.Fatalf("reading testdata: %v", err)
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".txtar"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Load parses the named case.
func Load(t testing.TB, name string) *Case {
	t.Helper()
	data, err := testdata.ReadFile(path.Join("testdata", name+".txtar"))
	if err != nil {
		t.Fatalf("loading case %s: %v", name, err)
	}
	ar := txtar.Parse(data)

	c := &Case{Name: name, Comment: strings.TrimSpace(string(ar.Comment))}
	for _, f := range ar.Files {
		switch {
		case strings.HasPrefix(f.Name, "schema/"):
			c.Schemas = append(c.Schemas, txtar.File{
				Name: strings.TrimPrefix(f.Name, "schema/"),
				Data: f.Data,
			})
		case f.Name == "options":
			c.Options = strings.TrimSpace(string(f.Data))
		case f.Name == "want.rs":
			c.Want = string(f.Data)
		default:
			t.Fatalf("case %s: unexpected file %q", name, f.Name)
		}
	}
	if len(c.Schemas) == 0 {
		t.Fatalf("case %s: no schema files", name)
	}
	return c
}

// SchemaDir writes the case's schema files to a fresh temporary directory
// and returns its path.
func (c *Case) SchemaDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, c.Schemas...)
	return dir
}

// WriteFiles writes files below dir, creating parent directories.
func WriteFiles(t testing.TB, dir string, files ...txtar.File) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, f.Data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}
