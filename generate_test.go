package krpcgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/broady/krpcgen/internal/testfixtures"
	"github.com/broady/krpcgen/ir"
	"github.com/broady/krpcgen/sink"
)

func caseConfig(t *testing.T, c *testfixtures.Case) *Config {
	t.Helper()
	cfg := &Config{SchemaDir: c.SchemaDir(t)}
	if c.Options != "" {
		opts, err := ParseOptions(c.Options)
		require.NoError(t, err)
		opts.Apply(cfg)
	}
	return cfg
}

func TestGenerate_Golden(t *testing.T) {
	for _, name := range testfixtures.Names(t) {
		t.Run(name, func(t *testing.T) {
			c := testfixtures.Load(t, name)
			cfg := caseConfig(t, c)

			mem := sink.NewMemorySink()
			res, err := GenerateTo(context.Background(), cfg, mem)
			require.NoError(t, err)

			assert.Equal(t, []string{"services.rs"}, mem.Paths())
			if diff := cmp.Diff(c.Want, string(mem.Get("services.rs"))); diff != "" {
				t.Errorf("generated output mismatch (-want +got):\n%s", diff)
			}
			assert.Len(t, res.Documents, len(c.Schemas))
		})
	}
}

func TestGenerate_DemoCounts(t *testing.T) {
	cfg := caseConfig(t, testfixtures.Load(t, "demo"))

	res, err := GenerateTo(context.Background(), cfg, sink.NewMemorySink())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Services)
	assert.Equal(t, 3, res.Procedures)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "services.rs", res.Files[0].Path)
}

func TestGenerate_UnknownTypeWarning(t *testing.T) {
	cfg := caseConfig(t, testfixtures.Load(t, "keywords"))

	res, err := GenerateTo(context.Background(), cfg, sink.NewMemorySink())
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	w := res.Warnings[0]
	assert.Equal(t, ir.WarnUnknownTypeCode, w.Code)
	assert.Equal(t, "UI", w.Service)
	require.NotNil(t, w.Source)
	assert.Equal(t, filepath.Join(cfg.SchemaDir, "ui.json"), w.Source.File)
}

func TestGenerate_EmptyDirectory(t *testing.T) {
	mem := sink.NewMemorySink()
	res, err := GenerateTo(context.Background(), &Config{SchemaDir: t.TempDir()}, mem)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Services)
	assert.Empty(t, res.Documents)
	assert.Equal(t, DefaultFrontmatter+"\n", string(mem.Get("services.rs")))
	assert.NotContains(t, string(mem.Get("services.rs")), "pub mod")
}

func TestGenerate_Deterministic(t *testing.T) {
	c := testfixtures.Load(t, "multi")

	// Same files written in the opposite order.
	reversed := t.TempDir()
	for i := len(c.Schemas) - 1; i >= 0; i-- {
		testfixtures.WriteFiles(t, reversed, c.Schemas[i])
	}

	var outputs []string
	for _, dir := range []string{c.SchemaDir(t), c.SchemaDir(t), reversed} {
		mem := sink.NewMemorySink()
		_, err := GenerateTo(context.Background(), &Config{SchemaDir: dir}, mem)
		require.NoError(t, err)
		outputs = append(outputs, string(mem.Get("services.rs")))
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
	assert.Less(t, strings.Index(outputs[0], "pub mod space_center"), strings.Index(outputs[0], "pub mod drawing"))
}

func TestGenerate_MalformedDocumentWritesNothing(t *testing.T) {
	schemaDir := t.TempDir()
	testfixtures.WriteFiles(t, schemaDir,
		txtar.File{Name: "a.json", Data: []byte(`{"A": {"classes": {}, "enumerations": {}, "procedures": {}}}`)},
		txtar.File{Name: "b.json", Data: []byte(`{"B": {"classes": {}, "enumerations": {}}}`)},
	)
	outDir := t.TempDir()
	existing := filepath.Join(outDir, "services.rs")
	require.NoError(t, os.WriteFile(existing, []byte("previous"), 0644))

	_, err := Generate(context.Background(), &Config{SchemaDir: schemaDir, OutDir: outDir})
	require.Error(t, err)

	assert.Equal(t, CodeSchema, CodeOf(err))
	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, filepath.Join(schemaDir, "b.json"), genErr.Path)
	assert.Contains(t, err.Error(), `missing key "procedures"`)

	got, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(got))

	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestGenerate_InvalidJSON(t *testing.T) {
	schemaDir := t.TempDir()
	testfixtures.WriteFiles(t, schemaDir, txtar.File{Name: "bad.json", Data: []byte(`{"A": `)})

	_, err := GenerateTo(context.Background(), &Config{SchemaDir: schemaDir}, sink.NewMemorySink())
	assert.Equal(t, CodeSchema, CodeOf(err))
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestGenerate_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := GenerateTo(context.Background(), &Config{SchemaDir: dir}, sink.NewMemorySink())
	require.Error(t, err)

	assert.Equal(t, CodeIO, CodeOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_Pattern(t *testing.T) {
	c := testfixtures.Load(t, "demo")
	dir := c.SchemaDir(t)
	testfixtures.WriteFiles(t, dir,
		txtar.File{Name: "README.md", Data: []byte("# schemas\n")},
		txtar.File{Name: "nested/other.json", Data: []byte("not even json")},
	)

	_, err := GenerateTo(context.Background(), &Config{SchemaDir: dir}, sink.NewMemorySink())
	assert.Equal(t, CodeSchema, CodeOf(err), "README.md should be parsed without a pattern")

	mem := sink.NewMemorySink()
	res, err := GenerateTo(context.Background(), &Config{SchemaDir: dir, Pattern: "*.json"}, mem)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "demo.json")}, res.Documents)
	if diff := cmp.Diff(c.Want, string(mem.Get("services.rs"))); diff != "" {
		t.Errorf("generated output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ExternalServices(t *testing.T) {
	c := testfixtures.Load(t, "multi")
	dir := c.SchemaDir(t)

	res, err := GenerateTo(context.Background(), &Config{SchemaDir: dir}, sink.NewMemorySink())
	require.NoError(t, err)
	assert.Empty(t, res.External)

	res, err = GenerateTo(context.Background(), &Config{SchemaDir: dir, Pattern: "b_*"}, sink.NewMemorySink())
	require.NoError(t, err)
	assert.Equal(t, []string{"SpaceCenter"}, res.External)
	assert.Empty(t, res.Warnings, "external references are not warnings")
}

func TestGenerate_DuplicateService(t *testing.T) {
	dir := t.TempDir()
	svc := []byte(`{"Demo": {"classes": {}, "enumerations": {}, "procedures": {}}}`)
	testfixtures.WriteFiles(t, dir,
		txtar.File{Name: "a.json", Data: svc},
		txtar.File{Name: "b.json", Data: svc},
	)

	res, err := GenerateTo(context.Background(), &Config{SchemaDir: dir}, sink.NewMemorySink())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Services)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, ir.WarnDuplicateService, res.Warnings[0].Code)
}

func TestGenerate_RequiresOutDir(t *testing.T) {
	_, err := Generate(context.Background(), &Config{SchemaDir: t.TempDir()})
	assert.Equal(t, CodeConfig, CodeOf(err))
	assert.Contains(t, err.Error(), "OutDir is required")
}

func TestGenerate_WritesFile(t *testing.T) {
	c := testfixtures.Load(t, "demo")
	outDir := filepath.Join(t.TempDir(), "src", "gen")

	res, err := Generate(context.Background(), &Config{
		SchemaDir:  c.SchemaDir(t),
		OutDir:     outDir,
		OutputFile: "bindings.rs",
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "bindings.rs"))
	require.NoError(t, err)
	assert.Equal(t, c.Want, string(got))
	assert.Equal(t, int64(len(got)), res.Files[0].Size)
}

func TestGenerate_Canceled(t *testing.T) {
	c := testfixtures.Load(t, "demo")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := sink.NewMemorySink()
	_, err := GenerateTo(ctx, &Config{SchemaDir: c.SchemaDir(t)}, mem)
	require.Error(t, err)
	assert.Equal(t, CodeCanceled, CodeOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mem.Files())
}

func TestGenerate_InvalidConfig(t *testing.T) {
	_, err := GenerateTo(context.Background(), &Config{SchemaDir: t.TempDir(), ClientPath: "not a path"}, sink.NewMemorySink())
	assert.Equal(t, CodeConfig, CodeOf(err))
	assert.Contains(t, err.Error(), "ClientPath")
}
