package rust

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/broady/krpcgen/ir"
	"github.com/broady/krpcgen/sink"
)

func TestRustGenerator_Name(t *testing.T) {
	gen := &RustGenerator{}
	if got := gen.Name(); got != "rust" {
		t.Errorf("Name() = %q, want %q", got, "rust")
	}
}

func TestRustGenerator_Generate(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddDocument(ir.Document{
		Source:   ir.Source{File: "demo.json"},
		Services: []ir.ServiceDescriptor{demoService()},
	})

	memSink := sink.NewMemorySink()
	gen := &RustGenerator{}

	result, err := gen.Generate(context.Background(), schema, GenerateOptions{
		Sink:   memSink,
		Config: DefaultGeneratorConfig(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Services != 1 || result.Procedures != 1 || result.Skipped != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", result.Services, result.Procedures, result.Skipped)
	}
	if len(result.Files) != 1 || result.Files[0].Path != DefaultOutputFile {
		t.Fatalf("Files = %v, want one %s", result.Files, DefaultOutputFile)
	}

	content := string(memSink.Get(DefaultOutputFile))
	if int64(len(content)) != result.Files[0].Size {
		t.Errorf("Size = %d, want %d", result.Files[0].Size, len(content))
	}
	for _, want := range []string{
		"pub mod demo {",
		"pub struct Demo {",
		"crate::schema::rpc_object!(Vessel);",
		"crate::schema::rpc_enum!(Mode, [A, B]);",
		"pub fn get_name(&self) -> String {",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q\n%s", want, content)
		}
	}
	if strings.Contains(content, "vessel_get_name") {
		t.Errorf("non type-style procedure was emitted:\n%s", content)
	}
	if !strings.HasSuffix(content, "}\n") {
		t.Errorf("output should end with a newline")
	}
}

func TestRustGenerator_OutputFile(t *testing.T) {
	memSink := sink.NewMemorySink()
	_, err := (&RustGenerator{}).Generate(context.Background(), &ir.Schema{}, GenerateOptions{
		Sink:       memSink,
		OutputFile: "gen/bindings.rs",
		Config:     DefaultGeneratorConfig(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if memSink.Get("gen/bindings.rs") == nil {
		t.Errorf("gen/bindings.rs was not written; files: %v", memSink.Files())
	}
}

func TestRustGenerator_Errors(t *testing.T) {
	gen := &RustGenerator{}

	if _, err := gen.Generate(context.Background(), nil, GenerateOptions{Sink: sink.NewMemorySink()}); err == nil {
		t.Error("expected error for nil schema")
	}
	if _, err := gen.Generate(context.Background(), &ir.Schema{}, GenerateOptions{}); err == nil {
		t.Error("expected error for nil sink")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	memSink := sink.NewMemorySink()
	_, err := gen.Generate(ctx, &ir.Schema{}, GenerateOptions{Sink: memSink})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if len(memSink.Files()) != 0 {
		t.Errorf("canceled generation wrote files: %v", memSink.Files())
	}
}

type failingSink struct{ err error }

func (s failingSink) WriteFile(ctx context.Context, path string, content []byte) error {
	return s.err
}

func TestRustGenerator_SinkError(t *testing.T) {
	diskFull := errors.New("disk full")
	_, err := (&RustGenerator{}).Generate(context.Background(), &ir.Schema{}, GenerateOptions{
		Sink:   failingSink{err: diskFull},
		Config: DefaultGeneratorConfig(),
	})
	if !errors.Is(err, diskFull) {
		t.Fatalf("Generate() error = %v, want wrapped %v", err, diskFull)
	}
	if want := "failed to write services.rs: disk full"; err.Error() != want {
		t.Errorf("Generate() error = %q, want %q", err, want)
	}
}

func TestRender_Empty(t *testing.T) {
	tests := []struct {
		name        string
		frontmatter string
		want        string
	}{
		{"no frontmatter", "", ""},
		{"frontmatter", "// Code generated by krpcgen. DO NOT EDIT.", "// Code generated by krpcgen. DO NOT EDIT.\n"},
		{"frontmatter with newline", "// a\n// b\n", "// a\n// b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			cfg.Frontmatter = tt.frontmatter
			got, result := Render(&ir.Schema{}, cfg)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if result.Services != 0 {
				t.Errorf("Services = %d, want 0", result.Services)
			}
		})
	}
}

func TestRender_FrontmatterSeparated(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Frontmatter = "// header"
	schema := &ir.Schema{Services: []ir.ServiceDescriptor{{Name: "A"}}}

	got, _ := Render(schema, cfg)
	if !strings.HasPrefix(got, "// header\n\npub mod a {\n") {
		t.Errorf("unexpected prefix:\n%s", got)
	}
}

func TestRender_ServiceOrderAndDeterminism(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddDocument(ir.Document{
		Source:   ir.Source{File: "a.json"},
		Services: []ir.ServiceDescriptor{{Name: "Alpha"}, {Name: "Beta"}},
	})
	schema.AddDocument(ir.Document{
		Source:   ir.Source{File: "b.json"},
		Services: []ir.ServiceDescriptor{demoService()},
	})

	cfg := DefaultGeneratorConfig()
	first, _ := Render(schema, cfg)
	second, _ := Render(schema, cfg)
	if first != second {
		t.Fatal("Render is not deterministic")
	}

	alpha := strings.Index(first, "pub mod alpha {")
	beta := strings.Index(first, "pub mod beta {")
	demo := strings.Index(first, "pub mod demo {")
	if alpha < 0 || beta < alpha || demo < beta {
		t.Errorf("modules out of order: alpha=%d beta=%d demo=%d", alpha, beta, demo)
	}
	if !strings.Contains(first, "}\n\npub mod beta {") {
		t.Errorf("modules should be separated by a blank line:\n%s", first)
	}
}

func TestRender_CollectsWarnings(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddDocument(ir.Document{
		Source:   ir.Source{File: "a.json"},
		Services: []ir.ServiceDescriptor{{Name: "S", Source: ir.Source{File: "a.json"}}},
		Warnings: []ir.Warning{{Code: ir.WarnUnknownTypeCode, Message: "x"}},
	})
	schema.AddDocument(ir.Document{
		Source: ir.Source{File: "b.json"},
		Services: []ir.ServiceDescriptor{{
			Name:       "S",
			Source:     ir.Source{File: "b.json"},
			Procedures: []ir.ProcedureDescriptor{{Name: "New"}},
		}},
	})

	_, result := Render(schema, DefaultGeneratorConfig())

	var codes []string
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	want := []string{ir.WarnUnknownTypeCode, ir.WarnDuplicateService, ir.WarnMethodNameCollision}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Errorf("warning codes = %v, want %v", codes, want)
	}
}
