package ir

import "testing"

func TestSchema_AddDocument(t *testing.T) {
	var schema Schema

	schema.AddDocument(Document{
		Source:   Source{File: "a.json"},
		Services: []ServiceDescriptor{{Name: "Alpha"}, {Name: "Beta"}},
		Warnings: []Warning{{Code: WarnUnknownTypeCode}},
	})
	schema.AddDocument(Document{
		Source:   Source{File: "b.json"},
		Services: []ServiceDescriptor{{Name: "Gamma"}},
	})

	if len(schema.Documents) != 2 {
		t.Fatalf("len(Documents) = %d, want 2", len(schema.Documents))
	}
	var names []string
	for _, svc := range schema.Services {
		names = append(names, svc.Name)
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	if len(names) != len(want) {
		t.Fatalf("services = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("services[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if len(schema.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d, want 1", len(schema.Warnings))
	}
}

func TestSchema_FindService(t *testing.T) {
	schema := &Schema{}
	schema.AddService(ServiceDescriptor{Name: "KRPC"})
	schema.AddService(ServiceDescriptor{Name: "SpaceCenter"})

	if got := schema.FindService("SpaceCenter"); got == nil || got.Name != "SpaceCenter" {
		t.Errorf("FindService(SpaceCenter) = %v", got)
	}
	if got := schema.FindService("space_center"); got != nil {
		t.Errorf("FindService must match raw names only, got %v", got)
	}
}

func TestSchema_ExternalServices(t *testing.T) {
	var schema Schema
	schema.AddDocument(Document{
		Source: Source{File: "drawing.json"},
		Services: []ServiceDescriptor{{
			Name: "Drawing",
			Procedures: []ProcedureDescriptor{
				{
					Name: "AddLine",
					Parameters: []ParameterDescriptor{
						{Name: "points", Type: List(Tuple(Double(), Class("SpaceCenter", "Vessel")))},
						{Name: "frame", Type: Class("SpaceCenter", "ReferenceFrame")},
					},
					ReturnType: Class("Drawing", "Line"),
				},
				{Name: "Clear", ReturnType: List(Class("UI", "Canvas"))},
				{Name: "Remove"},
			},
		}},
	})

	got := schema.ExternalServices()
	want := []string{"SpaceCenter", "UI"}
	if len(got) != len(want) {
		t.Fatalf("ExternalServices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExternalServices()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	schema.AddDocument(Document{
		Source:   Source{File: "space_center.json"},
		Services: []ServiceDescriptor{{Name: "SpaceCenter"}},
	})
	schema.AddDocument(Document{
		Source:   Source{File: "ui.json"},
		Services: []ServiceDescriptor{{Name: "UI"}},
	})
	if got := schema.ExternalServices(); len(got) != 0 {
		t.Errorf("ExternalServices() = %v, want none", got)
	}
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name     string
		services []ServiceDescriptor
		want     []string
	}{
		{
			name:     "empty",
			services: nil,
			want:     nil,
		},
		{
			name: "distinct services",
			services: []ServiceDescriptor{
				{Name: "KRPC", Source: Source{File: "krpc.json"}},
				{Name: "Drawing", Source: Source{File: "drawing.json"}},
			},
			want: nil,
		},
		{
			name: "duplicate across documents",
			services: []ServiceDescriptor{
				{Name: "Drawing", Source: Source{File: "a.json"}},
				{Name: "Drawing", Source: Source{File: "b.json"}},
				{Name: "Drawing", Source: Source{File: "c.json"}},
			},
			want: []string{WarnDuplicateService, WarnDuplicateService},
		},
		{
			name: "dangling class reference is not reported",
			services: []ServiceDescriptor{{
				Name: "UI",
				Procedures: []ProcedureDescriptor{{
					Name:       "GetCanvas",
					ReturnType: Class("Elsewhere", "Canvas"),
				}},
			}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := &Schema{Services: tt.services}
			got := schema.Validate()
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() returned %d warnings, want %d: %v", len(got), len(tt.want), got)
			}
			for i, w := range got {
				if w.Code != tt.want[i] {
					t.Errorf("warning[%d].Code = %q, want %q", i, w.Code, tt.want[i])
				}
			}
		})
	}
}
