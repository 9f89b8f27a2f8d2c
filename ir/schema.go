package ir

import "sort"

// Document is the result of parsing one schema file.
type Document struct {
	// Source identifies the file.
	Source Source

	// Services holds the document's services, sorted by name.
	Services []ServiceDescriptor

	// Warnings contains non-fatal issues found while parsing.
	Warnings []Warning
}

// Schema represents every service of one generation run.
//
// Ordering: Services appear in document order (documents in the order they
// were added, services within a document sorted by name). Generators emit in
// this order and MUST NOT reorder parameters or enum values.
type Schema struct {
	// Documents lists the source of every document folded into the schema.
	Documents []Source

	// Services contains every service of every document.
	Services []ServiceDescriptor

	// Warnings contains non-fatal issues encountered during schema building.
	Warnings []Warning
}

// AddDocument appends a parsed document to the schema.
func (s *Schema) AddDocument(doc Document) {
	s.Documents = append(s.Documents, doc.Source)
	for _, svc := range doc.Services {
		s.AddService(svc)
	}
	for _, w := range doc.Warnings {
		s.AddWarning(w)
	}
}

// AddService adds a service descriptor to the schema.
func (s *Schema) AddService(svc ServiceDescriptor) {
	s.Services = append(s.Services, svc)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindService looks up a service by its raw name. Returns nil if not found.
func (s *Schema) FindService(name string) *ServiceDescriptor {
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	return nil
}

// ExternalServices returns the sorted names of the services that class
// references point to but that are not part of the schema. The generated
// code only compiles once bindings for these services are linked in.
func (s *Schema) ExternalServices() []string {
	seen := make(map[string]bool)
	var names []string
	var visit func(t TypeDescriptor)
	visit = func(t TypeDescriptor) {
		switch d := t.(type) {
		case *TupleDescriptor:
			for _, el := range d.Elements {
				visit(el)
			}
		case *ListDescriptor:
			visit(d.Element)
		case *ClassDescriptor:
			if seen[d.Service] {
				return
			}
			seen[d.Service] = true
			if s.FindService(d.Service) == nil {
				names = append(names, d.Service)
			}
		}
	}
	for _, svc := range s.Services {
		for _, proc := range svc.Procedures {
			for _, p := range proc.Parameters {
				visit(p.Type)
			}
			visit(proc.ReturnType)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks the schema for structural issues that make the generated
// code unusable without making generation impossible.
// It never fails; issues are reported as warnings. Class references are not
// checked: they may name services outside this run (see ExternalServices).
func (s *Schema) Validate() []Warning {
	var warnings []Warning

	seen := make(map[string]Source)
	for _, svc := range s.Services {
		if first, ok := seen[svc.Name]; ok {
			src := svc.Source
			warnings = append(warnings, Warning{
				Code:    WarnDuplicateService,
				Message: "service " + svc.Name + " is declared in both " + first.File + " and " + src.File,
				Source:  &src,
				Service: svc.Name,
			})
			continue
		}
		seen[svc.Name] = svc.Source
	}

	return warnings
}
