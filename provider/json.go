// Package provider implements input providers for extracting service descriptions
// from schema documents. Providers convert documents into the intermediate
// representation (IR) that generators use to produce target language code.
package provider

import (
	"context"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/broady/krpcgen/ir"
)

// JSONProvider extracts services from kRPC JSON service definitions.
//
// A document is an object mapping service names to service bodies:
//
//	{"SpaceCenter": {"classes": {...}, "enumerations": {...}, "procedures": {...}}}
//
// Every access is checked; the first shape violation aborts the document
// with a *SchemaError. Keys the generator does not use ("documentation",
// "id", "game_scenes", ...) are ignored.
type JSONProvider struct{}

// JSONInputOptions configures JSON document extraction.
type JSONInputOptions struct {
	// Path identifies the document in errors and warnings.
	Path string

	// Data is the raw document content.
	Data []byte
}

// BuildDocument parses one document.
//
// JSON objects are logically unordered, so services, classes, enumerations
// and procedures come back sorted by name. JSON arrays (parameters, enum
// values, tuple members) keep document order.
func (p *JSONProvider) BuildDocument(ctx context.Context, opts JSONInputOptions) (*ir.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "building %s", opts.Path)
	}

	b := &documentBuilder{
		source: ir.Source{File: opts.Path},
	}

	if !gjson.ValidBytes(opts.Data) {
		return nil, b.errorf(nil, "invalid JSON")
	}
	root := gjson.ParseBytes(opts.Data)
	if !root.IsObject() {
		return nil, b.errorf(nil, "document must be an object of services, got %s", kindOf(root))
	}

	doc := &ir.Document{Source: b.source}
	for _, entry := range sortedEntries(root) {
		svc, err := b.buildService(entry.key, entry.value)
		if err != nil {
			return nil, err
		}
		doc.Services = append(doc.Services, *svc)
	}
	doc.Warnings = b.warnings

	return doc, nil
}

// documentBuilder maintains state while walking one document.
type documentBuilder struct {
	source   ir.Source
	warnings []ir.Warning
}

func (b *documentBuilder) buildService(name string, body gjson.Result) (*ir.ServiceDescriptor, error) {
	path := []string{name}
	if !body.IsObject() {
		return nil, b.errorf(path, "service must be an object, got %s", kindOf(body))
	}

	svc := &ir.ServiceDescriptor{
		Name:   name,
		Source: b.source,
	}

	classes, err := b.object(path, body, "classes")
	if err != nil {
		return nil, err
	}
	for _, entry := range sortedEntries(classes) {
		svc.Classes = append(svc.Classes, entry.key)
	}

	enums, err := b.object(path, body, "enumerations")
	if err != nil {
		return nil, err
	}
	for _, entry := range sortedEntries(enums) {
		enum, err := b.buildEnum(sub(path, "enumerations", entry.key), entry.key, entry.value)
		if err != nil {
			return nil, err
		}
		svc.Enums = append(svc.Enums, *enum)
	}

	procedures, err := b.object(path, body, "procedures")
	if err != nil {
		return nil, err
	}
	for _, entry := range sortedEntries(procedures) {
		proc, err := b.buildProcedure(sub(path, "procedures", entry.key), name, entry.key, entry.value)
		if err != nil {
			return nil, err
		}
		svc.Procedures = append(svc.Procedures, *proc)
	}

	return svc, nil
}

func (b *documentBuilder) buildEnum(path []string, name string, body gjson.Result) (*ir.EnumDescriptor, error) {
	if !body.IsObject() {
		return nil, b.errorf(path, "enumeration must be an object, got %s", kindOf(body))
	}
	values, err := b.array(path, body, "values")
	if err != nil {
		return nil, err
	}

	enum := &ir.EnumDescriptor{Name: name, Values: make([]string, 0, len(values))}
	for i, v := range values {
		vpath := sub(path, "values", strconv.Itoa(i))
		if !v.IsObject() {
			return nil, b.errorf(vpath, "enumeration value must be an object, got %s", kindOf(v))
		}
		valueName, err := b.str(vpath, v, "name")
		if err != nil {
			return nil, err
		}
		enum.Values = append(enum.Values, valueName)
	}
	return enum, nil
}

func (b *documentBuilder) buildProcedure(path []string, service, name string, body gjson.Result) (*ir.ProcedureDescriptor, error) {
	if !body.IsObject() {
		return nil, b.errorf(path, "procedure must be an object, got %s", kindOf(body))
	}
	params, err := b.array(path, body, "parameters")
	if err != nil {
		return nil, err
	}

	proc := &ir.ProcedureDescriptor{
		Name:       name,
		Parameters: make([]ir.ParameterDescriptor, 0, len(params)),
	}
	for i, p := range params {
		ppath := sub(path, "parameters", strconv.Itoa(i))
		if !p.IsObject() {
			return nil, b.errorf(ppath, "parameter must be an object, got %s", kindOf(p))
		}
		paramName, err := b.str(ppath, p, "name")
		if err != nil {
			return nil, err
		}
		paramType, err := b.required(ppath, p, "type")
		if err != nil {
			return nil, err
		}
		typ, err := b.buildType(sub(ppath, "type"), service, paramType)
		if err != nil {
			return nil, err
		}
		proc.Parameters = append(proc.Parameters, ir.ParameterDescriptor{Name: paramName, Type: typ})
	}

	if ret, ok := lookup(body, "return_type"); ok {
		typ, err := b.buildType(sub(path, "return_type"), service, ret)
		if err != nil {
			return nil, err
		}
		proc.ReturnType = typ
	}

	return proc, nil
}

// buildType decodes a type object recursively.
func (b *documentBuilder) buildType(path []string, service string, t gjson.Result) (ir.TypeDescriptor, error) {
	if !t.IsObject() {
		return nil, b.errorf(path, "type must be an object, got %s", kindOf(t))
	}
	code, err := b.str(path, t, "code")
	if err != nil {
		return nil, err
	}

	switch code {
	case ir.CodeTuple:
		types, err := b.array(path, t, "types")
		if err != nil {
			return nil, err
		}
		elements := make([]ir.TypeDescriptor, 0, len(types))
		for i, el := range types {
			desc, err := b.buildType(sub(path, "types", strconv.Itoa(i)), service, el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, desc)
		}
		return ir.Tuple(elements...), nil

	case ir.CodeList:
		types, err := b.array(path, t, "types")
		if err != nil {
			return nil, err
		}
		if len(types) == 0 {
			return nil, b.errorf(sub(path, "types"), "LIST type has no element type")
		}
		if len(types) > 1 {
			b.warn(ir.WarnExtraListTypes, service,
				"LIST type at "+joinPath(path)+" has "+strconv.Itoa(len(types))+" element types; only the first is used")
		}
		element, err := b.buildType(sub(path, "types", "0"), service, types[0])
		if err != nil {
			return nil, err
		}
		return ir.List(element), nil

	case ir.CodeClass:
		classService, err := b.str(path, t, "service")
		if err != nil {
			return nil, err
		}
		className, err := b.str(path, t, "name")
		if err != nil {
			return nil, err
		}
		return ir.Class(classService, className), nil

	default:
		prim, ok := ir.PrimitiveFromCode(code)
		if !ok {
			b.warn(ir.WarnUnknownTypeCode, service,
				"unsupported type code "+strconv.Quote(code)+" at "+joinPath(path))
		}
		return prim, nil
	}
}

func (b *documentBuilder) warn(code, service, message string) {
	src := b.source
	b.warnings = append(b.warnings, ir.Warning{
		Code:    code,
		Message: message,
		Source:  &src,
		Service: service,
	})
}

// object returns the required object-valued key of r.
func (b *documentBuilder) object(path []string, r gjson.Result, key string) (gjson.Result, error) {
	v, err := b.required(path, r, key)
	if err != nil {
		return v, err
	}
	if !v.IsObject() {
		return v, b.errorf(sub(path, key), "expected object, got %s", kindOf(v))
	}
	return v, nil
}

// array returns the elements of the required array-valued key of r.
func (b *documentBuilder) array(path []string, r gjson.Result, key string) ([]gjson.Result, error) {
	v, err := b.required(path, r, key)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, b.errorf(sub(path, key), "expected array, got %s", kindOf(v))
	}
	return v.Array(), nil
}

// str returns the required string-valued key of r.
func (b *documentBuilder) str(path []string, r gjson.Result, key string) (string, error) {
	v, err := b.required(path, r, key)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", b.errorf(sub(path, key), "expected string, got %s", kindOf(v))
	}
	return v.Str, nil
}

func (b *documentBuilder) required(path []string, r gjson.Result, key string) (gjson.Result, error) {
	v, ok := lookup(r, key)
	if !ok {
		return v, b.errorf(path, "missing key %q", key)
	}
	return v, nil
}

// lookup finds a key of an object without interpreting gjson path syntax.
func lookup(r gjson.Result, key string) (gjson.Result, bool) {
	var found gjson.Result
	ok := false
	r.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

type entry struct {
	key   string
	value gjson.Result
}

// sortedEntries returns the members of an object sorted by key.
func sortedEntries(r gjson.Result) []entry {
	var entries []entry
	r.ForEach(func(k, v gjson.Result) bool {
		entries = append(entries, entry{key: k.Str, value: v})
		return true
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	return entries
}

// sub returns a copy of path extended with elems.
func sub(path []string, elems ...string) []string {
	out := make([]string, 0, len(path)+len(elems))
	out = append(out, path...)
	return append(out, elems...)
}

func joinPath(path []string) string {
	return (&SchemaError{Path: path}).PathString()
}

func kindOf(r gjson.Result) string {
	if !r.Exists() {
		return "nothing"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	if r.IsArray() {
		return "array"
	}
	return "object"
}
