package rust

import (
	"strings"

	"github.com/broady/krpcgen/ir"
)

// Resolver maps IR type descriptors to Rust type expressions.
type Resolver struct {
	// ServicesPath is the path under which every service module lives
	// (e.g. "crate::services"). Class references are qualified with it.
	ServicesPath string
}

// Resolve returns the Rust type expression for typ.
//
// Primitive codes map 1:1 onto Rust scalars. Unknown codes resolve to the
// empty string. Tuples and lists recurse; classes become a path into the
// owning service's module, whether or not that service is part of this run.
func (r Resolver) Resolve(typ ir.TypeDescriptor) string {
	switch t := typ.(type) {
	case *ir.PrimitiveDescriptor:
		return resolvePrimitive(t)
	case *ir.TupleDescriptor:
		return r.resolveTuple(t)
	case *ir.ListDescriptor:
		return "Vec<" + r.Resolve(t.Element) + ">"
	case *ir.ClassDescriptor:
		return r.resolveClass(t)
	default:
		return ""
	}
}

func resolvePrimitive(p *ir.PrimitiveDescriptor) string {
	switch p.PrimitiveKind {
	case ir.PrimitiveString:
		return "String"
	case ir.PrimitiveSInt32:
		return "i32"
	case ir.PrimitiveBool:
		return "bool"
	case ir.PrimitiveFloat:
		return "f32"
	case ir.PrimitiveDouble:
		return "f64"
	default:
		return ""
	}
}

func (r Resolver) resolveTuple(t *ir.TupleDescriptor) string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = r.Resolve(el)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (r Resolver) resolveClass(c *ir.ClassDescriptor) string {
	module := memberIdent(c.Service)
	if r.ServicesPath == "" {
		return module + "::" + c.Name
	}
	return r.ServicesPath + "::" + module + "::" + c.Name
}
