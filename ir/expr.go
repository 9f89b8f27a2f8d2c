package ir

// TupleDescriptor represents an ordered fixed-arity composite (TUPLE).
// Element order is significant and never changed.
type TupleDescriptor struct {
	exprBase

	// Elements are the member types in declaration order. May be empty.
	Elements []TypeDescriptor
}

// Kind returns KindTuple.
func (d *TupleDescriptor) Kind() DescriptorKind { return KindTuple }

// Tuple returns a TupleDescriptor over the given element types.
func Tuple(elements ...TypeDescriptor) *TupleDescriptor {
	return &TupleDescriptor{Elements: elements}
}

// ListDescriptor represents a homogeneous sequence (LIST).
//
// The schema carries the element type as the first entry of a "types" array.
// Only that entry is modelled; providers warn about any further entries.
type ListDescriptor struct {
	exprBase

	// Element is the sequence element type.
	Element TypeDescriptor
}

// Kind returns KindList.
func (d *ListDescriptor) Kind() DescriptorKind { return KindList }

// List returns a ListDescriptor for the given element type.
func List(element TypeDescriptor) *ListDescriptor {
	return &ListDescriptor{Element: element}
}

// ClassDescriptor references a class declared by a service.
// The service does not need to be part of the same generation run.
type ClassDescriptor struct {
	exprBase

	// Service is the raw name of the declaring service.
	Service string

	// Name is the class name, used verbatim.
	Name string
}

// Kind returns KindClass.
func (d *ClassDescriptor) Kind() DescriptorKind { return KindClass }

// Class returns a ClassDescriptor for service.name.
func Class(service, name string) *ClassDescriptor {
	return &ClassDescriptor{Service: service, Name: name}
}
