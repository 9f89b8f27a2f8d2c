package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive DescriptorKind = iota // STRING, SINT32, BOOL, FLOAT, DOUBLE
	KindTuple                           // Ordered fixed-arity composite
	KindList                            // Homogeneous sequence
	KindClass                           // Reference to a class of some service
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindTuple:
		return "Tuple"
	case KindList:
		return "List"
	case KindClass:
		return "Class"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
// The set of implementations is closed; generators switch on the concrete type.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase seals the descriptor implementations.
type exprBase struct{}

func (exprBase) sealed() {}
