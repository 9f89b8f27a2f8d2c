package ir

// PrimitiveKind identifies the category of a primitive type.
type PrimitiveKind int

const (
	PrimitiveString PrimitiveKind = iota
	PrimitiveSInt32               // 32-bit signed integer
	PrimitiveBool
	PrimitiveFloat  // 32-bit float
	PrimitiveDouble // 64-bit float

	// PrimitiveUnknown marks a type code outside the supported set.
	// Generators resolve it to an empty type expression.
	PrimitiveUnknown
)

// Schema type codes as they appear in the "code" field of a type object.
const (
	CodeString = "STRING"
	CodeSInt32 = "SINT32"
	CodeBool   = "BOOL"
	CodeFloat  = "FLOAT"
	CodeDouble = "DOUBLE"
	CodeTuple  = "TUPLE"
	CodeList   = "LIST"
	CodeClass  = "CLASS"
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveString:
		return "String"
	case PrimitiveSInt32:
		return "SInt32"
	case PrimitiveBool:
		return "Bool"
	case PrimitiveFloat:
		return "Float"
	case PrimitiveDouble:
		return "Double"
	default:
		return "Unknown"
	}
}

// PrimitiveDescriptor represents a built-in primitive type.
type PrimitiveDescriptor struct {
	exprBase
	PrimitiveKind PrimitiveKind

	// Code is the raw schema code. It is informational for known kinds and
	// the only record of an unrecognized code.
	Code string
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }

// PrimitiveFromCode maps a schema type code to a primitive descriptor.
// The boolean is false when the code is not a primitive code; the returned
// descriptor is then a PrimitiveUnknown carrying the raw code.
func PrimitiveFromCode(code string) (*PrimitiveDescriptor, bool) {
	switch code {
	case CodeString:
		return String(), true
	case CodeSInt32:
		return SInt32(), true
	case CodeBool:
		return Bool(), true
	case CodeFloat:
		return Float(), true
	case CodeDouble:
		return Double(), true
	default:
		return Unknown(code), false
	}
}

// Convenience constructors for the primitives.

// String returns a PrimitiveDescriptor for STRING.
func String() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveString, Code: CodeString}
}

// SInt32 returns a PrimitiveDescriptor for SINT32.
func SInt32() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveSInt32, Code: CodeSInt32}
}

// Bool returns a PrimitiveDescriptor for BOOL.
func Bool() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveBool, Code: CodeBool}
}

// Float returns a PrimitiveDescriptor for FLOAT.
func Float() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveFloat, Code: CodeFloat}
}

// Double returns a PrimitiveDescriptor for DOUBLE.
func Double() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveDouble, Code: CodeDouble}
}

// Unknown returns a PrimitiveDescriptor for an unsupported type code.
func Unknown(code string) *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveUnknown, Code: code}
}
