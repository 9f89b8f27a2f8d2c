package ir

// ServiceDescriptor represents one service of a schema document.
type ServiceDescriptor struct {
	// Name is the service key exactly as it appears in the document (e.g. "SpaceCenter").
	// It is the wire-level service name and is never normalized.
	Name string

	// Classes lists the class names declared by the service.
	Classes []string

	// Enums contains the enumerations declared by the service.
	Enums []EnumDescriptor

	// Procedures contains every procedure of the service, bindable or not.
	Procedures []ProcedureDescriptor

	// Source is the document the service was read from.
	Source Source
}

// EnumDescriptor represents an enumeration.
type EnumDescriptor struct {
	// Name is the enumeration name.
	Name string

	// Values holds the value names in declaration order.
	Values []string
}

// ProcedureDescriptor represents a remotely invokable procedure.
type ProcedureDescriptor struct {
	// Name is the raw procedure name (e.g. "GetStatus", "Vessel_get_Name").
	Name string

	// Parameters in call order. Dispatch is positional, so the order is load-bearing.
	Parameters []ParameterDescriptor

	// ReturnType is nil for procedures that return nothing.
	ReturnType TypeDescriptor
}

// HasReturn reports whether the procedure declares a return type.
func (p ProcedureDescriptor) HasReturn() bool {
	return p.ReturnType != nil
}

// ParameterDescriptor represents a single procedure parameter.
type ParameterDescriptor struct {
	Name string
	Type TypeDescriptor
}
