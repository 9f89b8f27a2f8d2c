// Package ir defines the Intermediate Representation for kRPC service descriptions.
// These types are language-agnostic representations of a parsed service schema
// that generators transform into target language source code.
package ir

// Source identifies the schema document a descriptor was read from.
type Source struct {
	// File is the path of the JSON document, as given to the provider.
	File string
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == ""
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the document that triggered the warning, if applicable.
	Source *Source

	// Service is the service that triggered the warning, if applicable.
	Service string
}

// Warning codes produced by providers and generators.
const (
	WarnUnknownTypeCode     = "unknown_type_code"
	WarnExtraListTypes      = "extra_list_types"
	WarnDuplicateService    = "duplicate_service"
	WarnMethodNameCollision = "method_name_collision"
)
