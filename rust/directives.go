package rust

import "strings"

// ClassDirective returns the declaration of a remote class: a single
// invocation of the consuming crate's rpc_object! macro, which expands to
// the class handle type and its argument/response conversions.
func ClassDirective(schemaPath, name string) *MacroCall {
	return &MacroCall{
		Path: qualify(schemaPath, "rpc_object"),
		Args: []string{name},
	}
}

// EnumDirective returns the declaration of an enumeration through the
// rpc_enum! macro. Values keep their order; it is the discriminant order.
func EnumDirective(schemaPath, name string, values []string) *MacroCall {
	return &MacroCall{
		Path: qualify(schemaPath, "rpc_enum"),
		Args: []string{name, "[" + strings.Join(values, ", ") + "]"},
	}
}

func qualify(path, name string) string {
	if path == "" {
		return name
	}
	return path + "::" + name
}
