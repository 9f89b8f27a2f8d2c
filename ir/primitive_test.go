package ir

import "testing"

func TestPrimitiveKind_String(t *testing.T) {
	tests := []struct {
		kind PrimitiveKind
		want string
	}{
		{PrimitiveString, "String"},
		{PrimitiveSInt32, "SInt32"},
		{PrimitiveBool, "Bool"},
		{PrimitiveFloat, "Float"},
		{PrimitiveDouble, "Double"},
		{PrimitiveUnknown, "Unknown"},
		{PrimitiveKind(42), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("PrimitiveKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrimitiveFromCode(t *testing.T) {
	tests := []struct {
		code   string
		want   PrimitiveKind
		wantOK bool
	}{
		{"STRING", PrimitiveString, true},
		{"SINT32", PrimitiveSInt32, true},
		{"BOOL", PrimitiveBool, true},
		{"FLOAT", PrimitiveFloat, true},
		{"DOUBLE", PrimitiveDouble, true},
		{"UINT64", PrimitiveUnknown, false},
		{"string", PrimitiveUnknown, false},
		{"", PrimitiveUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := PrimitiveFromCode(tt.code)
			if ok != tt.wantOK {
				t.Errorf("PrimitiveFromCode(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			}
			if got.PrimitiveKind != tt.want {
				t.Errorf("PrimitiveFromCode(%q) = %v, want %v", tt.code, got.PrimitiveKind, tt.want)
			}
			if got.Code != tt.code {
				t.Errorf("PrimitiveFromCode(%q).Code = %q, want the raw code", tt.code, got.Code)
			}
		})
	}
}
