package rust

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// TypeStyle renders a schema identifier in UpperCamelCase, the convention
// for Rust type names ("space_center" -> "SpaceCenter").
//
// The result never holds two adjacent upper-case letters, so single-letter
// words merge ("a_b" -> "Ab") and TypeStyle(TypeStyle(x)) == TypeStyle(x).
func TypeStyle(name string) string {
	name = separate(name)
	if isASCII(name) {
		return collapseCaps(strcase.ToCamel(name))
	}
	return camelRunes(name)
}

// MemberStyle renders a schema identifier in snake_case, the convention for
// Rust modules, functions and bindings ("GetName" -> "get_name").
func MemberStyle(name string) string {
	name = separate(name)
	if isASCII(name) {
		return strcase.ToSnake(name)
	}
	return snakeRunes(name)
}

// separate replaces every rune that cannot appear in an identifier with '_'.
func separate(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// collapseCaps lowers every upper-case letter that follows another one.
func collapseCaps(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevUpper := false
	for _, r := range s {
		if prevUpper && unicode.IsUpper(r) {
			r = unicode.ToLower(r)
		}
		prevUpper = unicode.IsUpper(r)
		b.WriteRune(r)
	}
	return b.String()
}

// camelRunes is strcase.ToCamel followed by collapseCaps, for any letters.
func camelRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capNext, prevCap, prevUpper := true, false, false
	for _, r := range s {
		switch {
		case r == '_':
			capNext, prevCap = true, false
			continue
		case unicode.IsDigit(r):
			b.WriteRune(r)
			capNext, prevCap, prevUpper = true, false, false
			continue
		}
		isCap := unicode.IsUpper(r)
		if capNext {
			r = unicode.ToUpper(r)
		} else if prevCap && isCap {
			r = unicode.ToLower(r)
		}
		if prevUpper && unicode.IsUpper(r) {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		capNext, prevCap, prevUpper = false, isCap, unicode.IsUpper(r)
	}
	return b.String()
}

// snakeRunes is strcase.ToSnake for any letters.
func snakeRunes(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i, r := range rs {
		isCap, isLow, isNum := unicode.IsUpper(r), unicode.IsLower(r), unicode.IsDigit(r)
		v := unicode.ToLower(r)
		if i+1 < len(rs) {
			next := rs[i+1]
			nextCap, nextLow, nextNum := unicode.IsUpper(next), unicode.IsLower(next), unicode.IsDigit(next)
			if (isCap && (nextLow || nextNum)) || (isLow && (nextCap || nextNum)) || (isNum && (nextCap || nextLow)) {
				if isCap && nextLow && i > 0 && unicode.IsUpper(rs[i-1]) {
					b.WriteByte('_')
				}
				b.WriteRune(v)
				if isLow || isNum || nextNum {
					b.WriteByte('_')
				}
				continue
			}
		}
		b.WriteRune(v)
	}
	return b.String()
}

// IsTypeStyle reports whether name is already in type style.
// Only such procedures are bound; the rest (property accessors such as
// "Vessel_get_Name", internal "get_X" helpers) are skipped.
func IsTypeStyle(name string) bool {
	return name != "" && TypeStyle(name) == name
}

// Rust keywords from the reference, strict and reserved.
var reservedWords = map[string]bool{
	"abstract": true,
	"as":       true,
	"async":    true,
	"await":    true,
	"become":   true,
	"box":      true,
	"break":    true,
	"const":    true,
	"continue": true,
	"do":       true,
	"dyn":      true,
	"else":     true,
	"enum":     true,
	"extern":   true,
	"false":    true,
	"final":    true,
	"fn":       true,
	"for":      true,
	"gen":      true,
	"if":       true,
	"impl":     true,
	"in":       true,
	"let":      true,
	"loop":     true,
	"macro":    true,
	"match":    true,
	"mod":      true,
	"move":     true,
	"mut":      true,
	"override": true,
	"priv":     true,
	"pub":      true,
	"ref":      true,
	"return":   true,
	"static":   true,
	"struct":   true,
	"trait":    true,
	"true":     true,
	"try":      true,
	"type":     true,
	"typeof":   true,
	"unsafe":   true,
	"unsized":  true,
	"use":      true,
	"virtual":  true,
	"where":    true,
	"while":    true,
	"yield":    true,
}

// Keywords that cannot be written as raw identifiers.
var pathKeywords = map[string]bool{
	"self":  true,
	"Self":  true,
	"super": true,
	"crate": true,
}

// escapeReservedWord makes a keyword usable as an identifier: raw identifier
// syntax where Rust allows it, a trailing underscore otherwise.
func escapeReservedWord(name string) string {
	if pathKeywords[name] {
		return name + "_"
	}
	if reservedWords[name] {
		return "r#" + name
	}
	return name
}

// memberIdent is MemberStyle followed by keyword escaping.
func memberIdent(name string) string {
	ident := MemberStyle(name)
	if ident == "" {
		return "_"
	}
	return escapeReservedWord(ident)
}
