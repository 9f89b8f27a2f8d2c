package rust

import (
	"strings"
)

// Item is a declaration that can appear in a Scope or a Module.
type Item interface {
	render(f *formatter)
}

// Scope is an ordered list of top-level items: the unit of output.
// The zero value is an empty scope ready for use.
type Scope struct {
	Items []Item
}

// With returns the scope extended with items. The receiver is consumed:
// callers thread the returned value instead of keeping the old one.
func (s Scope) With(items ...Item) Scope {
	s.Items = append(s.Items, items...)
	return s
}

// Render formats the scope with indentSize spaces per nesting level.
func (s Scope) Render(indentSize int) string {
	f := &formatter{indent: strings.Repeat(" ", indentSize)}
	f.items(s.Items)
	return f.buf.String()
}

// Module is a `mod name { ... }` block.
type Module struct {
	Name  string
	Vis   string
	Uses  []string
	Items []Item
}

// Push appends an item to the module body.
func (m *Module) Push(item Item) {
	m.Items = append(m.Items, item)
}

func (m *Module) render(f *formatter) {
	f.line(vis(m.Vis) + "mod " + m.Name + " {")
	f.level++
	for _, use := range m.Uses {
		f.line("use " + use + ";")
	}
	if len(m.Uses) > 0 && len(m.Items) > 0 {
		f.line("")
	}
	f.items(m.Items)
	f.level--
	f.line("}")
}

// Struct is a struct declaration with named fields.
type Struct struct {
	Name   string
	Vis    string
	Fields []Field
}

// Field is a named struct field.
type Field struct {
	Vis  string
	Name string
	Type string
}

func (s *Struct) render(f *formatter) {
	if len(s.Fields) == 0 {
		f.line(vis(s.Vis) + "struct " + s.Name + ";")
		return
	}
	f.line(vis(s.Vis) + "struct " + s.Name + " {")
	f.level++
	for _, field := range s.Fields {
		f.line(vis(field.Vis) + field.Name + ": " + field.Type + ",")
	}
	f.level--
	f.line("}")
}

// MacroCall is an item-position macro invocation, `path!(args);`.
type MacroCall struct {
	Path string
	Args []string
}

func (m *MacroCall) render(f *formatter) {
	f.line(m.Path + "!(" + strings.Join(m.Args, ", ") + ");")
}

// Impl is an inherent impl block.
type Impl struct {
	Target string
	Fns    []*Function
}

// NewFn appends a function to the impl block and returns it.
func (i *Impl) NewFn(name string) *Function {
	fn := &Function{Name: name}
	i.Fns = append(i.Fns, fn)
	return fn
}

func (i *Impl) render(f *formatter) {
	f.line("impl " + i.Target + " {")
	f.level++
	for n, fn := range i.Fns {
		if n > 0 {
			f.line("")
		}
		fn.render(f)
	}
	f.level--
	f.line("}")
}

// Function is a function or method definition.
type Function struct {
	Name    string
	Vis     string
	RefSelf bool
	Args    []Arg
	Ret     string

	// Body holds the statements. Each leading tab of a line adds one
	// indentation level relative to the function body.
	Body []string
}

// Arg is a named, typed function argument.
type Arg struct {
	Name string
	Type string
}

// Arg appends an argument.
func (fn *Function) Arg(name, typ string) *Function {
	fn.Args = append(fn.Args, Arg{Name: name, Type: typ})
	return fn
}

// Line appends body lines.
func (fn *Function) Line(lines ...string) *Function {
	fn.Body = append(fn.Body, lines...)
	return fn
}

// Signature returns the function header without the opening brace.
func (fn *Function) Signature() string {
	params := make([]string, 0, len(fn.Args)+1)
	if fn.RefSelf {
		params = append(params, "&self")
	}
	for _, a := range fn.Args {
		params = append(params, a.Name+": "+a.Type)
	}
	sig := vis(fn.Vis) + "fn " + fn.Name + "(" + strings.Join(params, ", ") + ")"
	if fn.Ret != "" {
		sig += " -> " + fn.Ret
	}
	return sig
}

func (fn *Function) render(f *formatter) {
	f.line(fn.Signature() + " {")
	f.level++
	for _, l := range fn.Body {
		depth := len(l) - len(strings.TrimLeft(l, "\t"))
		f.level += depth
		f.line(l[depth:])
		f.level -= depth
	}
	f.level--
	f.line("}")
}

// Raw is verbatim text, such as a comment banner.
type Raw string

func (r Raw) render(f *formatter) {
	for _, l := range strings.Split(strings.TrimRight(string(r), "\n"), "\n") {
		f.line(l)
	}
}

type formatter struct {
	buf    strings.Builder
	indent string
	level  int
}

func (f *formatter) line(s string) {
	if s == "" {
		f.buf.WriteByte('\n')
		return
	}
	for i := 0; i < f.level; i++ {
		f.buf.WriteString(f.indent)
	}
	f.buf.WriteString(s)
	f.buf.WriteByte('\n')
}

// items renders a list separated by blank lines. Runs of macro calls stay
// together.
func (f *formatter) items(items []Item) {
	for i, item := range items {
		if i > 0 {
			_, prevMacro := items[i-1].(*MacroCall)
			_, curMacro := item.(*MacroCall)
			if !prevMacro || !curMacro {
				f.line("")
			}
		}
		item.render(f)
	}
}

func vis(v string) string {
	if v == "" {
		return ""
	}
	return v + " "
}
