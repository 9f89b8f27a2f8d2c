package rust

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/broady/krpcgen/ir"
)

// Emitter builds Rust code-model modules for service descriptors.
type Emitter struct {
	config   GeneratorConfig
	resolver Resolver
}

// NewEmitter returns an emitter for cfg.
func NewEmitter(cfg GeneratorConfig) *Emitter {
	return &Emitter{
		config:   cfg,
		resolver: Resolver{ServicesPath: cfg.ServicesPath},
	}
}

// ServiceOutput is the result of emitting one service.
type ServiceOutput struct {
	Module *Module

	// Procedures is the number of methods emitted.
	Procedures int

	// Skipped counts procedures that were not bound.
	Skipped int

	Warnings []ir.Warning
}

// EmitService builds the module for svc: the client handle struct, the
// class and enum directives, and one method per procedure whose name is in
// type style.
func (e *Emitter) EmitService(svc *ir.ServiceDescriptor) ServiceOutput {
	structName := TypeStyle(svc.Name)
	mod := &Module{
		Name: memberIdent(svc.Name),
		Vis:  "pub",
		Uses: []string{qualify(e.config.SchemaPath, "ToArgument")},
	}

	mod.Push(&Struct{
		Name: structName,
		Vis:  "pub",
		Fields: []Field{
			{Vis: "pub", Name: "client", Type: e.clientType()},
		},
	})

	for _, class := range svc.Classes {
		mod.Push(ClassDirective(e.config.SchemaPath, class))
	}
	for _, enum := range svc.Enums {
		mod.Push(EnumDirective(e.config.SchemaPath, enum.Name, enum.Values))
	}

	impl := &Impl{Target: structName}
	ctor := impl.NewFn("new")
	ctor.Vis = "pub"
	ctor.Ret = "Self"
	ctor.Arg("client", e.clientType()).Line("Self { client }")

	out := ServiceOutput{Module: mod}
	methods := map[string]string{"new": ""}
	for i := range svc.Procedures {
		proc := &svc.Procedures[i]
		if !IsTypeStyle(proc.Name) {
			out.Skipped++
			continue
		}

		fn := e.emitProcedure(svc, proc)
		if prev, ok := methods[fn.Name]; ok {
			out.Warnings = append(out.Warnings, collisionWarning(svc, proc.Name, prev, fn.Name))
		} else {
			methods[fn.Name] = proc.Name
		}
		impl.Fns = append(impl.Fns, fn)
		out.Procedures++
	}
	mod.Push(impl)

	return out
}

// emitProcedure synthesizes the method for a single procedure.
func (e *Emitter) emitProcedure(svc *ir.ServiceDescriptor, proc *ir.ProcedureDescriptor) *Function {
	fn := &Function{
		Name:    memberIdent(proc.Name),
		Vis:     "pub",
		RefSelf: true,
	}

	args := make([]string, len(proc.Parameters))
	for i, p := range proc.Parameters {
		name := memberIdent(p.Name)
		fn.Arg(name, e.resolver.Resolve(p.Type))
		args[i] = name + ".to_argument(" + strconv.Itoa(i) + ")"
	}
	if proc.HasReturn() {
		fn.Ret = e.resolver.Resolve(proc.ReturnType)
	}

	fn.Line(
		"let request = "+qualify(e.config.SchemaPath, "Request")+"::from("+e.config.ClientPath+"::proc_call(",
		"\t"+rustStringLiteral(svc.Name)+",",
		"\t"+rustStringLiteral(proc.Name)+",",
		"\tvec!["+strings.Join(args, ", ")+"],",
		"));",
		"",
		"let response = self.client.call(request);",
	)
	if e.config.DebugResponses {
		fn.Line("dbg!(&response);")
	}
	fn.Line("", "response.into()")
	return fn
}

func (e *Emitter) clientType() string {
	return "::std::sync::Arc<" + e.config.ClientPath + ">"
}

func collisionWarning(svc *ir.ServiceDescriptor, proc, prev, method string) ir.Warning {
	msg := fmt.Sprintf("procedure %q maps to method %q, which is already defined", proc, method)
	if prev == "" {
		msg = fmt.Sprintf("procedure %q maps to method %q, which clashes with the constructor", proc, method)
	} else {
		msg += fmt.Sprintf(" by %q", prev)
	}
	w := ir.Warning{
		Code:    ir.WarnMethodNameCollision,
		Message: msg,
		Service: svc.Name,
	}
	if !svc.Source.IsZero() {
		src := svc.Source
		w.Source = &src
	}
	return w
}

// rustStringLiteral quotes s as a Rust string literal. Non-printable runes
// use the \u{...} escape; invalid UTF-8 becomes U+FFFD.
func rustStringLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)
				continue
			}
			b.WriteString(`\u{`)
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte('}')
		}
	}
	b.WriteByte('"')
	return b.String()
}
