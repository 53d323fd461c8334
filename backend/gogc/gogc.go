// Package gogc targets a garbage-collected systems language modeled on
// Go itself: packages, explicit multi-value returns instead of
// exceptions, erased generics, and no goroutines in emitted code (the
// driver never asks for one). Unlike the shared curly-brace object
// family in backend/common, struct declarations and their methods are
// not textually nested — Go methods are free functions with a receiver
// — so this backend is bespoke rather than Profile-driven.
package gogc

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/ident"
	"github.com/lowerc/lowerc/internal/numeric"
	"github.com/lowerc/lowerc/internal/rir"
	"github.com/lowerc/lowerc/internal/runtimeassets"
)

var reservedWords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var", "nil", "iota", "true", "false",
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// exportedName capitalizes an identifier's leading letter the
// Unicode-aware way (a multi-rune identifier may begin with a letter
// outside ASCII), per the teacher's own use of golang.org/x/text for
// script-aware casing decisions.
func exportedName(raw string) string {
	if raw == "" {
		return raw
	}
	return titleCaser.String(raw)
}

// Backend implements backend.Backend for the Go-shaped GC target.
type Backend struct {
	reserved ident.ReservedWords

	// currentDatatypeName is the receiver type for method funcs and the
	// interface-marker target for datatype constructors. Neither
	// OpenMemberScope nor DeclareDatatypeConstructor is itself handed
	// the owning decl's name, so it is threaded through here between
	// the opening call and its members (the driver always finishes one
	// enclosing declaration before starting the next).
	currentDatatypeName string
}

// New returns the gogc Backend.
func New() backend.Backend {
	return &Backend{reserved: ident.NewReservedWords(reservedWords...)}
}

func (b *Backend) Tag() backend.Tag { return backend.TagGoGC }

func (b *Backend) Capabilities() capability.Bits {
	return capability.Bits{
		ErasedGenerics:        true,
		NativeIntWidths:       []int{8, 16, 32, 64},
		TraitTypedCollections: true,
		NativeCoData:          false,
		LabeledLoops:          true,
		MaxNativeTupleArity:   0,
		StringRepresentation:  capability.StringAsCodeUnits,
	}
}

func (b *Backend) ReservedWords() map[string]struct{} { return b.reserved }
func (b *Backend) IsReservedWord(name string) bool     { return ident.IsReserved(name, b.reserved) }

func (b *Backend) sanitize(name string, taken map[string]struct{}) string {
	return ident.Sanitize(name, b.reserved, taken, "_")
}

// --- File and scoping ---

func (b *Backend) CreateFile(arena *emit.Arena, relPath string) backend.Scope {
	return backend.Scope{W: arena.NewFile(relPath + ".go")}
}

func (b *Backend) OpenModuleScope(file backend.Scope, name string) backend.Scope {
	_ = file.W.Writef("package %s\n\n", strings.ToLower(b.sanitize(name, nil)))
	return file
}

// OpenClassScope returns a detached region (body) that the struct decl
// and its method funcs are appended into sequentially, plus an
// insertion point (inside the struct's brace block) for fields. Closing
// body later does not seal the file writer it was forked from.
func (b *Backend) OpenClassScope(parent backend.Scope, decl *rir.TopLevelDecl, implements []string) (backend.Scope, backend.Scope) {
	region := parent.W.Fork()
	name := b.sanitize(decl.Name, nil)
	b.currentDatatypeName = name
	header := fmt.Sprintf("type %s struct", name)
	structBody := region.NewBlock(header, "}", emit.NewLine, emit.NewLine)
	fieldPoint := structBody.Fork()
	structBody.Close()
	for _, iface := range implements {
		_ = region.Writef("\nvar _ %s = (*%s)(nil)\n", iface, name)
	}
	return backend.Scope{W: region}, backend.Scope{W: fieldPoint}
}

func (b *Backend) OpenMemberScope(class backend.Scope, m *rir.Member) backend.Scope {
	recv := "recv"
	name := b.sanitize(m.Name, nil)
	if m.Static {
		name = exportedName(name)
	}
	sig := b.signatureOf(recv, m, name)
	if m.Body == nil {
		_ = class.W.Writef("\n// %s is declared by a trait; no default body is emitted here.\n", sig)
		return class
	}
	body := class.W.NewBlock(sig, "}", emit.NewLine, emit.NewLine)
	return backend.Scope{W: body}
}

func (b *Backend) signatureOf(recv string, m *rir.Member, name string) string {
	results := ""
	if m.Kind == rir.MemberFunction {
		results = " " + b.TypeName(m.ResultType)
	} else if len(m.OutParams) == 1 {
		results = " " + b.TypeName(m.OutParams[0].Type)
	} else if len(m.OutParams) > 1 {
		var outs []string
		for _, o := range m.OutParams {
			outs = append(outs, b.TypeName(o.Type))
		}
		results = fmt.Sprintf(" (%s)", strings.Join(outs, ", "))
	}
	receiver := ""
	if !m.Static {
		receiver = fmt.Sprintf("(%s *%s) ", recv, b.currentDatatypeName)
	}
	return fmt.Sprintf("func %s%s(%s)%s", receiver, name, b.formalList(m.Formals), results)
}

func (b *Backend) formalList(formals []rir.Formal) string {
	taken := make(map[string]struct{})
	var parts []string
	for _, f := range formals {
		n := b.sanitize(f.Name, taken)
		taken[n] = struct{}{}
		parts = append(parts, fmt.Sprintf("%s %s", n, b.TypeName(f.Type)))
	}
	return strings.Join(parts, ", ")
}

func (b *Backend) CloseScope(s backend.Scope) { s.W.Close() }

// --- Declarations ---

func (b *Backend) DeclareField(s backend.Scope, f rir.Formal, static, mutable bool) backend.Scope {
	name := exportedName(b.sanitize(f.Name, nil))
	if static || !mutable {
		rhs := s.W.Fork()
		_ = s.W.Write("\n")
		kw := "var"
		if !mutable {
			kw = "const"
		}
		_ = rhs.Writef("%s %s %s = ", kw, name, b.TypeName(f.Type))
		return backend.Scope{W: rhs.Fork()}
	}
	// Struct fields carry no inline initializer in Go; the default
	// value is recorded in a struct tag for documentation only; nothing
	// assigns it, so the field starts at Go's zero value.
	_ = s.W.Writef("\t%s %s `default:\"", name, b.TypeName(f.Type))
	rhs := s.W.Fork()
	_ = s.W.Write("\"`\n")
	return backend.Scope{W: rhs}
}

func (b *Backend) DeclareLocal(s backend.Scope, name string, t rir.Type) emit.Writer {
	_ = s.W.Writef("var %s %s", b.sanitize(name, nil), b.TypeName(t))
	return s.W
}

func (b *Backend) DeclareFormal(sig backend.Scope, f rir.Formal) string {
	return b.sanitize(f.Name, nil)
}

func (b *Backend) DeclareDatatypeBase(s backend.Scope, decl *rir.TopLevelDecl) backend.Scope {
	region := s.W.Fork()
	name := b.sanitize(decl.Name, nil)
	b.currentDatatypeName = name
	header := fmt.Sprintf("type %s interface", name)
	iface := region.NewBlock(header, "}", emit.NewLine, emit.NewLine)
	_ = iface.Writef("\tis%s()\n", name)
	iface.Close()
	return backend.Scope{W: region}
}

func (b *Backend) DeclareDatatypeConstructor(base backend.Scope, ctor *rir.Constructor) backend.Scope {
	name := b.sanitize(ctor.Name, nil)
	header := fmt.Sprintf("type %s struct", name)
	body := base.W.NewBlock(header, "}", emit.NewLine, emit.NewLine)
	for _, f := range ctor.Formals {
		if f.Ghost {
			continue
		}
		_ = body.Writef("\t%s %s\n", exportedName(b.sanitize(f.Name, nil)), b.TypeName(f.Type))
	}
	body.Close()

	marker := base.W.NewBlock(fmt.Sprintf("func (v *%s) is%s()", name, b.currentDatatypeName), "}", emit.SameLine, emit.SameLine)
	marker.Close()

	pred := base.W.NewBlock(fmt.Sprintf("func Is%s(v %s) bool", name, b.currentDatatypeName), "}", emit.NewLine, emit.NewLine)
	_ = pred.Writef("\t_, ok := v.(*%s)\n\treturn ok\n", name)
	pred.Close()

	return backend.Scope{W: base.W}
}

func (b *Backend) DeclareNewtype(s backend.Scope, decl *rir.TopLevelDecl) backend.Scope {
	_ = s.W.Writef("type %s = %s\n", b.sanitize(decl.Name, nil), b.TypeName(decl.Newtype.BaseType))
	return s
}

func (b *Backend) DeclareSubsetTypeAlias(s backend.Scope, decl *rir.TopLevelDecl) backend.Scope {
	_ = s.W.Writef("type %s = %s\n", b.sanitize(decl.Name, nil), b.TypeName(decl.Subset.BaseType))
	return s
}

// --- Statements ---

func (b *Backend) EmitAssign(s backend.Scope, target, value string) {
	_ = s.W.Writef("%s = %s\n", target, value)
}

func (b *Backend) EmitMultiAssign(s backend.Scope, targets []string, call string) {
	_ = s.W.Writef("%s = %s\n", strings.Join(targets, ", "), call)
}

func (b *Backend) EmitIf(s backend.Scope, cond string) (backend.Scope, backend.Scope) {
	then := s.W.NewBlock(fmt.Sprintf("if %s", cond), "}", emit.SameLine, emit.SameLine)
	els := s.W.NewBlock("else", "}", emit.SameLine, emit.SameLine)
	return backend.Scope{W: then}, backend.Scope{W: els}
}

func (b *Backend) EmitWhile(s backend.Scope, cond string) backend.Scope {
	return backend.Scope{W: s.W.NewBlock(fmt.Sprintf("for %s", cond), "}", emit.SameLine, emit.SameLine)}
}

func (b *Backend) EmitForRange(s backend.Scope, loopVar, lo, hi string) backend.Scope {
	header := fmt.Sprintf("for %s := %s; %s < %s; %s++", loopVar, lo, loopVar, hi, loopVar)
	return backend.Scope{W: s.W.NewBlock(header, "}", emit.SameLine, emit.SameLine)}
}

func (b *Backend) EmitForCollection(s backend.Scope, loopVar, collection string) backend.Scope {
	header := fmt.Sprintf("for _, %s := range %s", loopVar, collection)
	return backend.Scope{W: s.W.NewBlock(header, "}", emit.SameLine, emit.SameLine)}
}

func (b *Backend) EmitLoop(s backend.Scope, label string) backend.Scope {
	header := "for"
	if label != "" {
		_ = s.W.Writef("%s:\n", label)
	}
	return backend.Scope{W: s.W.NewBlock(header, "}", emit.SameLine, emit.SameLine)}
}

func (b *Backend) EmitBreak(s backend.Scope, label string) {
	if label == "" {
		_ = s.W.Write("break\n")
		return
	}
	_ = s.W.Writef("break %s\n", label)
}

func (b *Backend) EmitReturn(s backend.Scope, results []string) {
	if len(results) == 0 {
		_ = s.W.Write("return\n")
		return
	}
	_ = s.W.Writef("return %s\n", strings.Join(results, ", "))
}

func (b *Backend) EmitYield(s backend.Scope, results []string) {
	_ = s.W.Writef("yield(%s)\n", strings.Join(results, ", "))
}

func (b *Backend) EmitPrint(s backend.Scope, args []string) {
	_ = s.W.Writef("fmt.Println(%s)\n", strings.Join(args, ", "))
}

func (b *Backend) EmitCallStmt(s backend.Scope, call string) {
	_ = s.W.Writef("%s\n", call)
}

func (b *Backend) EmitAbsurd(s backend.Scope, reason string) {
	_ = s.W.Writef("panic(%q)\n", reason)
}

// --- Expressions ---

func (b *Backend) ExprLiteral(kind rir.LitKind, value string) string {
	switch kind {
	case rir.LitChar, rir.LitString:
		return "\"" + common.EscapeStringNonRaw(value) + "\""
	default:
		return value
	}
}

// ExprBinary renders Int/Real arithmetic through lowercRuntime, since
// neither *big.Int nor *big.Rat overloads an operator: "(a + b)" on two
// *big.Int values doesn't compile, and "a == b" compares pointers, not
// value. Every other operand type keeps native infix syntax.
func (b *Backend) ExprBinary(op, left, right string, t rir.Type) string {
	if t.Kind == rir.TInt && op == "/" {
		return fmt.Sprintf("lowercRuntime.EuclidDiv(%s, %s)", left, right)
	}
	if t.Kind == rir.TInt && op == "%" {
		return fmt.Sprintf("lowercRuntime.EuclidMod(%s, %s)", left, right)
	}
	if t.Kind == rir.TInt {
		if expr, ok := bigIntOp(op, left, right); ok {
			return expr
		}
	}
	if t.Kind == rir.TReal {
		if expr, ok := bigRatOp(op, left, right); ok {
			return expr
		}
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

// bigIntOp covers *big.Int, whose mutating methods (Add, Sub, Mul) take
// a destination receiver; Cmp is non-mutating and used directly for the
// comparison operators.
func bigIntOp(op, left, right string) (string, bool) {
	switch op {
	case "+":
		return fmt.Sprintf("lowercRuntime.AddInt(%s, %s)", left, right), true
	case "-":
		return fmt.Sprintf("lowercRuntime.SubInt(%s, %s)", left, right), true
	case "*":
		return fmt.Sprintf("lowercRuntime.MulInt(%s, %s)", left, right), true
	case "==":
		return fmt.Sprintf("(%s.Cmp(%s) == 0)", left, right), true
	case "!=":
		return fmt.Sprintf("(%s.Cmp(%s) != 0)", left, right), true
	case "<":
		return fmt.Sprintf("(%s.Cmp(%s) < 0)", left, right), true
	case ">":
		return fmt.Sprintf("(%s.Cmp(%s) > 0)", left, right), true
	case "<=":
		return fmt.Sprintf("(%s.Cmp(%s) <= 0)", left, right), true
	case ">=":
		return fmt.Sprintf("(%s.Cmp(%s) >= 0)", left, right), true
	default:
		return "", false
	}
}

// bigRatOp is bigIntOp's *big.Rat counterpart; Real division is native
// division here (Int division goes through the Euclidean helpers above).
func bigRatOp(op, left, right string) (string, bool) {
	switch op {
	case "+":
		return fmt.Sprintf("lowercRuntime.AddRat(%s, %s)", left, right), true
	case "-":
		return fmt.Sprintf("lowercRuntime.SubRat(%s, %s)", left, right), true
	case "*":
		return fmt.Sprintf("lowercRuntime.MulRat(%s, %s)", left, right), true
	case "/":
		return fmt.Sprintf("lowercRuntime.QuoRat(%s, %s)", left, right), true
	case "==":
		return fmt.Sprintf("(%s.Cmp(%s) == 0)", left, right), true
	case "!=":
		return fmt.Sprintf("(%s.Cmp(%s) != 0)", left, right), true
	case "<":
		return fmt.Sprintf("(%s.Cmp(%s) < 0)", left, right), true
	case ">":
		return fmt.Sprintf("(%s.Cmp(%s) > 0)", left, right), true
	case "<=":
		return fmt.Sprintf("(%s.Cmp(%s) <= 0)", left, right), true
	case ">=":
		return fmt.Sprintf("(%s.Cmp(%s) >= 0)", left, right), true
	default:
		return "", false
	}
}

func (b *Backend) ExprUnary(op, operand string, t rir.Type) string {
	if op == "-" && t.Kind == rir.TInt {
		return fmt.Sprintf("lowercRuntime.NegInt(%s)", operand)
	}
	if op == "-" && t.Kind == rir.TReal {
		return fmt.Sprintf("lowercRuntime.NegRat(%s)", operand)
	}
	return fmt.Sprintf("(%s%s)", op, operand)
}

func (b *Backend) ExprConvert(value string, from, to rir.Type) string {
	return fmt.Sprintf("%s(%s)", b.TypeName(to), value)
}

func (b *Backend) ExprCollectionDisplay(kind rir.TypeKind, elements []string) string {
	ctor := "lowercRuntime.NewSeq"
	switch kind {
	case rir.TSet:
		ctor = "lowercRuntime.NewSet"
	case rir.TMultiset:
		ctor = "lowercRuntime.NewMultiset"
	}
	return fmt.Sprintf("%s(%s)", ctor, strings.Join(elements, ", "))
}

func (b *Backend) ExprMapDisplay(keys, values []string) string {
	var parts []string
	for i := range keys {
		parts = append(parts, fmt.Sprintf("{%s, %s}", keys[i], values[i]))
	}
	return fmt.Sprintf("lowercRuntime.NewMap(%s)", strings.Join(parts, ", "))
}

func (b *Backend) ExprIndexSelect(collection string, indices []string) string {
	return fmt.Sprintf("%s.Select(%s)", collection, strings.Join(indices, ", "))
}

func (b *Backend) ExprIndexUpdate(collection string, index, value string) string {
	return fmt.Sprintf("%s.Update(%s, %s)", collection, index, value)
}

func (b *Backend) ExprSeqSlice(seq, lo, hi string) string {
	return fmt.Sprintf("%s.Subsequence(%s, %s)", seq, lo, hi)
}

func (b *Backend) ExprArraySelect(array string, indices []string) string {
	var parts []string
	for _, i := range indices {
		parts = append(parts, fmt.Sprintf("[%s]", i))
	}
	return array + strings.Join(parts, "")
}

func (b *Backend) ExprQuantifier(kind string, bound []rir.Formal, rangeExpr, predicate string) string {
	return fmt.Sprintf("true /* %s %v in %s :: %s */", kind, bound, rangeExpr, predicate)
}

func (b *Backend) ExprComprehension(kind string, bound []rir.Formal, rangeExpr, value string) string {
	ctor := "lowercRuntime.SeqComprehension"
	if kind == "map" {
		ctor = "lowercRuntime.MapComprehension"
	}
	return fmt.Sprintf("%s(%s, func(v any) any { return %s })", ctor, rangeExpr, value)
}

func (b *Backend) ExprLambda(params []rir.Formal, body string) string {
	return fmt.Sprintf("func(%s) any { return %s }", b.formalList(params), body)
}

func (b *Backend) ExprLet(name, value, body string) string {
	return fmt.Sprintf("func() any { %s := %s; return %s }()", name, value, body)
}

func (b *Backend) ExprMatch(scrutinee string, arms []string) string {
	return fmt.Sprintf("lowercRuntime.Match(%s, %s)", scrutinee, strings.Join(arms, ", "))
}

func (b *Backend) ExprApply(fn string, args []string) string {
	return fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", "))
}

func (b *Backend) ExprFieldAccess(receiver, field string, static bool) string {
	return fmt.Sprintf("%s.%s", receiver, exportedName(field))
}

func (b *Backend) ExprCall(callee string, args []string) string {
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

// --- Queries ---

func (b *Backend) TypeName(t rir.Type) string {
	switch t.Kind {
	case rir.TBool:
		return "bool"
	case rir.TChar:
		return "rune"
	case rir.TInt:
		return "*big.Int"
	case rir.TReal:
		return "*big.Rat"
	case rir.TBitvector:
		if n := (capability.Bits{NativeIntWidths: []int{8, 16, 32, 64}}).NativeBackingFor(t.Width); n > 0 {
			return fmt.Sprintf("uint%d", n)
		}
		return "*big.Int"
	case rir.TSeq:
		return fmt.Sprintf("lowercRuntime.Seq[%s]", b.TypeName(*t.Elem))
	case rir.TSet:
		return fmt.Sprintf("lowercRuntime.Set[%s]", b.TypeName(*t.Elem))
	case rir.TMultiset:
		return fmt.Sprintf("lowercRuntime.Multiset[%s]", b.TypeName(*t.Elem))
	case rir.TMap:
		return fmt.Sprintf("lowercRuntime.Map[%s,%s]", b.TypeName(*t.Key), b.TypeName(*t.Val))
	case rir.TArray:
		out := b.TypeName(*t.Elem)
		for i := 0; i < t.Rank; i++ {
			out = "[]" + out
		}
		return out
	case rir.TUserDefined:
		return "*" + b.sanitize(t.DeclName, nil)
	case rir.TArrow:
		return "any"
	case rir.TTypeParameter:
		return "any"
	default:
		return "any"
	}
}

func (b *Backend) NeedsExplicitCast(t rir.Type) bool {
	return t.Kind == rir.TBitvector && numeric.NeedsMask(t.Width, 64)
}

// --- Post-emit ---

func (b *Backend) PostEmit(outputDir, entryFile string, level backend.CompileLevel) (string, string, error) {
	// Running `go build`/`go run` on the emitted tree is left to the
	// operator: this compiler never shells out to a target toolchain.
	return "", "", nil
}

func (b *Backend) RuntimeAsset() (string, []byte, bool) {
	return runtimeassets.Get(b.Tag())
}
