package common_test

import (
	"strings"
	"testing"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/rir"
)

func testDynProfile() common.DynProfile {
	return common.DynProfile{
		Tag:             "testdyn",
		Capabilities:    capability.Bits{LabeledLoops: false},
		ReservedWords:   []string{"end", "local", "function"},
		FileExtension:   ".tdy",
		FunctionKeyword: "function",
		ThisKeyword:     "self",
		NullLiteral:     "nil",
		ModuleHeader:    func(name string) string { return "-- module " + name },
		PrintStatement:  func(args []string) string { return "print(" + strings.Join(args, ", ") + ")" },
		ObjectLiteral: func(fields []common.KV) string {
			var parts []string
			for _, f := range fields {
				parts = append(parts, f.Key+"="+f.Value)
			}
			return "{" + strings.Join(parts, ", ") + "}"
		},
	}
}

func TestDynBackendIdentity(t *testing.T) {
	b := common.NewDynBackend(testDynProfile())
	if string(b.Tag()) != "testdyn" {
		t.Errorf("Tag() = %s", b.Tag())
	}
	if !b.IsReservedWord("end") {
		t.Error("expected 'end' to be reserved")
	}
}

func TestDynBackendExprLiteral(t *testing.T) {
	b := common.NewDynBackend(testDynProfile())
	got := b.ExprLiteral(rir.LitString, "a\"b")
	if !strings.HasPrefix(got, "\"") || !strings.HasSuffix(got, "\"") {
		t.Errorf("ExprLiteral(string) = %q", got)
	}
}

func TestDynBackendExprBinaryEuclideanDiv(t *testing.T) {
	b := common.NewDynBackend(testDynProfile())
	got := b.ExprBinary("/", "a", "b", rir.Type{Kind: rir.TInt})
	if !strings.Contains(got, "math.floor") {
		t.Errorf("ExprBinary(/) = %q, want math.floor", got)
	}
}

func TestDynBackendDatatypeConstructorEmission(t *testing.T) {
	b := common.NewDynBackend(testDynProfile())
	arena := emit.NewArena()
	file := b.CreateFile(arena, "Shape")
	mod := b.OpenModuleScope(file, "shapes")
	base := b.DeclareDatatypeBase(mod, &rir.TopLevelDecl{Kind: rir.DeclDatatype, Name: "Shape"})
	ctor := &rir.Constructor{
		Name: "Circle",
		Formals: []rir.Formal{
			{Name: "radius", Type: rir.Type{Kind: rir.TInt}},
			{Name: "proof", Type: rir.Type{Kind: rir.TBool}, Ghost: true},
		},
	}
	ctorScope := b.DeclareDatatypeConstructor(base, ctor)
	b.CloseScope(ctorScope)
	b.CloseScope(mod)

	out, err := arena.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	content := out["Shape.tdy"]
	if !strings.Contains(content, "make_Circle(radius)") {
		t.Errorf("expected ghost formal dropped from constructor params, got:\n%s", content)
	}
	if !strings.Contains(content, `tag="Circle"`) {
		t.Errorf("expected tag field in object literal, got:\n%s", content)
	}
	if strings.Contains(content, "proof") {
		t.Errorf("expected ghost field not emitted, got:\n%s", content)
	}
}

func TestDynBackendClassScopeUsesFactoryFunction(t *testing.T) {
	b := common.NewDynBackend(testDynProfile())
	arena := emit.NewArena()
	file := b.CreateFile(arena, "Widget")
	mod := b.OpenModuleScope(file, "pkg")
	decl := &rir.TopLevelDecl{Kind: rir.DeclClass, Name: "Widget"}
	body, _ := b.OpenClassScope(mod, decl, nil)
	b.CloseScope(body)
	b.CloseScope(mod)
	out, _ := arena.Flush()
	content := out["Widget.tdy"]
	if !strings.Contains(content, "function make_Widget()") {
		t.Errorf("expected factory function header, got:\n%s", content)
	}
	if !strings.Contains(content, "return self") {
		t.Errorf("expected factory to return self, got:\n%s", content)
	}
}
