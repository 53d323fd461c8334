package driver

import (
	"strings"
	"testing"

	"github.com/lowerc/lowerc/backend/cppdialect"
	"github.com/lowerc/lowerc/backend/jvmclass"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/rir"
)

func simpleProgram() *rir.Program {
	mainMember := &rir.Member{
		Kind:   rir.MemberMethod,
		Name:   "Main",
		Static: true,
		Body: &rir.Stmt{
			Kind: rir.SPrint,
			PrintArgs: []*rir.Expr{
				{Kind: rir.ELiteral, LitKind: rir.LitString, LitValue: "hello"},
			},
		},
	}
	decl := &rir.TopLevelDecl{
		ID:              1,
		Kind:            rir.DeclClass,
		Name:            "App",
		EnclosingModule: "App",
		Class:           &rir.ClassBody{Members: []*rir.Member{mainMember}},
	}
	return &rir.Program{Modules: []*rir.Module{{Name: "App", IsDefault: true, Decls: []*rir.TopLevelDecl{decl}}}}
}

func TestRunEmitsFileAndDiscoversMain(t *testing.T) {
	prog := simpleProgram()
	res, err := Run(prog, jvmclass.New(), Options{Target: backend.TagJVMClass})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Main == nil {
		t.Fatal("expected main to be discovered")
	}
	if res.Main.FQName() != "App.App.Main" {
		t.Errorf("Main.FQName() = %q", res.Main.FQName())
	}
	found := false
	for path, content := range res.Files {
		if strings.HasSuffix(path, "App.java") {
			found = true
			if !strings.Contains(content, "class App") {
				t.Errorf("expected class App decl in %s, got:\n%s", path, content)
			}
			if !strings.Contains(content, "System.out.println") {
				t.Errorf("expected print statement lowered, got:\n%s", content)
			}
		}
	}
	if !found {
		t.Fatalf("expected an App.java file in output, got %v", res.Files)
	}
}

func TestRunCollectsRuntimeAsset(t *testing.T) {
	prog := simpleProgram()
	res, err := Run(prog, jvmclass.New(), Options{Target: backend.TagJVMClass})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := res.RuntimeFiles["Runtime.java"]; !ok {
		t.Errorf("expected Runtime.java among runtime files, got %v", res.RuntimeFiles)
	}
}

func TestRunRecordsPhaseTimings(t *testing.T) {
	prog := simpleProgram()
	res, err := Run(prog, jvmclass.New(), Options{Target: backend.TagJVMClass})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, phase := range []string{"topo-sort", "filter", "main-discovery", "lowering", "runtime-assets"} {
		if _, ok := res.PhaseTimings[phase]; !ok {
			t.Errorf("expected phase timing for %q", phase)
		}
	}
}

func TestRunGhostDeclDropped(t *testing.T) {
	ghostDecl := &rir.TopLevelDecl{
		ID:   2,
		Kind: rir.DeclClass,
		Name: "GhostOnly",
		Class: &rir.ClassBody{
			IsGhost: true,
			Members: []*rir.Member{{Kind: rir.MemberMethod, Name: "Proof"}},
		},
	}
	prog := &rir.Program{Modules: []*rir.Module{{Name: "G", Decls: []*rir.TopLevelDecl{ghostDecl}}}}
	res, err := Run(prog, jvmclass.New(), Options{Target: backend.TagJVMClass})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for path, content := range res.Files {
		if strings.Contains(content, "GhostOnly") {
			t.Errorf("expected ghost declaration dropped from output, found in %s:\n%s", path, content)
		}
	}
}

func TestRunRejectsBareTraitCollectionWithoutCapability(t *testing.T) {
	shape := &rir.TopLevelDecl{ID: 1, Kind: rir.DeclTrait, Name: "Shape", Class: &rir.ClassBody{}}
	holder := &rir.TopLevelDecl{
		ID:   2,
		Kind: rir.DeclClass,
		Name: "Holder",
		Class: &rir.ClassBody{
			Members: []*rir.Member{{
				Kind:   rir.MemberMethod,
				Name:   "Shapes",
				Static: true,
				Formals: []rir.Formal{{
					Name: "shapes",
					Type: rir.Type{Kind: rir.TSeq, Elem: &rir.Type{Kind: rir.TUserDefined, DeclName: "Shape"}},
				}},
			}},
		},
	}
	prog := &rir.Program{Modules: []*rir.Module{{Name: "App", Decls: []*rir.TopLevelDecl{shape, holder}}}}

	res, err := Run(prog, cppdialect.New(), Options{Target: backend.TagCppDialect})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for the bare-trait-typed collection")
	}
	if res.Diagnostics[0].Code != "FLT002" {
		t.Errorf("expected FLT002 for a bare-trait-typed collection, got %q", res.Diagnostics[0].Code)
	}
	for path, content := range res.Files {
		if strings.Contains(content, "Holder") {
			t.Errorf("expected Holder dropped from output, found in %s:\n%s", path, content)
		}
	}
}

func TestRunDiagnosticsJSON(t *testing.T) {
	res := &Result{}
	out, err := res.DiagnosticsJSON(true)
	if err != nil {
		t.Fatalf("DiagnosticsJSON: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no diagnostics, got %v", out)
	}
}
