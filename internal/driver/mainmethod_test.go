package driver

import (
	"testing"

	lowererrors "github.com/lowerc/lowerc/internal/errors"
	"github.com/lowerc/lowerc/internal/rir"
)

func programWithMain(static bool, defaultClass bool, ghost bool, formals []rir.Formal) *rir.Program {
	decl := &rir.TopLevelDecl{
		Kind: rir.DeclClass,
		Name: "App",
		Class: &rir.ClassBody{
			IsDefaultClass: defaultClass,
			Members: []*rir.Member{
				{
					Kind:    rir.MemberMethod,
					Name:    "Main",
					Static:  static,
					Ghost:   ghost,
					Formals: formals,
				},
			},
		},
	}
	return &rir.Program{Modules: []*rir.Module{{Name: "App", Decls: []*rir.TopLevelDecl{decl}}}}
}

func TestFindMainZeroCandidates(t *testing.T) {
	prog := &rir.Program{Modules: []*rir.Module{{Name: "App", Decls: nil}}}
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: unexpected error %v", err)
	}
	if got != nil {
		t.Errorf("expected nil candidate for zero matches, got %v", got)
	}
}

func TestFindMainSingleStaticCandidate(t *testing.T) {
	prog := programWithMain(true, false, false, nil)
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: %v", err)
	}
	if got == nil {
		t.Fatal("expected a candidate")
	}
	if got.FQName() != "App.App.Main" {
		t.Errorf("FQName() = %q", got.FQName())
	}
}

func TestFindMainInstanceRequiresDefaultClass(t *testing.T) {
	prog := programWithMain(false, false, false, nil)
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: %v", err)
	}
	if got != nil {
		t.Errorf("expected no candidate for non-default, non-static instance method, got %v", got)
	}
}

func TestFindMainInstanceOnDefaultClassQualifies(t *testing.T) {
	prog := programWithMain(false, true, false, nil)
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: %v", err)
	}
	if got == nil {
		t.Fatal("expected a candidate for default-class instance method")
	}
}

func TestFindMainRejectsNonGhostFormals(t *testing.T) {
	prog := programWithMain(true, false, false, []rir.Formal{{Name: "argv", Type: rir.Type{Kind: rir.TInt}}})
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: %v", err)
	}
	if got != nil {
		t.Errorf("expected no candidate when non-ghost formals are present, got %v", got)
	}
}

func TestFindMainGhostFormalsDoNotDisqualify(t *testing.T) {
	prog := programWithMain(true, false, false, []rir.Formal{{Name: "proof", Ghost: true, Type: rir.Type{Kind: rir.TBool}}})
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: %v", err)
	}
	if got == nil {
		t.Fatal("expected ghost-only formals to still qualify")
	}
}

func TestFindMainGhostMemberExcluded(t *testing.T) {
	prog := programWithMain(true, false, true, nil)
	got, err := FindMain(prog, "")
	if err != nil {
		t.Fatalf("FindMain: %v", err)
	}
	if got != nil {
		t.Errorf("expected ghost member to be excluded, got %v", got)
	}
}

func TestFindMainAmbiguousIsFatal(t *testing.T) {
	decl1 := &rir.TopLevelDecl{
		Kind: rir.DeclClass, Name: "A",
		Class: &rir.ClassBody{Members: []*rir.Member{{Kind: rir.MemberMethod, Name: "Main", Static: true}}},
	}
	decl2 := &rir.TopLevelDecl{
		Kind: rir.DeclClass, Name: "B",
		Class: &rir.ClassBody{Members: []*rir.Member{{Kind: rir.MemberMethod, Name: "Main", Static: true}}},
	}
	prog := &rir.Program{Modules: []*rir.Module{{Name: "App", Decls: []*rir.TopLevelDecl{decl1, decl2}}}}
	_, err := FindMain(prog, "")
	if err == nil {
		t.Fatal("expected an error for ambiguous entry points")
	}
	rep, ok := lowererrors.AsReport(err)
	if !ok {
		t.Fatalf("expected a *Report-backed error, got %v", err)
	}
	if rep.Phase != "driver" {
		t.Errorf("Phase = %q, want driver", rep.Phase)
	}
}

func TestFindMainOverride(t *testing.T) {
	prog := programWithMain(true, false, false, nil)
	got, err := FindMain(prog, "App.App.Main")
	if err != nil {
		t.Fatalf("FindMain override: %v", err)
	}
	if got == nil || got.Member.Name != "Main" {
		t.Fatalf("expected override to find Main, got %v", got)
	}
}

func TestFindMainOverrideMalformed(t *testing.T) {
	prog := programWithMain(true, false, false, nil)
	_, err := FindMain(prog, "App.Main")
	if err == nil {
		t.Fatal("expected an error for a malformed --main value")
	}
}

func TestFindMainOverrideNotFound(t *testing.T) {
	prog := programWithMain(true, false, false, nil)
	_, err := FindMain(prog, "App.App.Nope")
	if err == nil {
		t.Fatal("expected an error when the override target is absent")
	}
}
