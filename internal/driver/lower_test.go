package driver

import (
	"strings"
	"testing"

	"github.com/lowerc/lowerc/backend/jvmclass"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/rir"
)

func TestLowerExprLiteralAndBinary(t *testing.T) {
	prog := &rir.Program{}
	c := newCtx(jvmclass.New(), prog)
	e := &rir.Expr{
		Kind:         rir.EBinary,
		Op:           "+",
		ResolvedType: rir.Type{Kind: rir.TInt},
		Left:         &rir.Expr{Kind: rir.ELiteral, LitKind: rir.LitInt, LitValue: "1"},
		Right:        &rir.Expr{Kind: rir.ELiteral, LitKind: rir.LitInt, LitValue: "2"},
	}
	got := c.lowerExpr(e)
	if got != "1.add(2)" {
		t.Errorf("lowerExpr(binary) = %q", got)
	}
}

func TestLowerExprGhostMatchResolvesToTakenArm(t *testing.T) {
	prog := &rir.Program{}
	c := newCtx(jvmclass.New(), prog)
	e := &rir.Expr{
		Kind:      rir.EMatch,
		Scrutinee: &rir.Expr{Ghost: true},
		Arms: []rir.MatchArm{
			{Taken: false, Body: &rir.Expr{Kind: rir.ELiteral, LitKind: rir.LitInt, LitValue: "1"}},
			{Taken: true, Body: &rir.Expr{Kind: rir.ELiteral, LitKind: rir.LitInt, LitValue: "2"}},
		},
	}
	got := c.lowerExpr(e)
	if got != "2" {
		t.Errorf("lowerExpr(ghost match) = %q, want the taken arm's body", got)
	}
}

func TestLowerCallArgsSubstitutesGhostDefaults(t *testing.T) {
	prog := &rir.Program{
		Modules: []*rir.Module{{
			Name: "M",
			Decls: []*rir.TopLevelDecl{{
				ID:   1,
				Kind: rir.DeclClass,
				Name: "Helper",
				Class: &rir.ClassBody{
					Members: []*rir.Member{{
						Kind: rir.MemberFunction,
						Name: "combine",
						Formals: []rir.Formal{
							{Name: "proof", Ghost: true, Type: rir.Type{Kind: rir.TBool}},
							{Name: "x", Type: rir.Type{Kind: rir.TInt}},
						},
						ResultType: rir.Type{Kind: rir.TInt},
					}},
				},
			}},
		}},
	}
	c := newCtx(jvmclass.New(), prog)
	callArgs := []*rir.Expr{{Kind: rir.ELiteral, LitKind: rir.LitInt, LitValue: "5"}}
	callee := c.memberOf(1, "combine")
	if callee == nil {
		t.Fatal("expected to resolve the callee member")
	}
	got := c.lowerCallArgs(callee, callArgs)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 args (default-value + supplied)", got)
	}
	if got[0] != "false" {
		t.Errorf("got[0] = %q, want default-value for ghost bool formal", got[0])
	}
	if got[1] != "5" {
		t.Errorf("got[1] = %q, want the caller-supplied arg", got[1])
	}
}

func TestLowerCallArgsPassThroughWhenNoGhostFormals(t *testing.T) {
	prog := &rir.Program{
		Modules: []*rir.Module{{
			Name: "M",
			Decls: []*rir.TopLevelDecl{{
				ID:   2,
				Kind: rir.DeclClass,
				Name: "Helper",
				Class: &rir.ClassBody{
					Members: []*rir.Member{{
						Kind:       rir.MemberFunction,
						Name:       "plain",
						Formals:    []rir.Formal{{Name: "x", Type: rir.Type{Kind: rir.TInt}}},
						ResultType: rir.Type{Kind: rir.TInt},
					}},
				},
			}},
		}},
	}
	c := newCtx(jvmclass.New(), prog)
	callArgs := []*rir.Expr{{Kind: rir.ELiteral, LitKind: rir.LitInt, LitValue: "9"}}
	callee := c.memberOf(2, "plain")
	got := c.lowerCallArgs(callee, callArgs)
	if len(got) != 1 || got[0] != "9" {
		t.Errorf("got %v, want passthrough of supplied args", got)
	}
}

func TestLowerStmtSCallSkipsLemmaInvocation(t *testing.T) {
	prog := &rir.Program{
		Modules: []*rir.Module{{
			Name: "M",
			Decls: []*rir.TopLevelDecl{{
				ID:   3,
				Kind: rir.DeclClass,
				Name: "Helper",
				Class: &rir.ClassBody{
					Members: []*rir.Member{{Kind: rir.MemberLemma, Name: "Transitivity"}},
				},
			}},
		}},
	}
	c := newCtx(jvmclass.New(), prog)
	be := jvmclass.New()
	arena := emit.NewArena()
	scope := be.CreateFile(arena, "Scratch")
	s := &rir.Stmt{
		Kind: rir.SCall,
		Call: &rir.Expr{Kind: rir.ECall, CalleeDecl: 3, Name: "Transitivity"},
	}
	c.lowerStmt(s, scope)
	out, err := arena.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	for _, content := range out {
		if strings.Contains(content, "Transitivity") {
			t.Errorf("expected lemma call to become a no-op, got:\n%s", content)
		}
	}
}

func TestLowerStmtSCallSkipsAssertion(t *testing.T) {
	prog := &rir.Program{}
	c := newCtx(jvmclass.New(), prog)
	be := jvmclass.New()
	arena := emit.NewArena()
	scope := be.CreateFile(arena, "Scratch")
	s := &rir.Stmt{
		Kind: rir.SCall,
		Call: &rir.Expr{Kind: rir.ECall, Name: "assert"},
	}
	c.lowerStmt(s, scope)
	out, err := arena.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	for _, content := range out {
		if strings.Contains(content, "assert") {
			t.Errorf("expected assertion call to become a no-op, got:\n%s", content)
		}
	}
}

func TestLowerStmtSCallEmitsOrdinaryCall(t *testing.T) {
	prog := &rir.Program{
		Modules: []*rir.Module{{
			Name: "M",
			Decls: []*rir.TopLevelDecl{{
				ID:   4,
				Kind: rir.DeclClass,
				Name: "Helper",
				Class: &rir.ClassBody{
					Members: []*rir.Member{{Kind: rir.MemberMethod, Name: "Log"}},
				},
			}},
		}},
	}
	c := newCtx(jvmclass.New(), prog)
	be := jvmclass.New()
	arena := emit.NewArena()
	scope := be.CreateFile(arena, "Scratch")
	s := &rir.Stmt{
		Kind: rir.SCall,
		Call: &rir.Expr{Kind: rir.ECall, CalleeDecl: 4, Name: "Log"},
	}
	c.lowerStmt(s, scope)
	out, err := arena.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	found := false
	for _, content := range out {
		if strings.Contains(content, "Log(") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an ordinary method call to still be emitted, got %v", out)
	}
}

func TestLowerStmtLoopTracksCurLoopLabels(t *testing.T) {
	prog := &rir.Program{}
	c := newCtx(jvmclass.New(), prog)
	if len(c.curLoop) != 0 {
		t.Fatal("expected empty loop stack initially")
	}
	// lowerStmt pops the label again once the loop body finishes, so after
	// the call the stack must be back to empty.
	s := &rir.Stmt{
		Kind:  rir.SLoop,
		Label: "L0",
		Body:  &rir.Stmt{Kind: rir.SBreak, BreakLabel: "L0"},
	}
	be := jvmclass.New()
	arena := emit.NewArena()
	scope := be.CreateFile(arena, "Scratch")
	c.lowerStmt(s, scope)
	if len(c.curLoop) != 0 {
		t.Errorf("expected loop label stack restored to empty after lowering, got %v", c.curLoop)
	}
}
