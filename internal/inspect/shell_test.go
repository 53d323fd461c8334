package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lowerc/lowerc/internal/rir"
)

func sampleProgram() *rir.Program {
	ghostDecl := &rir.TopLevelDecl{
		ID:   2,
		Kind: rir.DeclClass,
		Name: "Proof",
		Class: &rir.ClassBody{
			IsGhost: true,
			Members: []*rir.Member{{Kind: rir.MemberMethod, Name: "Lemma"}},
		},
	}
	widget := &rir.TopLevelDecl{
		ID:   1,
		Kind: rir.DeclClass,
		Name: "Widget",
		Class: &rir.ClassBody{
			Members: []*rir.Member{{
				Kind:       rir.MemberMethod,
				Name:       "Run",
				Static:     true,
				Formals:    []rir.Formal{{Name: "x", Type: rir.Type{Kind: rir.TInt}}},
				ResultType: rir.Type{Kind: rir.TBool},
			}},
		},
	}
	return &rir.Program{
		Modules: []*rir.Module{
			{Name: "App", IsDefault: true, Decls: []*rir.TopLevelDecl{widget, ghostDecl}},
		},
	}
}

func TestListModules(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":modules", &buf)
	if !strings.Contains(buf.String(), "App") {
		t.Errorf("expected module App listed, got %q", buf.String())
	}
}

func TestListDeclsSetsCurrentModule(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":decls App", &buf)
	out := buf.String()
	if !strings.Contains(out, "Widget") || !strings.Contains(out, "Proof") {
		t.Errorf("expected both decls listed, got %q", out)
	}
	if s.curModule != "App" {
		t.Errorf("expected curModule set to App, got %q", s.curModule)
	}
}

func TestListDeclsUnknownModule(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":decls Nope", &buf)
	if !strings.Contains(buf.String(), "no such module") {
		t.Errorf("expected an error about an unknown module, got %q", buf.String())
	}
}

func TestShowDeclRendersMembers(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":show 1", &buf)
	out := buf.String()
	if !strings.Contains(out, "Run(x: Int) Bool") {
		t.Errorf("expected rendered signature, got %q", out)
	}
}

func TestShowDeclFlagsGhost(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":show 2", &buf)
	if !strings.Contains(buf.String(), "dropped before reaching any backend") {
		t.Errorf("expected ghost-decl warning, got %q", buf.String())
	}
}

func TestTargetSwitchesDefault(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":target gogc", &buf)
	if s.curTarget != "gogc" {
		t.Errorf("expected curTarget switched to gogc, got %q", s.curTarget)
	}
}

func TestCapsUnknownTarget(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":caps nonexistent", &buf)
	if !strings.Contains(buf.String(), "unknown target") {
		t.Errorf("expected unknown-target error, got %q", buf.String())
	}
}

func TestFilterPreviewDropsGhostAndKeepsWidget(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":filter App", &buf)
	out := buf.String()
	if !strings.Contains(out, "Widget") {
		t.Errorf("expected Widget kept, got %q", out)
	}
	if strings.Contains(out, "#2 class Proof") {
		t.Errorf("expected ghost decl silently dropped, got %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	s := New(sampleProgram())
	var buf bytes.Buffer
	s.HandleCommand(":bogus", &buf)
	if !strings.Contains(buf.String(), "unknown command") {
		t.Errorf("expected unknown-command error, got %q", buf.String())
	}
}
