// Package inspect is a read-only line-editing shell over an already
// loaded RIR program (§11.3). It lets a user step through modules and
// declarations and preview what the compilability filter would do
// against a chosen target before committing to a full compile. It never
// evaluates anything — there is no source language left to evaluate by
// the time a program reaches RIR. Grounded on the teacher's
// internal/repl (liner.NewLiner() line-editing loop, history file,
// :command dispatch table), reshaped from an eval loop into a browse
// loop over rir.Program.
package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/filter"
	"github.com/lowerc/lowerc/internal/registry"
	"github.com/lowerc/lowerc/internal/rir"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

var commands = []string{
	":help", ":modules", ":decls", ":show", ":filter", ":caps", ":target", ":quit",
}

// Shell browses one loaded Program. curModule and curTarget are the
// defaults commands use when an argument is omitted, so a session can
// settle on "the module/target I'm looking at" without repeating it.
type Shell struct {
	prog      *rir.Program
	curModule string
	curTarget backend.Tag
}

// New builds a Shell over an already-decoded program.
func New(prog *rir.Program) *Shell {
	return &Shell{prog: prog, curTarget: backend.TagJVMClass}
}

// Run starts the interactive loop, reading from the controlling terminal
// and writing to out. It returns when the user quits or input hits EOF.
func (s *Shell) Run(out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".lowerc_inspect_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		if strings.HasPrefix(in, ":") {
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, in) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s\n", bold("lowerc inspect"))
	fmt.Fprintln(out, dim("Type :help for commands, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt(s.prompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		s.HandleCommand(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return nil
}

func (s *Shell) prompt() string {
	if s.curModule == "" {
		return fmt.Sprintf("rir[%s]> ", s.curTarget)
	}
	return fmt.Sprintf("rir[%s/%s]> ", s.curTarget, s.curModule)
}

// HandleCommand dispatches one ":command" line. Exported so a caller
// (tests, or a non-interactive batch mode) can drive the shell without
// going through the liner loop.
func (s *Shell) HandleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		s.printHelp(out)

	case ":modules":
		s.listModules(out)

	case ":decls":
		mod := s.curModule
		if len(parts) >= 2 {
			mod = parts[1]
		}
		s.listDecls(mod, out)

	case ":show":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: :show <declID>")
			return
		}
		s.showDecl(parts[1], out)

	case ":target":
		if len(parts) < 2 {
			fmt.Fprintf(out, "current target: %s\n", s.curTarget)
			return
		}
		s.curTarget = backend.Tag(parts[1])
		fmt.Fprintf(out, "target set to %s\n", yellow(string(s.curTarget)))

	case ":caps":
		target := s.curTarget
		if len(parts) >= 2 {
			target = backend.Tag(parts[1])
		}
		s.showCaps(target, out)

	case ":filter":
		mod := s.curModule
		if len(parts) >= 2 {
			mod = parts[1]
		}
		s.previewFilter(mod, s.curTarget, out)

	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), parts[0])
	}
}

func (s *Shell) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintln(out, "  :modules              list every module in the program")
	fmt.Fprintln(out, "  :decls [module]       list declarations in a module (default: current)")
	fmt.Fprintln(out, "  :show <declID>        dump one declaration's members and types")
	fmt.Fprintln(out, "  :target <tag>         switch the active backend used by :filter/:caps")
	fmt.Fprintln(out, "  :caps [tag]           print a backend's capability bits")
	fmt.Fprintln(out, "  :filter [module]      preview what the compilability filter keeps/drops")
	fmt.Fprintln(out, "  :quit                 exit")
}

func (s *Shell) listModules(out io.Writer) {
	for _, m := range s.prog.Modules {
		marker := " "
		if m.IsDefault {
			marker = "*"
		}
		fmt.Fprintf(out, "%s%s (%d decls)\n", marker, cyan(m.Name), len(m.Decls))
	}
}

func (s *Shell) findModule(name string) *rir.Module {
	for _, m := range s.prog.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *Shell) listDecls(modName string, out io.Writer) {
	mod := s.findModule(modName)
	if mod == nil {
		fmt.Fprintf(out, "%s: no such module %q (:modules to list)\n", red("Error"), modName)
		return
	}
	s.curModule = modName
	for _, d := range mod.Decls {
		ghost := ""
		if d.IsGhost() {
			ghost = dim(" [ghost]")
		}
		fmt.Fprintf(out, "  #%d %s %s%s\n", d.ID, yellow(d.Kind.String()), d.Name, ghost)
	}
}

func (s *Shell) findDecl(idStr string) *rir.TopLevelDecl {
	for _, m := range s.prog.Modules {
		for _, d := range m.Decls {
			if fmt.Sprint(int(d.ID)) == idStr {
				return d
			}
		}
	}
	return nil
}

func (s *Shell) showDecl(idStr string, out io.Writer) {
	d := s.findDecl(idStr)
	if d == nil {
		fmt.Fprintf(out, "%s: no declaration with id %s\n", red("Error"), idStr)
		return
	}
	fmt.Fprintf(out, "%s %s (module %s)\n", bold(d.Kind.String()), d.Name, d.EnclosingModule)
	if d.IsGhost() {
		fmt.Fprintln(out, dim("  ghost-only: would be dropped before reaching any backend"))
	}
	for _, m := range d.Members() {
		ghost := ""
		if m.Ghost {
			ghost = dim(" [ghost]")
		}
		fmt.Fprintf(out, "  %s %s(%s) %s%s\n", yellow(m.Kind.String()), m.Name, formatFormals(m.Formals), m.ResultType, ghost)
	}
	if d.Kind == rir.DeclDatatype && d.Datatype != nil {
		for _, ctor := range d.Datatype.Constructors {
			fmt.Fprintf(out, "  %s(%s)\n", ctor.Name, formatFormals(ctor.Formals))
		}
	}
}

func formatFormals(formals []rir.Formal) string {
	parts := make([]string, 0, len(formals))
	for _, f := range formals {
		g := ""
		if f.Ghost {
			g = "ghost "
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", g, f.Name, f.Type))
	}
	return strings.Join(parts, ", ")
}

func (s *Shell) showCaps(tag backend.Tag, out io.Writer) {
	be, err := registry.New(tag)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	c := be.Capabilities()
	fmt.Fprintf(out, "%s capabilities:\n", bold(string(tag)))
	fmt.Fprintf(out, "  erased generics:        %v\n", c.ErasedGenerics)
	fmt.Fprintf(out, "  native int widths:      %v\n", c.NativeIntWidths)
	fmt.Fprintf(out, "  trait-typed collections: %v\n", c.TraitTypedCollections)
	fmt.Fprintf(out, "  native co-data:         %v\n", c.NativeCoData)
	fmt.Fprintf(out, "  labeled loops:          %v\n", c.LabeledLoops)
	fmt.Fprintf(out, "  max native tuple arity: %d\n", c.MaxNativeTupleArity)
}

func (s *Shell) previewFilter(modName string, tag backend.Tag, out io.Writer) {
	mod := s.findModule(modName)
	if mod == nil {
		fmt.Fprintf(out, "%s: no such module %q (:modules to list)\n", red("Error"), modName)
		return
	}
	be, err := registry.New(tag)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	caps := be.Capabilities()
	res := filter.Module(mod, caps, neverRejects)

	fmt.Fprintf(out, "kept (%s):\n", green(fmt.Sprint(len(res.Decls))))
	for _, d := range res.Decls {
		fmt.Fprintf(out, "  #%d %s %s\n", d.ID, d.Kind, d.Name)
	}
	if len(res.Diagnostics) == 0 {
		return
	}
	fmt.Fprintf(out, "diagnostics (%s):\n", yellow(fmt.Sprint(len(res.Diagnostics))))
	for _, diag := range res.Diagnostics {
		fmt.Fprintf(out, "  %s %s: %s\n", red(diag.Code), diag.Phase, diag.Message)
	}
}

// neverRejects previews the filter phase optimistically: it never flags a
// declaration as unsupported, so :filter shows what capability-only
// filtering would drop (ghost decls) without also reproducing the
// driver's bare-trait-collection check. Kept separate from
// driver.unsupportedDecl so this package never needs to import
// internal/driver (which would pull the whole lowering pipeline into a
// read-only browsing shell).
func neverRejects(*rir.TopLevelDecl) (string, string, bool) {
	return "", "", false
}
