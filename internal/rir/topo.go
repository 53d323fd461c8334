package rir

import "fmt"

// CycleError reports a module-import cycle detected during dependency
// ordering. Grounded on the teacher's internal/link.CycleError shape.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %v", e.Cycle)
}

// TopoSort orders a program's modules so that every module appears before
// any module that imports it (§4.1's traversal-order requirement). It is
// a direct adaptation of the teacher's DFS post-order topological sort
// (internal/link/topo.go), generalized from a single-root walk to all
// modules in a Program and stripped of the teacher's REPL-only debug
// logging.
func TopoSort(prog *Program) ([]*Module, error) {
	byName := make(map[string]*Module, len(prog.Modules))
	for _, m := range prog.Modules {
		byName[m.Name] = m
	}

	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var sorted []*Module
	var path []string

	var dfs func(name string) error
	dfs = func(name string) error {
		if visited[name] {
			return nil
		}
		if inPath[name] {
			cycle := append([]string{}, path...)
			cycle = append(cycle, name)
			return &CycleError{Cycle: cycle}
		}
		mod, ok := byName[name]
		if !ok {
			// A module importing an unknown module is an external-collaborator
			// concern (the resolver should have caught it); the core treats it
			// as an internal invariant violation rather than silently skipping.
			return fmt.Errorf("unknown module %q referenced as a dependency", name)
		}

		inPath[name] = true
		path = append(path, name)

		for _, dep := range mod.Imports {
			if err := dfs(dep); err != nil {
				return err
			}
		}

		inPath[name] = false
		path = path[:len(path)-1]
		visited[name] = true
		sorted = append(sorted, mod)
		return nil
	}

	// Deterministic iteration order: the order modules were declared in
	// the Program, not map order, to satisfy §5's "identical RIR yields
	// identical bytes" determinism requirement.
	for _, m := range prog.Modules {
		if err := dfs(m.Name); err != nil {
			return nil, err
		}
	}

	return sorted, nil
}
