package driver

import "github.com/lowerc/lowerc/internal/rir"

// mentionsGhost reports whether any subexpression of e is itself marked
// ghost, the test filter.EraseGhostConst needs to decide whether a
// const's RHS must be erased to its default value (§4.4).
func mentionsGhost(e *rir.Expr) bool {
	if e == nil {
		return false
	}
	if e.Ghost {
		return true
	}
	children := []*rir.Expr{
		e.Receiver, e.Left, e.Right, e.Operand, e.Collection, e.UpdateValue,
		e.Lo, e.Hi, e.Range, e.Predicate, e.CompValue, e.Body, e.LetValue,
		e.LetBody, e.Scrutinee, e.Func,
	}
	for _, c := range children {
		if mentionsGhost(c) {
			return true
		}
	}
	for _, c := range e.Elements {
		if mentionsGhost(c) {
			return true
		}
	}
	for _, entry := range e.MapEntries {
		if mentionsGhost(entry.Key) || mentionsGhost(entry.Value) {
			return true
		}
	}
	for _, i := range e.Indices {
		if mentionsGhost(i) {
			return true
		}
	}
	for _, a := range e.Args {
		if mentionsGhost(a) {
			return true
		}
	}
	for _, arm := range e.Arms {
		if mentionsGhost(arm.Body) {
			return true
		}
	}
	return false
}
