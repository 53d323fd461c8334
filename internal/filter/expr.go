package filter

import "github.com/lowerc/lowerc/internal/rir"

// ResolveGhostMatch implements §4.4: "A match over a ghost scrutinee is
// replaced by its then-branch (resolver marks the taken arm)." Returns
// the surviving arm's body, or nil if e is not a ghost match (callers
// should then lower e normally).
func ResolveGhostMatch(e *rir.Expr) *rir.Expr {
	if e == nil || e.Kind != rir.EMatch || !e.Scrutinee.Ghost {
		return nil
	}
	for _, arm := range e.Arms {
		if arm.Taken {
			return arm.Body
		}
	}
	return nil
}

// EraseGhostConst implements §4.4's last rule: "A constant whose RHS
// mentions ghost state is emitted with the RHS erased to a default
// value." mentionsGhost inspects the RHS (the driver already knows how
// to walk an Expr tree for this, so it is supplied by the caller rather
// than duplicated here); defaultValue is the driver's DefaultValue
// function for the constant's declared type.
func EraseGhostConst(m *rir.Member, mentionsGhost func(*rir.Expr) bool, defaultValue func(rir.Type) *rir.Expr) *rir.Expr {
	if m.Kind != rir.MemberConst || m.RHS == nil {
		return m.RHS
	}
	if mentionsGhost(m.RHS) {
		return defaultValue(m.ResultType)
	}
	return m.RHS
}

// IsAssertionOrLemmaCall reports whether a statement-position call is an
// assertion or a lemma invocation, both of which become no-ops in
// emitted code (§4.4).
func IsAssertionOrLemmaCall(calleeIsLemma bool, op string) bool {
	return calleeIsLemma || op == "assert"
}
