// Package ident provides the reserved-word sanitizer shared by every
// backend (§4.2: "is this identifier a reserved word in the target [...]
// the driver appends a disambiguating suffix"). Grounded on the
// collision-avoidance spirit of the teacher's internal/sid package
// (stable-hash suffixing), simplified here to a plain repeated-suffix
// scheme since identifier collisions only need to be resolved within one
// enclosing scope, not across an entire compilation.
package ident

// ReservedWords is a target's reserved-word table: a set of identifiers
// that collide with the target language's own keywords or library names.
type ReservedWords map[string]struct{}

// NewReservedWords builds a ReservedWords set from a word list.
func NewReservedWords(words ...string) ReservedWords {
	rw := make(ReservedWords, len(words))
	for _, w := range words {
		rw[w] = struct{}{}
	}
	return rw
}

// Sanitize returns name unchanged unless it collides with a reserved
// word or with something already emitted in the same scope (taken), in
// which case it appends suffix repeatedly until the result is free.
// Scenario 3 in §8 ("public_", "goto_") is the suffix="_" case.
func Sanitize(name string, reserved ReservedWords, taken map[string]struct{}, suffix string) string {
	collides := func(n string) bool {
		if _, ok := reserved[n]; ok {
			return true
		}
		if taken != nil {
			if _, ok := taken[n]; ok {
				return true
			}
		}
		return false
	}

	candidate := name
	for collides(candidate) {
		candidate += suffix
	}
	return candidate
}

// IsReserved reports whether name collides with the target's reserved
// words.
func IsReserved(name string, reserved ReservedWords) bool {
	_, ok := reserved[name]
	return ok
}
