package numeric

import (
	"fmt"

	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/rir"
)

// CheckCollectionElement enforces §4.5's restriction: collection element
// types forbid bare trait (unsized) parameters unless the backend's
// capability bit allows it. isBareTrait is supplied by the caller, which
// knows the RIR decl table and can tell a trait-typed element from a
// concrete one.
func CheckCollectionElement(elem rir.Type, isBareTrait func(rir.Type) bool, caps capability.Bits) error {
	if elem.Kind == rir.TUserDefined && isBareTrait(elem) && !caps.TraitTypedCollections {
		return fmt.Errorf("collection element type %q is a bare trait, unsupported by this backend", elem)
	}
	return nil
}
