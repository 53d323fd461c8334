// Package registry maps a backend.Tag to its concrete constructor. It is
// the one place that imports all six backend packages, so neither
// internal/backend nor internal/driver needs to know the concrete set
// (avoiding the import cycle a registry living in internal/backend would
// create, since every concrete backend package imports internal/backend).
package registry

import (
	"fmt"

	"github.com/lowerc/lowerc/backend/clr"
	"github.com/lowerc/lowerc/backend/cppdialect"
	"github.com/lowerc/lowerc/backend/dynscript"
	"github.com/lowerc/lowerc/backend/gogc"
	"github.com/lowerc/lowerc/backend/jvmclass"
	"github.com/lowerc/lowerc/backend/protoscript"
	"github.com/lowerc/lowerc/internal/backend"
)

var constructors = map[backend.Tag]func() backend.Backend{
	backend.TagJVMClass:    jvmclass.New,
	backend.TagCLR:         clr.New,
	backend.TagGoGC:        gogc.New,
	backend.TagProtoScript: protoscript.New,
	backend.TagDynScript:   dynscript.New,
	backend.TagCppDialect:  cppdialect.New,
}

// New constructs a fresh backend instance for tag.
func New(tag backend.Tag) (backend.Backend, error) {
	ctor, ok := constructors[tag]
	if !ok {
		return nil, fmt.Errorf("unknown target %q (known: %v)", tag, backend.AllTags)
	}
	return ctor(), nil
}
