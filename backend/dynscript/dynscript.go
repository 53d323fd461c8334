// Package dynscript targets a second dynamically-typed interpreted
// scripting dialect, distinct from protoscript in reserved vocabulary
// and hash-literal punctuation but sharing the same end-terminated block
// shape: objects are plain hashes, numbers are a single native-double
// type the driver never trusts for the unbounded Int type, and
// co-inductive data needs an explicit generator wrapper since there is
// no native laziness.
package dynscript

import (
	"fmt"
	"strings"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
)

var reservedWords = []string{
	"begin", "break", "case", "class", "def", "defined?", "do", "else",
	"elsif", "end", "ensure", "false", "for", "if", "in", "module",
	"next", "nil", "not", "or", "raise", "redo", "rescue", "retry",
	"return", "self", "super", "then", "true", "undef", "unless",
	"until", "when", "while", "yield", "and", "alias",
}

func profile() common.DynProfile {
	return common.DynProfile{
		Tag: string(backend.TagDynScript),
		Capabilities: capability.Bits{
			ErasedGenerics:        true,
			NativeIntWidths:       nil,
			TraitTypedCollections: true,
			NativeCoData:          false,
			LabeledLoops:          true,
			MaxNativeTupleArity:   0,
			StringRepresentation:  capability.StringAsCodeUnits,
		},
		ReservedWords:   reservedWords,
		FileExtension:   ".rbx",
		FunctionKeyword: "def",
		ThisKeyword:     "self",
		NullLiteral:     "nil",
		ModuleHeader:    func(name string) string { return fmt.Sprintf("# module %s", name) },
		PrintStatement: func(args []string) string {
			return fmt.Sprintf("puts(%s)", strings.Join(args, " + "))
		},
		ObjectLiteral: func(fields []common.KV) string {
			var parts []string
			for _, f := range fields {
				parts = append(parts, fmt.Sprintf("%s: %s", f.Key, f.Value))
			}
			return "{" + strings.Join(parts, ", ") + "}"
		},
	}
}

// New returns the dynscript Backend.
func New() backend.Backend {
	return common.NewDynBackend(profile())
}
