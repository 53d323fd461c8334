// Package protoscript targets a prototype-based scripting language in
// the shape of Lua: tables double as objects, arrays, maps, and sets,
// and there is no static type system to consult at lowering time.
package protoscript

import (
	"fmt"
	"strings"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
)

var reservedWords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "goto", "if", "in", "local", "nil", "not", "or",
	"repeat", "return", "then", "true", "until", "while",
}

func profile() common.DynProfile {
	return common.DynProfile{
		Tag: string(backend.TagProtoScript),
		Capabilities: capability.Bits{
			ErasedGenerics:        true,
			NativeIntWidths:       nil,
			TraitTypedCollections: true,
			NativeCoData:          false,
			LabeledLoops:          false,
			MaxNativeTupleArity:   0,
			StringRepresentation:  capability.StringAsCodeUnits,
		},
		ReservedWords:   reservedWords,
		FileExtension:   ".lua",
		FunctionKeyword: "function",
		ThisKeyword:     "self",
		NullLiteral:     "nil",
		ModuleHeader:    func(name string) string { return fmt.Sprintf("-- module %s", name) },
		PrintStatement: func(args []string) string {
			return fmt.Sprintf("print(%s)", strings.Join(args, " .. "))
		},
		ObjectLiteral: func(fields []common.KV) string {
			var parts []string
			for _, f := range fields {
				parts = append(parts, fmt.Sprintf("%s = %s", f.Key, f.Value))
			}
			return "{" + strings.Join(parts, ", ") + "}"
		},
	}
}

// New returns the protoscript Backend.
func New() backend.Backend {
	return common.NewDynBackend(profile())
}
