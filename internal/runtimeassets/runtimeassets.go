// Package runtimeassets holds the fixed runtime source blob each backend
// ships alongside its emitted output (§6, §11.2): small hand-written
// helper libraries (Euclidean arithmetic, collection helpers, match
// dispatch) that the driver copies into the output tree verbatim and
// never parses. Bundling them as a Go embed.FS is enrichment beyond the
// teacher (which ships no runtime assets of its own) grounded on the
// embedding idiom used elsewhere in the retrieved example pack.
package runtimeassets

import (
	"embed"
	"path/filepath"

	"github.com/lowerc/lowerc/internal/backend"
)

//go:embed assets
var assetsFS embed.FS

// relPath maps each target to the runtime file bundled for it.
var relPath = map[backend.Tag]string{
	backend.TagJVMClass:    "assets/jvmclass/Runtime.java",
	backend.TagCLR:         "assets/clr/Runtime.cs",
	backend.TagGoGC:        "assets/gogc/runtime.go",
	backend.TagCppDialect:  "assets/cppdialect/runtime.hpp",
	backend.TagProtoScript: "assets/protoscript/runtime.lua",
	backend.TagDynScript:   "assets/dynscript/runtime.rbx",
}

// Get returns the embedded runtime source for tag, or ok=false if the
// target has none registered.
func Get(tag backend.Tag) (name string, content []byte, ok bool) {
	path, known := relPath[tag]
	if !known {
		return "", nil, false
	}
	data, err := assetsFS.ReadFile(path)
	if err != nil {
		return "", nil, false
	}
	return filepath.Base(path), data, true
}
