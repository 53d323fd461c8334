// Package emit provides the hierarchical text-emission substrate used by
// every backend: an arena of buffers with parent-child splice points that
// let the driver insert code at earlier textual positions after it has
// already continued emitting later ones (§4.3). Grounded on the redesign
// note in SPEC_FULL.md/spec.md §9 ("textual forks built with mutable
// writers → an arena of buffers plus a parent-child index; flush is a
// topological DFS over the tree") and, in spirit, on the teacher's own
// strings.Builder/fmt.Sprintf composition idiom (internal/core/core.go).
package emit

import (
	"fmt"
	"strings"
)

// state is the fork-flush automaton's state (§4.6).
type state int

const (
	stateOpen state = iota
	stateSealed
	stateFlushed
)

// node is one writer in the arena: either a plain segment of literal
// text, or a named splice point holding an ordered list of child writer
// ids to be spliced in at that position.
type node struct {
	kind     nodeKind
	text     strings.Builder
	children []int // child node ids, in splice order, interleaved with literal text via segments
	segments []segment
	state    state

	// Block-writer framing, only used when kind == nodeBlock.
	header     string
	footer     string
	openStyle  BraceStyle
	closeStyle BraceStyle
	indent     int

	// File binding, only used when kind == nodeFile.
	path string
}

type nodeKind int

const (
	nodePlain nodeKind = iota
	nodeBlock
	nodeFile
)

// segment is one ordered piece of a node's content: either literal text
// written directly, or a reference to a forked child node.
type segment struct {
	text     string
	childRef int // -1 if this segment is literal text
}

// BraceStyle selects same-line ("if (x) {") vs newline ("if (x)\n{")
// block opening/closing, per backend lexical convention.
type BraceStyle int

const (
	SameLine BraceStyle = iota
	NewLine
)

// Arena owns every writer created during one compilation's emission.
// Backends hold weak handles (Writer values wrapping an arena pointer and
// an int id) into it; the arena is the sole owner of text buffers, per
// §3's ownership rule.
type Arena struct {
	nodes []*node
	files []int // node ids of kind nodeFile, in creation order
}

// NewArena creates an empty emission arena.
func NewArena() *Arena {
	return &Arena{}
}

// Writer is a weak handle into an Arena: an index, never a pointer to
// shared mutable state held outside the arena.
type Writer struct {
	arena *Arena
	id    int
}

func (a *Arena) newNode(kind nodeKind) int {
	n := &node{kind: kind}
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

func (a *Arena) node(id int) *node {
	return a.nodes[id]
}

// NewFile returns a fresh writer bound to a pending output file at path.
func (a *Arena) NewFile(path string) Writer {
	id := a.newNode(nodeFile)
	a.node(id).path = path
	a.files = append(a.files, id)
	return Writer{arena: a, id: id}
}

// Write appends literal text to the writer's local buffer at its current
// tail position.
func (w Writer) Write(text string) error {
	n := w.arena.node(w.id)
	if n.state != stateOpen {
		return fmt.Errorf("write to sealed writer %d", w.id)
	}
	n.segments = append(n.segments, segment{text: text, childRef: -1})
	return nil
}

// Writef is a convenience wrapper around Write + fmt.Sprintf.
func (w Writer) Writef(format string, args ...any) error {
	return w.Write(fmt.Sprintf(format, args...))
}

// Fork splits the writer at its current tail, returning a new child
// writer whose buffer is textually spliced before any further parent
// writes. The splice point never moves after creation (§4.3 invariant).
func (w Writer) Fork() Writer {
	n := w.arena.node(w.id)
	childID := w.arena.newNode(nodePlain)
	n.segments = append(n.segments, segment{childRef: childID})
	n.children = append(n.children, childID)
	return Writer{arena: w.arena, id: childID}
}

// NewBlock writes a header, then returns a child block writer; on flush,
// the child's contents are framed between header/footer at the parent's
// indentation + 1.
func (w Writer) NewBlock(header, footer string, openStyle, closeStyle BraceStyle) Writer {
	n := w.arena.node(w.id)
	parentIndent := 0
	if n.kind == nodeBlock {
		parentIndent = n.indent
	}

	childID := w.arena.newNode(nodeBlock)
	child := w.arena.node(childID)
	child.header = header
	child.footer = footer
	child.openStyle = openStyle
	child.closeStyle = closeStyle
	child.indent = parentIndent + 1

	n.segments = append(n.segments, segment{childRef: childID})
	n.children = append(n.children, childID)
	return Writer{arena: w.arena, id: childID}
}

// Close seals a writer: no further writes are permitted. Close is
// idempotent and commutes with fork operations (§4.3).
func (w Writer) Close() {
	n := w.arena.node(w.id)
	if n.state == stateOpen {
		n.state = stateSealed
	}
}

// Flush serializes every file writer depth-first, inserting each child
// at its splice point, and returns the rendered content keyed by file
// path. Flush is implicit at end-of-compilation in the driver; it is
// exposed here so callers can control when atomic writes happen.
func (a *Arena) Flush() (map[string]string, error) {
	out := make(map[string]string, len(a.files))
	for _, fid := range a.files {
		content, err := a.render(fid)
		if err != nil {
			return nil, err
		}
		out[a.node(fid).path] = content
		a.markFlushed(fid)
	}
	return out, nil
}

func (a *Arena) markFlushed(id int) {
	n := a.node(id)
	n.state = stateFlushed
	for _, c := range n.children {
		a.markFlushed(c)
	}
}

func (a *Arena) render(id int) (string, error) {
	n := a.node(id)

	var body strings.Builder
	for _, seg := range n.segments {
		if seg.childRef < 0 {
			body.WriteString(seg.text)
			continue
		}
		childText, err := a.render(seg.childRef)
		if err != nil {
			return "", err
		}
		body.WriteString(childText)
	}

	switch n.kind {
	case nodeFile, nodePlain:
		return body.String(), nil
	case nodeBlock:
		return renderBlock(n, body.String()), nil
	default:
		return "", fmt.Errorf("unknown node kind %d", n.kind)
	}
}

func renderBlock(n *node, body string) string {
	// Each block indents its own body by one level; an enclosing block
	// re-indents the rendered child along with the rest of its body.
	indentStr := ""
	innerIndent := "    "

	var out strings.Builder
	out.WriteString(indentStr)
	out.WriteString(n.header)
	if n.openStyle == NewLine {
		out.WriteString("\n")
		out.WriteString(indentStr)
		out.WriteString("{\n")
	} else {
		out.WriteString(" {\n")
	}

	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if line == "" {
			out.WriteString("\n")
			continue
		}
		out.WriteString(innerIndent)
		out.WriteString(line)
		out.WriteString("\n")
	}

	out.WriteString(indentStr)
	out.WriteString(n.footer)
	out.WriteString("\n")
	return out.String()
}
