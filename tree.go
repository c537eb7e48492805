package schemacheck

import (
	"sort"

	"github.com/xeipuuv/gojsonpointer"
)

// Tree is a read-only view over a schema document positioned at a pointer.
// Navigating yields a new Tree; the document itself is never modified, so any
// number of Trees may share it.
type Tree struct {
	doc  any
	ptr  Pointer
	node any
}

// NewTree returns a Tree positioned at the document root. Documents are
// expected in decoded-JSON form (map[string]any, []any, scalars); other Go
// containers are converted once here.
func NewTree(doc any) Tree {
	doc = normalize(doc)
	return Tree{doc: doc, node: doc}
}

// Navigate repositions the view at p, an absolute pointer into the document.
// A pointer that does not resolve is a fault, reported as ErrPointerNotFound.
func (t Tree) Navigate(p Pointer) (Tree, error) {
	if p.IsRoot() {
		return Tree{doc: t.doc, node: t.doc}, nil
	}
	jp, err := gojsonpointer.NewJsonPointer(p.String())
	if err != nil {
		return Tree{}, &FaultError{Op: "navigate", Pointer: p.String(), Err: err}
	}
	node, _, err := jp.Get(t.doc)
	if err != nil {
		return Tree{}, &FaultError{Op: "navigate", Pointer: p.String(), Err: wrapNotFound(err)}
	}
	return Tree{doc: t.doc, ptr: p, node: node}, nil
}

// Document is the whole underlying document.
func (t Tree) Document() any { return t.doc }

// Pointer is the current position.
func (t Tree) Pointer() Pointer { return t.ptr }

// Node is the value at the current position.
func (t Tree) Node() any { return t.node }

// NodeType classifies the current node.
func (t Tree) NodeType() NodeType { return Classify(t.node) }

// Get returns a member of the current node when it is an object.
func (t Tree) Get(keyword string) (any, bool) {
	m, ok := t.node.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[keyword]
	return v, ok
}

// Has reports whether the current node is an object with the given member.
func (t Tree) Has(keyword string) bool {
	_, ok := t.Get(keyword)
	return ok
}

// Keywords lists the current node's member names in sorted order, or nil
// when the node is not an object.
func (t Tree) Keywords() []string {
	m, ok := t.node.(map[string]any)
	if !ok {
		return nil
	}
	return sortedKeys(m)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
