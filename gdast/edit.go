package gdast

import (
	"github.com/dekarrin/gdlint/gdtoken"
	"github.com/dekarrin/gdlint/internal/gderrors"
)

// SetChild replaces the i-th direct child of n with newChild, a Node from
// the same tree. It fails with a FrozenTree error (and applies no change)
// if n or any ancestor is frozen. Replacing a child invalidates any
// derived-sequence caches on a mutable tree; on a frozen tree the call is
// rejected outright (spec §4.2 "Tree edits").
func (n Node) SetChild(i int, newChild Node) error {
	if n.tree == nil {
		return gderrors.Nil("SetChild")
	}
	if n.Frozen() {
		return gderrors.Frozen("SetChild")
	}
	if newChild.tree != n.tree {
		return gderrors.New("SetChild: newChild belongs to a different tree", nil)
	}
	rec := &n.tree.nodes[n.idx]
	if i < 0 || i >= len(rec.children) {
		return gderrors.New("SetChild: index out of range", nil)
	}
	rec.children[i] = element{kind: elemNode, idx: newChild.idx}
	n.tree.nodes[newChild.idx].parent = n.idx
	n.tree.invalidateSnapshots()
	return nil
}

// RemoveChild removes the i-th direct child of n. If that child is a Node,
// its parent pointer is cleared (set to -1, i.e. detached). Fails with a
// FrozenTree error without partial effect if n is frozen.
func (n Node) RemoveChild(i int) error {
	if n.tree == nil {
		return gderrors.Nil("RemoveChild")
	}
	if n.Frozen() {
		return gderrors.Frozen("RemoveChild")
	}
	rec := &n.tree.nodes[n.idx]
	if i < 0 || i >= len(rec.children) {
		return gderrors.New("RemoveChild: index out of range", nil)
	}
	removed := rec.children[i]
	if removed.kind == elemNode {
		n.tree.nodes[removed.idx].parent = -1
	}
	rec.children = append(rec.children[:i:i], rec.children[i+1:]...)
	n.tree.invalidateSnapshots()
	return nil
}

func (t *Tree) invalidateSnapshots() {
	t.allTokensCache = nil
	t.allNodesCache = nil
}

// Freeze walks the whole tree from the root, marking every node frozen
// and snapshotting AllTokens/AllNodes into immutable slices so concurrent
// readers never race with a derived-sequence computation (spec §4.2,
// §5). Freeze is idempotent.
func (t *Tree) Freeze() {
	if t.frozen {
		return
	}
	for i := range t.nodes {
		t.nodes[i].frozen = true
	}
	t.frozen = true
	t.allTokensCache = t.Root().AllTokens()
	t.allNodesCache = t.Root().AllNodes()
}

// Frozen reports whether the tree (and therefore all of its nodes) is
// frozen.
func (t *Tree) Frozen() bool {
	return t.frozen
}

// Clone returns a deep, unfrozen copy of t that shares no interior
// mutability with the original: mutating the clone never affects t, and
// render_origin(clone) == render_origin(t) immediately after cloning
// (spec §8 property 5).
func (t *Tree) Clone() *Tree {
	clone := &Tree{
		root:   t.root,
		frozen: false,
	}
	clone.tokens = append([]gdtoken.Token(nil), t.tokens...)
	clone.nodes = make([]nodeRecord, len(t.nodes))
	for i, rec := range t.nodes {
		clone.nodes[i] = nodeRecord{
			kind:     rec.kind,
			parent:   rec.parent,
			children: append([]element(nil), rec.children...),
			frozen:   false,
			attrName: rec.attrName,
		}
	}
	return clone
}
