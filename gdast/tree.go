package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// elemKind distinguishes the two things a node's child slot can hold.
type elemKind uint8

const (
	elemNode elemKind = iota
	elemToken
)

// element is a reference into one of the tree's two arenas. Children are
// stored as indices rather than pointers so that parent back-pointers
// (also indices) never form an ownership cycle (spec §9 "Cycles in
// parent references").
type element struct {
	kind elemKind
	idx  int
}

type nodeRecord struct {
	kind     NodeKind
	parent   int // -1 for the root
	children []element
	frozen   bool

	// attrName is copied by Clone but never set by the parser, so it is
	// always empty; for kind == Attribute the annotation token plus any
	// call-style argument list are stored as ordinary children.
	attrName string
}

// Tree is the arena-backed, lossless concrete syntax tree for one parsed
// file or expression. It owns every Node and Token; Node/Token values
// returned by its methods are lightweight handles (tree pointer + index)
// valid only for the Tree that produced them.
type Tree struct {
	nodes  []nodeRecord
	tokens []gdtoken.Token
	root   int

	frozen bool

	// snapshot caches populated by Freeze(); nil on a mutable tree.
	allTokensCache []Token
	allNodesCache  []Node
}

// Node is a handle to one interior node of a Tree.
type Node struct {
	tree *Tree
	idx  int
}

// Token is a handle to one leaf token of a Tree, distinct from
// gdtoken.Token (which is the raw lexer output with no tree identity).
type Token struct {
	tree *Tree
	idx  int
}

// IsNil reports whether this handle refers to no node (the zero Node).
func (n Node) IsNil() bool { return n.tree == nil }

// IsNil reports whether this handle refers to no token.
func (t Token) IsNil() bool { return t.tree == nil }

// Raw returns the underlying lexer token this handle wraps.
func (t Token) Raw() gdtoken.Token {
	return t.tree.tokens[t.idx]
}

func (t Token) Kind() gdtoken.Kind { return t.Raw().Kind }
func (t Token) Text() string       { return t.Raw().Text }
func (t Token) Span() gdtoken.Span { return t.Raw().Span }

// builder accumulates nodes/tokens while parsing. It is the only way to
// construct a Tree; once Build() is called the Tree is ready for queries
// but still mutable (not frozen).
type builder struct {
	t *Tree
}

func newBuilder() *builder {
	return &builder{t: &Tree{root: -1}}
}

// newNode appends a node record and returns its index.
func (b *builder) newNode(kind NodeKind, parent int) int {
	b.t.nodes = append(b.t.nodes, nodeRecord{kind: kind, parent: parent})
	return len(b.t.nodes) - 1
}

// newToken appends a raw lexer token and returns its index.
func (b *builder) newToken(tok gdtoken.Token) int {
	b.t.tokens = append(b.t.tokens, tok)
	return len(b.t.tokens) - 1
}

func (b *builder) appendChildNode(parentIdx, childIdx int) {
	b.t.nodes[parentIdx].children = append(b.t.nodes[parentIdx].children, element{kind: elemNode, idx: childIdx})
}

func (b *builder) appendChildToken(parentIdx, tokIdx int) {
	b.t.nodes[parentIdx].children = append(b.t.nodes[parentIdx].children, element{kind: elemToken, idx: tokIdx})
}

func (b *builder) build(root int) *Tree {
	b.t.root = root
	return b.t
}

// Root returns the tree's root node.
func (t *Tree) Root() Node {
	return Node{tree: t, idx: t.root}
}

// Kind returns the node's kind tag.
func (n Node) Kind() NodeKind {
	return n.tree.nodes[n.idx].kind
}

// Frozen reports whether this node (and therefore its whole tree) has
// been frozen.
func (n Node) Frozen() bool {
	return n.tree.nodes[n.idx].frozen
}

// Parent returns the node's parent and true, or the zero Node and false
// if this is the root.
func (n Node) Parent() (Node, bool) {
	p := n.tree.nodes[n.idx].parent
	if p < 0 {
		return Node{}, false
	}
	return Node{tree: n.tree, idx: p}, true
}

// ChildCount returns the number of direct children (nodes and tokens).
func (n Node) ChildCount() int {
	return len(n.tree.nodes[n.idx].children)
}

// Child returns the i-th direct child as either a Node or a Token. Exactly
// one of the two returned handles is non-nil.
func (n Node) Child(i int) (Node, Token) {
	el := n.tree.nodes[n.idx].children[i]
	if el.kind == elemNode {
		return Node{tree: n.tree, idx: el.idx}, Token{}
	}
	return Node{}, Token{tree: n.tree, idx: el.idx}
}

// ChildNodes returns only the direct children that are Nodes, in order.
func (n Node) ChildNodes() []Node {
	var out []Node
	for _, el := range n.tree.nodes[n.idx].children {
		if el.kind == elemNode {
			out = append(out, Node{tree: n.tree, idx: el.idx})
		}
	}
	return out
}

// ChildTokens returns only the direct children that are Tokens, in order.
func (n Node) ChildTokens() []Token {
	var out []Token
	for _, el := range n.tree.nodes[n.idx].children {
		if el.kind == elemToken {
			out = append(out, Token{tree: n.tree, idx: el.idx})
		}
	}
	return out
}

// Equal reports whether two handles refer to the same node of the same
// tree.
func (n Node) Equal(o Node) bool {
	return n.tree == o.tree && n.idx == o.idx
}
