package gdast

// AttributesBefore returns the Attribute nodes attached directly to a
// member declaration (the leading children of kind Attribute), in source
// order. These are the annotations immediately preceding the member, e.g.
// `@onready` on the `var` that follows it.
func (n Node) AttributesBefore() []Node {
	var out []Node
	for _, child := range n.ChildNodes() {
		if child.Kind() != Attribute {
			break
		}
		out = append(out, child)
	}
	return out
}

// AttributesFromClassStart returns every Attribute node attached to any
// member of the enclosing class, from the start of the class body up to
// and including n's own attributes, in source order. It is a derived
// sequence computed lazily on every call rather than cached on the node
// (spec §4.2 "Attributes cumulative view").
func (n Node) AttributesFromClassStart() []Node {
	class, ok := enclosingClass(n)
	if !ok {
		return n.AttributesBefore()
	}

	member, ok := directMemberOf(class, n)
	if !ok {
		return n.AttributesBefore()
	}

	var out []Node
	for _, m := range class.ChildNodes() {
		out = append(out, m.AttributesBefore()...)
		if m.Equal(member) {
			break
		}
	}
	return out
}

func enclosingClass(n Node) (Node, bool) {
	cur := n
	for {
		p, ok := cur.Parent()
		if !ok {
			return Node{}, false
		}
		if p.Kind() == ClassDeclaration || p.Kind() == InnerClassDeclaration {
			return p, true
		}
		cur = p
	}
}

// directMemberOf finds the child of class that is n or an ancestor of n.
func directMemberOf(class, n Node) (Node, bool) {
	for _, m := range class.ChildNodes() {
		if m.Equal(n) || m.Contains(n) {
			return m, true
		}
	}
	return Node{}, false
}
