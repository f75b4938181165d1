package gdast

import (
	"strings"

	"github.com/dekarrin/gdlint/gdtoken"
)

// RenderOrigin returns the byte-exact source text of n's subtree. It is
// O(subtree size): a single traversal concatenating each token's Text.
func RenderOrigin(n Node) string {
	var sb strings.Builder
	writeOrigin(n, &sb)
	return sb.String()
}

func writeOrigin(n Node, sb *strings.Builder) {
	for _, el := range n.tree.nodes[n.idx].children {
		if el.kind == elemToken {
			sb.WriteString(n.tree.tokens[el.idx].Text)
		} else {
			writeOrigin(Node{tree: n.tree, idx: el.idx}, sb)
		}
	}
}

// RenderCanonical returns n's subtree text with every CarriageReturn
// token elided, i.e. origin text with "\r" removed. Also O(subtree
// size).
func RenderCanonical(n Node) string {
	var sb strings.Builder
	writeCanonical(n, &sb)
	return sb.String()
}

func writeCanonical(n Node, sb *strings.Builder) {
	for _, el := range n.tree.nodes[n.idx].children {
		if el.kind == elemToken {
			tok := n.tree.tokens[el.idx]
			if tok.Kind != gdtoken.CarriageReturn {
				sb.WriteString(tok.Text)
			}
		} else {
			writeCanonical(Node{tree: n.tree, idx: el.idx}, sb)
		}
	}
}
