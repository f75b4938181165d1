package gdast

import (
	"fmt"
	"strings"
)

// Dump returns a prettified, line-by-line tree representation suitable
// for diffing in tests, in the same "|"/"\" branch-prefix style the
// teacher's parse.Tree.String() uses.
func Dump(n Node) string {
	return n.leveledDump("", "")
}

func (n Node) leveledDump(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	sb.WriteString(fmt.Sprintf("(%s)", n.Kind()))

	rec := n.tree.nodes[n.idx]
	for i, el := range rec.children {
		sb.WriteRune('\n')
		last := i == len(rec.children)-1
		var leveledFirst, leveledCont string
		if last {
			leveledFirst = contPrefix + `  \-: `
			leveledCont = contPrefix + "      "
		} else {
			leveledFirst = contPrefix + `  |-: `
			leveledCont = contPrefix + "  |   "
		}
		if el.kind == elemToken {
			tok := n.tree.tokens[el.idx]
			sb.WriteString(leveledFirst)
			sb.WriteString(fmt.Sprintf("(TOKEN %s %q)", tok.Kind, tok.Text))
		} else {
			child := Node{tree: n.tree, idx: el.idx}
			sb.WriteString(child.leveledDump(leveledFirst, leveledCont))
		}
	}
	return sb.String()
}
