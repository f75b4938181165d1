package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// IsUniqueNodeRef reports whether a GetNodeExpression uses the `%Name`
// unique-node sigil rather than the `$Path` form (spec §6 "%UniqueName").
func (n Node) IsUniqueNodeRef() bool {
	if n.Kind() != GetNodeExpression {
		return false
	}
	for _, tok := range n.ChildTokens() {
		if tok.Kind().IsTrivia() {
			continue
		}
		return tok.Kind() == gdtoken.Operator && tok.Text() == "%"
	}
	return false
}

// NodeRefPath reconstructs the path or unique-name text a
// GetNodeExpression refers to: "Player/Sprite2D" for `$Player/Sprite2D`,
// the unquoted literal for `$"Path With Spaces"`, and the bare name for
// `%HUD`. Returns "" if n is not a GetNodeExpression.
func (n Node) NodeRefPath() string {
	if n.Kind() != GetNodeExpression {
		return ""
	}
	toks := n.ChildTokens()
	for len(toks) > 0 && toks[0].Kind().IsTrivia() {
		toks = toks[1:]
	}
	if len(toks) == 0 {
		return ""
	}
	rest := toks[1:]
	if len(rest) == 1 && (rest[0].Kind() == gdtoken.StringSingle || rest[0].Kind() == gdtoken.StringDouble) {
		text := rest[0].Text()
		if len(text) >= 2 {
			return text[1 : len(text)-1]
		}
		return text
	}
	var out string
	for _, tok := range rest {
		if tok.Kind() == gdtoken.Identifier || (tok.Kind() == gdtoken.Operator && tok.Text() == "/") {
			out += tok.Text()
		}
	}
	return out
}
