package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// parser is the hand-written predictive recognizer for GDScript (spec
// §4.2). It never returns an error: malformed input becomes Invalid
// leaves attached to the node being built, and parsing resumes at the
// next synchronizing keyword.
type parser struct {
	cur *cursor
	b   *builder
}

// ParseFile parses a complete GDScript source file into a lossless Tree
// rooted at a ClassDeclaration node.
func ParseFile(source string) *Tree {
	toks := gdtoken.Tokenize(source)
	p := &parser{cur: newCursor(toks), b: newBuilder()}
	root := p.parseClassBody(-1, 0)
	return p.b.build(root)
}

// ParseExpression parses a single expression into a lossless Tree rooted
// at the expression node.
func ParseExpression(source string) *Tree {
	toks := gdtoken.Tokenize(source)
	p := &parser{cur: newCursor(toks), b: newBuilder()}
	root := p.parseExpr(-1, precLowest)
	p.b.t.nodes[root].parent = -1
	// trailing trivia (e.g. a final newline) still belongs in the tree so
	// that render_origin stays exact.
	p.cur.skipTrivia(p.b, root)
	return p.b.build(root)
}

// isKeyword reports whether tok is the keyword with the given spelling.
func isKeyword(tok gdtoken.Token, word string) bool {
	return tok.Kind == gdtoken.Keyword && tok.SubKind == word
}

func isOperator(tok gdtoken.Token, spelling string) bool {
	return tok.Kind == gdtoken.Operator && tok.SubKind == spelling
}

func isPunct(tok gdtoken.Token, spelling string) bool {
	return tok.Kind == gdtoken.Punctuation && tok.SubKind == spelling
}

// syncKeywords are the tokens the parser resumes production at after
// attaching an Invalid node for unrecognized input (spec §4.2).
var syncKeywords = map[string]bool{
	"func": true, "class": true, "var": true, "const": true,
	"signal": true, "enum": true, "extends": true, "class_name": true,
}

// recoverInvalid consumes tokens (attaching them to a new InvalidNode
// child of parentIdx) until a synchronizing keyword, a newline at column
// 1, or EOF is reached. It always consumes at least one token so callers
// never loop forever on unrecognized input.
func (p *parser) recoverInvalid(parentIdx int) {
	invIdx := p.b.newNode(InvalidNode, parentIdx)
	p.b.appendChildNode(parentIdx, invIdx)

	first := true
	for {
		if p.cur.atEOF() {
			return
		}
		tok := p.cur.peek()
		if !first {
			if tok.Kind == gdtoken.Keyword && syncKeywords[tok.SubKind] && p.cur.lineIndent() == 0 {
				return
			}
		}
		p.cur.consumeSignificant(p.b, invIdx)
		first = false
		crossed := false
		for i := p.cur.pos; i < len(p.cur.toks) && p.cur.toks[i].Kind.IsTrivia(); i++ {
			if p.cur.toks[i].Kind == gdtoken.Newline {
				crossed = true
				break
			}
		}
		if crossed && p.cur.lineIndent() == 0 {
			return
		}
	}
}
