package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// parseBlock parses a sequence of statements at the given indentation
// level, returning the index of the Block node it builds. indent is the
// tab-count the statements of this block must be at; a line at a lower
// indent ends the block without consuming it.
func (p *parser) parseBlock(parentIdx, indent int) int {
	blockIdx := p.b.newNode(Block, parentIdx)
	for {
		p.cur.skipTrivia(p.b, blockIdx)
		if p.cur.atEOF() {
			break
		}
		if p.cur.lineIndent() < indent {
			break
		}
		stmtIdx := p.parseStatement(blockIdx, indent)
		p.b.appendChildNode(blockIdx, stmtIdx)
	}
	return blockIdx
}

func (p *parser) parseStatement(parentIdx, indent int) int {
	tok := p.cur.peek()
	switch {
	case isKeyword(tok, "if"):
		return p.parseIf(parentIdx, indent)
	case isKeyword(tok, "for"):
		return p.parseFor(parentIdx, indent)
	case isKeyword(tok, "while"):
		return p.parseWhile(parentIdx, indent)
	case isKeyword(tok, "match"):
		return p.parseMatch(parentIdx, indent)
	case isKeyword(tok, "return"):
		return p.parseReturn(parentIdx)
	case isKeyword(tok, "break"):
		return p.parseBareKeywordLine(parentIdx, BreakStatement)
	case isKeyword(tok, "continue"):
		return p.parseBareKeywordLine(parentIdx, ContinueStatement)
	case isKeyword(tok, "pass"):
		return p.parseBareKeywordLine(parentIdx, PassStatement)
	case isKeyword(tok, "var"):
		return p.parseLocalVar(parentIdx)
	default:
		return p.parseExpressionStatement(parentIdx)
	}
}

func (p *parser) parseLocalVar(parentIdx int) int {
	idx := p.b.newNode(VariableDeclaration, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'var'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	} else {
		p.recoverInvalid(idx)
	}
	if isPunct(p.cur.peek(), ":") {
		tIdx := p.parseTypeAnnotation(idx)
		p.b.appendChildNode(idx, tIdx)
	}
	if isOperator(p.cur.peek(), "=") {
		p.cur.consumeSignificant(p.b, idx)
		exprIdx := p.parseExpr(idx, precLowest)
		p.b.appendChildNode(idx, exprIdx)
	}
	p.consumeLineEnd(idx)
	return idx
}

func (p *parser) parseExpressionStatement(parentIdx int) int {
	idx := p.b.newNode(ExpressionStatement, parentIdx)
	exprIdx := p.parseExpr(idx, precLowest)
	p.b.appendChildNode(idx, exprIdx)

	// assignment: `lhs = rhs`, `lhs += rhs`, etc. Modeled as a
	// DualOperatorExpression so the same type-inference path handles both
	// plain and compound assignment.
	if tok := p.cur.peek(); tok.Kind == gdtoken.Operator && isAssignmentOp(tok.SubKind) {
		assignIdx := p.b.newNode(DualOperatorExpression, idx)
		p.b.t.nodes[exprIdx].parent = assignIdx
		p.b.appendChildNode(assignIdx, exprIdx)
		p.cur.consumeSignificant(p.b, assignIdx)
		rhsIdx := p.parseExpr(assignIdx, precLowest)
		p.b.appendChildNode(assignIdx, rhsIdx)
		// replace the statement's single child with the assignment
		p.b.t.nodes[idx].children = p.b.t.nodes[idx].children[:0]
		p.b.appendChildNode(idx, assignIdx)
	}
	p.consumeLineEnd(idx)
	return idx
}

func isAssignmentOp(sub string) bool {
	switch sub {
	case "=", "+=", "-=", "*=", "/=", "%=", "**=", "&=", "|=", "^=", "<<=", ">>=":
		return true
	default:
		return false
	}
}

func (p *parser) parseIf(parentIdx, indent int) int {
	idx := p.b.newNode(IfStatement, parentIdx)

	branchIdx := p.parseIfBranch(idx, indent, "if")
	p.b.appendChildNode(idx, branchIdx)

	for {
		p.cur.skipTrivia(p.b, idx)
		if p.cur.lineIndent() != indent || !isKeyword(p.cur.peek(), "elif") {
			break
		}
		elifIdx := p.parseIfBranch(idx, indent, "elif")
		p.b.appendChildNode(idx, elifIdx)
	}

	p.cur.skipTrivia(p.b, idx)
	if p.cur.lineIndent() == indent && isKeyword(p.cur.peek(), "else") {
		elseIdx := p.b.newNode(IfBranch, idx)
		p.cur.consumeSignificant(p.b, elseIdx) // 'else'
		if isPunct(p.cur.peek(), ":") {
			p.cur.consumeSignificant(p.b, elseIdx)
		}
		p.consumeLineEnd(elseIdx)
		bodyIdx := p.parseBlock(elseIdx, indent+1)
		p.b.appendChildNode(elseIdx, bodyIdx)
		p.b.appendChildNode(idx, elseIdx)
	}
	return idx
}

func (p *parser) parseIfBranch(parentIdx, indent int, keyword string) int {
	idx := p.b.newNode(IfBranch, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'if'/'elif'
	condIdx := p.parseExpr(idx, precLowest)
	p.b.appendChildNode(idx, condIdx)
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)
	bodyIdx := p.parseBlock(idx, indent+1)
	p.b.appendChildNode(idx, bodyIdx)
	return idx
}

func (p *parser) parseFor(parentIdx, indent int) int {
	idx := p.b.newNode(ForStatement, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'for'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	}
	if isPunct(p.cur.peek(), ":") {
		tIdx := p.parseTypeAnnotation(idx)
		p.b.appendChildNode(idx, tIdx)
	}
	if isKeyword(p.cur.peek(), "in") {
		p.cur.consumeSignificant(p.b, idx)
		iterIdx := p.parseExpr(idx, precLowest)
		p.b.appendChildNode(idx, iterIdx)
	}
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)
	bodyIdx := p.parseBlock(idx, indent+1)
	p.b.appendChildNode(idx, bodyIdx)
	return idx
}

func (p *parser) parseWhile(parentIdx, indent int) int {
	idx := p.b.newNode(WhileStatement, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'while'
	condIdx := p.parseExpr(idx, precLowest)
	p.b.appendChildNode(idx, condIdx)
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)
	bodyIdx := p.parseBlock(idx, indent+1)
	p.b.appendChildNode(idx, bodyIdx)
	return idx
}

func (p *parser) parseMatch(parentIdx, indent int) int {
	idx := p.b.newNode(MatchStatement, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'match'
	subjIdx := p.parseExpr(idx, precLowest)
	p.b.appendChildNode(idx, subjIdx)
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)

	branchIndent := indent + 1
	for {
		p.cur.skipTrivia(p.b, idx)
		if p.cur.atEOF() || p.cur.lineIndent() < branchIndent {
			break
		}
		branchIdx := p.b.newNode(MatchBranch, idx)
		patIdx := p.parseMatchPattern(branchIdx)
		p.b.appendChildNode(branchIdx, patIdx)
		for isPunct(p.cur.peek(), ",") {
			p.cur.consumeSignificant(p.b, branchIdx)
			patIdx = p.parseMatchPattern(branchIdx)
			p.b.appendChildNode(branchIdx, patIdx)
		}
		// `pattern, pattern2 when cond:` — a guard gates the whole
		// comma-separated pattern list, not any one pattern.
		if isKeyword(p.cur.peek(), "when") {
			p.cur.consumeSignificant(p.b, branchIdx)
			guardIdx := p.parseExpr(branchIdx, precLowest)
			p.b.appendChildNode(branchIdx, guardIdx)
		}
		if isPunct(p.cur.peek(), ":") {
			p.cur.consumeSignificant(p.b, branchIdx)
		}
		p.consumeLineEnd(branchIdx)
		bodyIdx := p.parseBlock(branchIdx, branchIndent+1)
		p.b.appendChildNode(branchIdx, bodyIdx)
		p.b.appendChildNode(idx, branchIdx)
	}
	return idx
}

// parseMatchPattern parses one match pattern: `..` (open-ended rest,
// only legal as an array/dictionary element), a bare `_` wildcard, a
// `var name` binding, an array (`[pat, pat, ..]`) or dictionary
// (`{key: pat, ..}`) destructuring pattern whose elements are
// themselves patterns (so bindings and wildcards nest), or a literal
// expression pattern (spec §4.2's closed pattern set). Array/dictionary
// elements reuse ArrayInitializer/DictionaryInitializer as the
// container node kind, since their shape — bracketed, comma-separated
// children — is identical to the expression form; only what fills the
// slots differs.
func (p *parser) parseMatchPattern(parentIdx int) int {
	idx := p.b.newNode(MatchPattern, parentIdx)
	tok := p.cur.peek()
	switch {
	case isOperator(tok, ".."):
		p.cur.consumeSignificant(p.b, idx)
	case tok.Kind == gdtoken.Identifier && tok.Text == "_":
		p.cur.consumeSignificant(p.b, idx)
	case isKeyword(tok, "var"):
		p.cur.consumeSignificant(p.b, idx) // 'var'
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, idx)
		} else {
			p.recoverInvalid(idx)
		}
	case isPunct(tok, "["):
		arrIdx := p.parseArrayPattern(idx)
		p.b.appendChildNode(idx, arrIdx)
	case isPunct(tok, "{"):
		dictIdx := p.parseDictionaryPattern(idx)
		p.b.appendChildNode(idx, dictIdx)
	default:
		exprIdx := p.parseExpr(idx, precLowest)
		p.b.appendChildNode(idx, exprIdx)
	}
	return idx
}

func (p *parser) parseArrayPattern(parentIdx int) int {
	idx := p.b.newNode(ArrayInitializer, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '['
	for !isPunct(p.cur.peek(), "]") && !p.cur.atEOF() {
		elIdx := p.parseMatchPattern(idx)
		p.b.appendChildNode(idx, elIdx)
		if isPunct(p.cur.peek(), ",") {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	if isPunct(p.cur.peek(), "]") {
		p.cur.consumeSignificant(p.b, idx)
	}
	return idx
}

func (p *parser) parseDictionaryPattern(parentIdx int) int {
	idx := p.b.newNode(DictionaryInitializer, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '{'
	for !isPunct(p.cur.peek(), "}") && !p.cur.atEOF() {
		if isOperator(p.cur.peek(), "..") {
			restIdx := p.b.newNode(MatchPattern, idx)
			p.cur.consumeSignificant(p.b, restIdx)
			p.b.appendChildNode(idx, restIdx)
			if isPunct(p.cur.peek(), ",") {
				p.cur.consumeSignificant(p.b, idx)
			}
			continue
		}
		entryIdx := p.b.newNode(DictionaryEntry, idx)
		keyIdx := p.parseExpr(entryIdx, precLowest)
		p.b.appendChildNode(entryIdx, keyIdx)
		if isPunct(p.cur.peek(), ":") {
			p.cur.consumeSignificant(p.b, entryIdx)
			valIdx := p.parseMatchPattern(entryIdx)
			p.b.appendChildNode(entryIdx, valIdx)
		}
		p.b.appendChildNode(idx, entryIdx)
		if isPunct(p.cur.peek(), ",") {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	if isPunct(p.cur.peek(), "}") {
		p.cur.consumeSignificant(p.b, idx)
	}
	return idx
}

func (p *parser) parseReturn(parentIdx int) int {
	idx := p.b.newNode(ReturnStatement, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'return'
	tok := p.cur.peek()
	if tok.Kind != gdtoken.Newline && tok.Kind != gdtoken.EOF && !(tok.Kind == gdtoken.CarriageReturn) {
		exprIdx := p.parseExpr(idx, precLowest)
		p.b.appendChildNode(idx, exprIdx)
	}
	p.consumeLineEnd(idx)
	return idx
}
