package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// Precedence levels for GDScript's binary operators, lowest first. Unary
// operators (including await), postfix operators (call/index/member/
// cast/type-check) and primaries are handled outside this table by
// dedicated functions.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precInIs
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precPower
)

var binaryPrecedence = map[string]int{
	"or": precOr, "||": precOr,
	"and": precAnd, "&&": precAnd,
	"in": precInIs, "is": precInIs,
	"==": precComparison, "!=": precComparison,
	"<": precComparison, ">": precComparison,
	"<=": precComparison, ">=": precComparison,
	"|": precBitOr,
	"^": precBitXor,
	"&": precBitAnd,
	"<<": precShift, ">>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precPower,
}

// parseExpr parses an expression using precedence climbing, topped by the
// ternary `X if C else Y` form (spec §4.2).
func (p *parser) parseExpr(parentIdx int, minPrec int) int {
	left := p.parseBinary(parentIdx, minPrec)
	if minPrec == precLowest && isKeyword(p.cur.peek(), "if") {
		idx := p.b.newNode(TernaryExpression, parentIdx)
		p.b.t.nodes[left].parent = idx
		p.b.appendChildNode(idx, left)
		p.cur.consumeSignificant(p.b, idx) // 'if'
		condIdx := p.parseBinary(idx, precLowest)
		p.b.appendChildNode(idx, condIdx)
		if isKeyword(p.cur.peek(), "else") {
			p.cur.consumeSignificant(p.b, idx)
			elseIdx := p.parseExpr(idx, precLowest)
			p.b.appendChildNode(idx, elseIdx)
		}
		return idx
	}
	return left
}

func (p *parser) parseBinary(parentIdx int, minPrec int) int {
	left := p.parseUnary(parentIdx)
	for {
		tok := p.cur.peek()
		var spelling string
		switch tok.Kind {
		case gdtoken.Operator:
			spelling = tok.SubKind
		case gdtoken.Keyword:
			spelling = tok.SubKind
		default:
			return left
		}
		prec, ok := binaryPrecedence[spelling]
		if !ok || prec < minPrec || prec == precLowest {
			return left
		}
		idx := p.b.newNode(DualOperatorExpression, parentIdx)
		p.b.t.nodes[left].parent = idx
		p.b.appendChildNode(idx, left)
		p.cur.consumeSignificant(p.b, idx) // operator token
		right := p.parseBinary(idx, prec+1)
		p.b.appendChildNode(idx, right)
		left = idx
	}
}

func (p *parser) parseUnary(parentIdx int) int {
	tok := p.cur.peek()
	if (tok.Kind == gdtoken.Operator && (tok.SubKind == "-" || tok.SubKind == "~" || tok.SubKind == "!")) ||
		isKeyword(tok, "not") || isKeyword(tok, "await") {
		idx := p.b.newNode(SingleOperatorExpression, parentIdx)
		if isKeyword(tok, "await") {
			p.b.t.nodes[idx].kind = AwaitExpression
		}
		p.cur.consumeSignificant(p.b, idx)
		operandIdx := p.parseUnary(idx)
		p.b.appendChildNode(idx, operandIdx)
		return idx
	}
	return p.parsePostfix(parentIdx)
}

func (p *parser) parsePostfix(parentIdx int) int {
	left := p.parsePrimary(parentIdx)
	for {
		tok := p.cur.peek()
		switch {
		case isPunct(tok, "("):
			idx := p.b.newNode(CallExpression, parentIdx)
			p.b.t.nodes[left].parent = idx
			p.b.appendChildNode(idx, left)
			argsIdx := p.parseArgumentList(idx)
			p.b.appendChildNode(idx, argsIdx)
			left = idx
		case isPunct(tok, "["):
			idx := p.b.newNode(IndexerExpression, parentIdx)
			p.b.t.nodes[left].parent = idx
			p.b.appendChildNode(idx, left)
			p.cur.consumeSignificant(p.b, idx) // '['
			keyIdx := p.parseExpr(idx, precLowest)
			p.b.appendChildNode(idx, keyIdx)
			if isPunct(p.cur.peek(), "]") {
				p.cur.consumeSignificant(p.b, idx)
			}
			left = idx
		case isOperator(tok, "."):
			idx := p.b.newNode(MemberOperatorExpression, parentIdx)
			p.b.t.nodes[left].parent = idx
			p.b.appendChildNode(idx, left)
			p.cur.consumeSignificant(p.b, idx) // '.'
			if p.cur.peek().Kind == gdtoken.Identifier || isKeyword(p.cur.peek(), "get") || isKeyword(p.cur.peek(), "set") {
				p.cur.consumeSignificant(p.b, idx)
			} else {
				p.recoverInvalid(idx)
			}
			left = idx
		case isKeyword(tok, "as"):
			idx := p.b.newNode(CastExpression, parentIdx)
			p.b.t.nodes[left].parent = idx
			p.b.appendChildNode(idx, left)
			p.cur.consumeSignificant(p.b, idx) // 'as'
			if p.cur.peek().Kind == gdtoken.Identifier {
				p.cur.consumeSignificant(p.b, idx)
			}
			left = idx
		case isKeyword(tok, "is"):
			idx := p.b.newNode(TypeCheckExpression, parentIdx)
			p.b.t.nodes[left].parent = idx
			p.b.appendChildNode(idx, left)
			p.cur.consumeSignificant(p.b, idx) // 'is'
			if p.cur.peek().Kind == gdtoken.Identifier {
				p.cur.consumeSignificant(p.b, idx)
			}
			left = idx
		default:
			return left
		}
	}
}

func (p *parser) parseArgumentList(parentIdx int) int {
	idx := p.b.newNode(ArgumentList, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '('
	for !isPunct(p.cur.peek(), ")") && !p.cur.atEOF() {
		argIdx := p.parseExpr(idx, precLowest)
		p.b.appendChildNode(idx, argIdx)
		if isPunct(p.cur.peek(), ",") {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	if isPunct(p.cur.peek(), ")") {
		p.cur.consumeSignificant(p.b, idx)
	}
	return idx
}

func (p *parser) parsePrimary(parentIdx int) int {
	tok := p.cur.peek()
	switch {
	case tok.Kind == gdtoken.NumberInt || tok.Kind == gdtoken.NumberFloat ||
		tok.Kind == gdtoken.NumberHex || tok.Kind == gdtoken.NumberBinary:
		idx := p.b.newNode(NumberExpression, parentIdx)
		p.cur.consumeSignificant(p.b, idx)
		return idx
	case tok.Kind == gdtoken.StringSingle || tok.Kind == gdtoken.StringDouble ||
		tok.Kind == gdtoken.StringName || tok.Kind == gdtoken.StringNodePath ||
		tok.Kind == gdtoken.StringMultiline:
		idx := p.b.newNode(StringExpression, parentIdx)
		p.cur.consumeSignificant(p.b, idx)
		return idx
	case isKeyword(tok, "true") || isKeyword(tok, "false"):
		idx := p.b.newNode(BoolExpression, parentIdx)
		p.cur.consumeSignificant(p.b, idx)
		return idx
	case isKeyword(tok, "null"):
		idx := p.b.newNode(NullExpression, parentIdx)
		p.cur.consumeSignificant(p.b, idx)
		return idx
	case isKeyword(tok, "self") || isKeyword(tok, "super"):
		idx := p.b.newNode(SelfExpression, parentIdx)
		p.cur.consumeSignificant(p.b, idx)
		return idx
	case tok.Kind == gdtoken.Identifier || isKeyword(tok, "preload"):
		idx := p.b.newNode(IdentifierExpression, parentIdx)
		p.cur.consumeSignificant(p.b, idx)
		return idx
	case isPunct(tok, "("):
		// a parenthesized expression does not get its own node kind in
		// this closed set; it is represented by its inner expression,
		// with the parens kept as adjacent tokens of the same parent for
		// losslessness.
		p.cur.consumeSignificant(p.b, parentIdx) // '('
		inner := p.parseExpr(parentIdx, precLowest)
		if isPunct(p.cur.peek(), ")") {
			p.cur.consumeSignificant(p.b, parentIdx)
		}
		return inner
	case isPunct(tok, "["):
		return p.parseArrayInitializer(parentIdx)
	case isPunct(tok, "{"):
		return p.parseDictionaryInitializer(parentIdx)
	case isKeyword(tok, "func"):
		return p.parseLambda(parentIdx)
	case isPunct(tok, "$") || isOperator(tok, "%"):
		return p.parseGetNode(parentIdx)
	default:
		idx := p.b.newNode(InvalidNode, parentIdx)
		if !p.cur.atEOF() {
			p.cur.consumeSignificant(p.b, idx)
		}
		return idx
	}
}

func (p *parser) parseArrayInitializer(parentIdx int) int {
	idx := p.b.newNode(ArrayInitializer, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '['
	for !isPunct(p.cur.peek(), "]") && !p.cur.atEOF() {
		elIdx := p.parseExpr(idx, precLowest)
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

func (p *parser) parseDictionaryInitializer(parentIdx int) int {
	idx := p.b.newNode(DictionaryInitializer, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '{'
	for !isPunct(p.cur.peek(), "}") && !p.cur.atEOF() {
		entryIdx := p.b.newNode(DictionaryEntry, idx)
		keyIdx := p.parseExpr(entryIdx, precLowest)
		p.b.appendChildNode(entryIdx, keyIdx)
		if isPunct(p.cur.peek(), ":") {
			p.cur.consumeSignificant(p.b, entryIdx)
			valIdx := p.parseExpr(entryIdx, precLowest)
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

// parseGetNode parses `$Path/To/Node`, `$"Path With Spaces"`, and
// `%UniqueName` — sugar for get_node()/the scene's unique-name lookup
// (spec §6 "$Path, %UniqueName, and get_node()"). The sigil token
// itself (`$` or the lexer's `%` operator token) records which form
// this is; PathText/IsUnique on the resulting node recover the rest.
func (p *parser) parseGetNode(parentIdx int) int {
	idx := p.b.newNode(GetNodeExpression, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '$' or '%'
	tok := p.cur.peek()
	if tok.Kind == gdtoken.StringSingle || tok.Kind == gdtoken.StringDouble {
		p.cur.consumeSignificant(p.b, idx)
		return idx
	}
	for {
		tok = p.cur.peek()
		if tok.Kind == gdtoken.Identifier || isOperator(tok, "/") {
			p.cur.consumeSignificant(p.b, idx)
			continue
		}
		break
	}
	return idx
}

func (p *parser) parseLambda(parentIdx int) int {
	idx := p.b.newNode(MethodExpression, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'func'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	}
	if isPunct(p.cur.peek(), "(") {
		plIdx := p.parseParameterList(idx)
		p.b.appendChildNode(idx, plIdx)
	}
	if isOperator(p.cur.peek(), "->") {
		p.cur.consumeSignificant(p.b, idx)
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)
	bodyIdx := p.parseBlock(idx, p.cur.lineIndent())
	p.b.appendChildNode(idx, bodyIdx)
	return idx
}
