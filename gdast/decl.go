package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// parseClassBody parses a sequence of class-level members (and any
// `extends`/`class_name`/`tool` header forms) at the given indentation
// level, returning the index of the ClassDeclaration (or
// InnerClassDeclaration) node it builds.
func (p *parser) parseClassBody(parentIdx, indent int) int {
	kind := ClassDeclaration
	if parentIdx >= 0 {
		kind = InnerClassDeclaration
	}
	classIdx := p.b.newNode(kind, parentIdx)

	for {
		p.cur.skipTrivia(p.b, classIdx)
		if p.cur.atEOF() {
			break
		}
		if p.cur.lineIndent() < indent {
			break
		}

		next := p.cur.peekAfterAttributes()
		var memberIdx int
		switch {
		case isKeyword(next, "extends"):
			memberIdx = p.parseExtends(classIdx)
		case isKeyword(next, "class_name"):
			memberIdx = p.parseClassName(classIdx)
		case isKeyword(next, "var"):
			memberIdx = p.parseVar(classIdx)
		case isKeyword(next, "const"):
			memberIdx = p.parseConst(classIdx)
		case isKeyword(next, "signal"):
			memberIdx = p.parseSignal(classIdx)
		case isKeyword(next, "enum"):
			memberIdx = p.parseEnum(classIdx)
		case isKeyword(next, "func"):
			memberIdx = p.parseFunc(classIdx)
		case isKeyword(next, "class"):
			memberIdx = p.parseInnerClass(classIdx, indent)
		case isKeyword(next, "tool"):
			memberIdx = p.parseBareKeywordLine(classIdx, PassStatement)
		default:
			p.recoverInvalid(classIdx)
			continue
		}
		p.b.appendChildNode(classIdx, memberIdx)
	}
	return classIdx
}

func (p *parser) parseBareKeywordLine(parentIdx int, kind NodeKind) int {
	idx := p.b.newNode(kind, parentIdx)
	p.cur.consumeSignificant(p.b, idx)
	p.consumeLineEnd(idx)
	return idx
}

// consumeLineEnd consumes trailing trivia through the end of the current
// logical line (comment, CR, newline), attaching it to parentIdx.
func (p *parser) consumeLineEnd(parentIdx int) {
	for {
		if p.cur.atEOF() {
			return
		}
		tok := p.cur.toks[p.cur.pos]
		if !tok.Kind.IsTrivia() {
			return
		}
		p.cur.consumeRaw(p.b, parentIdx)
		if tok.Kind == gdtoken.Newline {
			return
		}
	}
}

func (p *parser) parseExtends(parentIdx int) int {
	idx := p.b.newNode(TypeNode, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'extends'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	} else {
		p.recoverInvalid(idx)
	}
	p.consumeLineEnd(idx)
	return idx
}

func (p *parser) parseClassName(parentIdx int) int {
	idx := p.b.newNode(TypeNode, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // 'class_name'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)
	return idx
}

func (p *parser) parseTypeAnnotation(parentIdx int) int {
	idx := p.b.newNode(TypeNode, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // ':'
	if isPunct(p.cur.peek(), "[") || (p.cur.peek().Kind == gdtoken.Identifier && isPunct(p.cur.peek2(), "[")) {
		p.b.t.nodes[idx].kind = ArrayTypeNode
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, idx) // 'Array' / 'Dictionary'
		}
		p.cur.consumeSignificant(p.b, idx) // '['
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, idx)
		}
		if isPunct(p.cur.peek(), ",") {
			p.cur.consumeSignificant(p.b, idx)
			if p.cur.peek().Kind == gdtoken.Identifier {
				p.b.t.nodes[idx].kind = DictionaryTypeNode
				p.cur.consumeSignificant(p.b, idx)
			}
		}
		if isPunct(p.cur.peek(), "]") {
			p.cur.consumeSignificant(p.b, idx)
		}
		return idx
	}
	if p.cur.peek().Kind == gdtoken.Identifier || isOperator(p.cur.peek(), "=") {
		// `:=` spelled as two tokens in our lexer (':' then '='); bare
		// `:` with no following type means "infer from initializer".
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	return idx
}

func (p *parser) parseVar(parentIdx int) int {
	idx := p.b.newNode(VariableDeclaration, parentIdx)
	p.parseLeadingAttributes(idx)
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
	if isKeyword(p.cur.peek(), "get") || isKeyword(p.cur.peek(), "set") || isPunct(p.cur.peek(), ":") {
		// getter/setter block form: `var x: int: get: ... set(v): ...`
		// each accessor becomes a MethodDeclaration child of this
		// declaration, so the tree stays lossless; the symbol resolver
		// does not descend into these accessors.
		p.parseGetSetBlock(idx)
	}
	p.consumeLineEnd(idx)
	return idx
}

func (p *parser) parseGetSetBlock(parentIdx int) {
	for isKeyword(p.cur.peek(), "get") || isKeyword(p.cur.peek(), "set") || isPunct(p.cur.peek(), ":") {
		if isPunct(p.cur.peek(), ":") {
			p.cur.consumeSignificant(p.b, parentIdx)
			continue
		}
		accIdx := p.b.newNode(MethodDeclaration, parentIdx)
		p.cur.consumeSignificant(p.b, accIdx)
		if isPunct(p.cur.peek(), "(") {
			plIdx := p.parseParameterList(accIdx)
			p.b.appendChildNode(accIdx, plIdx)
		}
		if isPunct(p.cur.peek(), ":") {
			p.cur.consumeSignificant(p.b, accIdx)
			bodyIdx := p.parseBlock(accIdx, p.cur.lineIndent())
			p.b.appendChildNode(accIdx, bodyIdx)
		}
		p.b.appendChildNode(parentIdx, accIdx)
	}
}

func (p *parser) parseConst(parentIdx int) int {
	idx := p.b.newNode(VariableDeclaration, parentIdx)
	p.parseLeadingAttributes(idx)
	p.cur.consumeSignificant(p.b, idx) // 'const'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
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

func (p *parser) parseSignal(parentIdx int) int {
	idx := p.b.newNode(SignalDeclaration, parentIdx)
	p.parseLeadingAttributes(idx)
	p.cur.consumeSignificant(p.b, idx) // 'signal'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	}
	if isPunct(p.cur.peek(), "(") {
		plIdx := p.parseParameterList(idx)
		p.b.appendChildNode(idx, plIdx)
	}
	p.consumeLineEnd(idx)
	return idx
}

func (p *parser) parseEnum(parentIdx int) int {
	idx := p.b.newNode(EnumDeclaration, parentIdx)
	p.parseLeadingAttributes(idx)
	p.cur.consumeSignificant(p.b, idx) // 'enum'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	}
	if isPunct(p.cur.peek(), "{") {
		p.cur.consumeSignificant(p.b, idx)
		for !isPunct(p.cur.peek(), "}") && !p.cur.atEOF() {
			valIdx := p.b.newNode(EnumValueDeclaration, idx)
			if p.cur.peek().Kind == gdtoken.Identifier {
				p.cur.consumeSignificant(p.b, valIdx)
			} else {
				p.recoverInvalid(valIdx)
			}
			if isOperator(p.cur.peek(), "=") {
				p.cur.consumeSignificant(p.b, valIdx)
				exprIdx := p.parseExpr(valIdx, precLowest)
				p.b.appendChildNode(valIdx, exprIdx)
			}
			p.b.appendChildNode(idx, valIdx)
			if isPunct(p.cur.peek(), ",") {
				p.cur.consumeSignificant(p.b, idx)
			}
		}
		if isPunct(p.cur.peek(), "}") {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	p.consumeLineEnd(idx)
	return idx
}

func (p *parser) parseInnerClass(parentIdx, indent int) int {
	headerIdx := p.b.newNode(InnerClassDeclaration, parentIdx)
	p.parseLeadingAttributes(headerIdx)
	p.cur.consumeSignificant(p.b, headerIdx) // 'class'
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, headerIdx)
	}
	if isKeyword(p.cur.peek(), "extends") {
		p.cur.consumeSignificant(p.b, headerIdx)
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, headerIdx)
		}
	}
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, headerIdx)
	}
	p.consumeLineEnd(headerIdx)

	bodyIndent := indent + 1
	inner := p.parseClassBody(headerIdx, bodyIndent)
	// parseClassBody creates its own root node; splice its members into
	// headerIdx instead of nesting an extra layer.
	for _, m := range p.b.t.nodes[inner].children {
		p.b.t.nodes[headerIdx].children = append(p.b.t.nodes[headerIdx].children, m)
		if m.kind == elemNode {
			p.b.t.nodes[m.idx].parent = headerIdx
		}
	}
	return headerIdx
}

func (p *parser) parseParameterList(parentIdx int) int {
	idx := p.b.newNode(ParameterList, parentIdx)
	p.cur.consumeSignificant(p.b, idx) // '('
	for !isPunct(p.cur.peek(), ")") && !p.cur.atEOF() {
		paramIdx := p.b.newNode(ParameterDeclaration, idx)
		if p.cur.peek().Kind == gdtoken.Identifier {
			p.cur.consumeSignificant(p.b, paramIdx)
		} else {
			p.recoverInvalid(paramIdx)
		}
		if isPunct(p.cur.peek(), ":") {
			tIdx := p.parseTypeAnnotation(paramIdx)
			p.b.appendChildNode(paramIdx, tIdx)
		}
		if isOperator(p.cur.peek(), "=") {
			p.cur.consumeSignificant(p.b, paramIdx)
			exprIdx := p.parseExpr(paramIdx, precLowest)
			p.b.appendChildNode(paramIdx, exprIdx)
		}
		p.b.appendChildNode(idx, paramIdx)
		if isPunct(p.cur.peek(), ",") {
			p.cur.consumeSignificant(p.b, idx)
		}
	}
	if isPunct(p.cur.peek(), ")") {
		p.cur.consumeSignificant(p.b, idx)
	}
	return idx
}

func (p *parser) parseFunc(parentIdx int) int {
	idx := p.b.newNode(MethodDeclaration, parentIdx)
	p.parseLeadingAttributes(idx)
	p.cur.consumeSignificant(p.b, idx) // 'func'
	if isKeyword(p.cur.peek(), "static") {
		p.cur.consumeSignificant(p.b, idx)
	}
	if p.cur.peek().Kind == gdtoken.Identifier {
		p.cur.consumeSignificant(p.b, idx)
	} else {
		p.recoverInvalid(idx)
	}
	if isPunct(p.cur.peek(), "(") {
		plIdx := p.parseParameterList(idx)
		p.b.appendChildNode(idx, plIdx)
	}
	if isOperator(p.cur.peek(), "->") {
		p.cur.consumeSignificant(p.b, idx)
		retIdx := p.b.newNode(TypeNode, idx)
		if p.cur.peek().Kind == gdtoken.Identifier || isKeyword(p.cur.peek(), "void") {
			p.cur.consumeSignificant(p.b, retIdx)
		}
		p.b.appendChildNode(idx, retIdx)
	}
	if isPunct(p.cur.peek(), ":") {
		p.cur.consumeSignificant(p.b, idx)
	}
	p.consumeLineEnd(idx)
	bodyIndent := p.cur.lineIndent()
	bodyIdx := p.parseBlock(idx, bodyIndent)
	p.b.appendChildNode(idx, bodyIdx)
	return idx
}

func (p *parser) parseLeadingAttributes(nodeIdx int) {
	for p.cur.peek().Kind == gdtoken.Annotation {
		attrIdx := p.b.newNode(Attribute, nodeIdx)
		p.cur.consumeSignificant(p.b, attrIdx)
		if isPunct(p.cur.peek(), "(") {
			argsIdx := p.parseArgumentList(attrIdx)
			p.b.appendChildNode(attrIdx, argsIdx)
		}
		p.b.appendChildNode(nodeIdx, attrIdx)
		p.cur.skipTrivia(p.b, nodeIdx)
	}
}
