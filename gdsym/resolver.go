package gdsym

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdtoken"
)

// FileModel is the result of resolving one parsed file: the outer
// class's scope tree plus a lookup from any AST node to its innermost
// enclosing scope, used by gdtype's flow engine and gdsem's facade to
// answer "what's in scope at this point" queries.
type FileModel struct {
	Tree       *gdast.Tree
	ClassScope *Scope
	nodeScope  map[gdast.Node]*Scope
}

// ScopeAt returns the innermost scope enclosing n: n's own scope if it
// introduces one, else the nearest ancestor's.
func (fm *FileModel) ScopeAt(n gdast.Node) *Scope {
	for cur := n; ; {
		if s, ok := fm.nodeScope[cur]; ok {
			return s
		}
		parent, ok := cur.Parent()
		if !ok {
			return fm.ClassScope
		}
		cur = parent
	}
}

// Resolve walks tree once, materializing the class's members, each
// inner class's members, and each method's parameters and locals (spec
// §4.3). tree must be rooted at a ClassDeclaration.
func Resolve(tree *gdast.Tree) *FileModel {
	fm := &FileModel{Tree: tree, nodeScope: make(map[gdast.Node]*Scope)}
	fm.ClassScope = fm.buildClass(tree.Root(), nil)
	return fm
}

func (fm *FileModel) buildClass(classNode gdast.Node, parent *Scope) *Scope {
	scope := newScope(ScopeClass, parent)
	fm.nodeScope[classNode] = scope

	for _, member := range classNode.ChildNodes() {
		switch member.Kind() {
		case gdast.VariableDeclaration:
			fm.declareVarOrConst(scope, member)
		case gdast.SignalDeclaration:
			fm.declareSignal(scope, member)
		case gdast.EnumDeclaration:
			fm.declareEnum(scope, member)
		case gdast.MethodDeclaration:
			if name, _ := identifierToken(member); name != "" {
				scope.declare(&Symbol{Name: name, Kind: KindMethod, Decl: member})
			}
			fm.buildMethod(member, scope)
		case gdast.InnerClassDeclaration:
			name, _ := identifierToken(member)
			sym := &Symbol{Name: name, Kind: KindClass, Decl: member}
			scope.declare(sym)
			fm.buildClass(member, scope)
		}
	}
	return scope
}

func (fm *FileModel) declareVarOrConst(scope *Scope, decl gdast.Node) {
	name, _ := identifierToken(decl)
	if name == "" {
		return
	}
	kind := KindVariable
	if isConstDecl(decl) {
		kind = KindConstant
	}
	sym := &Symbol{Name: name, Kind: kind, Decl: decl, DeclaredType: declaredType(decl)}
	scope.declare(sym)
}

func (fm *FileModel) declareSignal(scope *Scope, decl gdast.Node) {
	name, _ := identifierToken(decl)
	if name == "" {
		return
	}
	scope.declare(&Symbol{Name: name, Kind: KindSignal, Decl: decl})
}

func (fm *FileModel) declareEnum(scope *Scope, decl gdast.Node) {
	name, _ := identifierToken(decl)
	if name != "" {
		scope.declare(&Symbol{Name: name, Kind: KindEnum, Decl: decl})
	}
	for _, val := range decl.ChildNodes() {
		if val.Kind() != gdast.EnumValueDeclaration {
			continue
		}
		valName, _ := identifierToken(val)
		if valName != "" {
			scope.declare(&Symbol{Name: valName, Kind: KindEnumValue, Decl: val, DeclaredType: "int"})
		}
	}
}

func (fm *FileModel) buildMethod(method gdast.Node, parent *Scope) *Scope {
	scope := newScope(ScopeMethod, parent)
	fm.nodeScope[method] = scope

	for _, child := range method.ChildNodes() {
		switch child.Kind() {
		case gdast.ParameterList:
			fm.declareParams(scope, child)
		case gdast.Block:
			fm.walkBlock(child, scope)
		}
	}
	return scope
}

func (fm *FileModel) declareParams(scope *Scope, paramList gdast.Node) {
	for _, param := range paramList.ChildNodes() {
		if param.Kind() != gdast.ParameterDeclaration {
			continue
		}
		name, _ := identifierToken(param)
		if name == "" {
			continue
		}
		scope.declare(&Symbol{Name: name, Kind: KindParameter, Decl: param, DeclaredType: declaredType(param)})
	}
}

// walkBlock declares local `var` bindings into the nearest enclosing
// scope as they're encountered (GDScript locals are function-scoped,
// not block-scoped, but a Block still gets its own Scope entry so flow
// queries at any statement can find "what's declared so far").
func (fm *FileModel) walkBlock(block gdast.Node, parent *Scope) *Scope {
	scope := newScope(ScopeBlock, parent)
	fm.nodeScope[block] = scope

	for _, stmt := range block.ChildNodes() {
		fm.walkStatement(stmt, scope)
	}
	return scope
}

func (fm *FileModel) walkStatement(stmt gdast.Node, scope *Scope) {
	switch stmt.Kind() {
	case gdast.VariableDeclaration:
		name, _ := identifierToken(stmt)
		if name != "" {
			scope.declare(&Symbol{Name: name, Kind: KindVariable, Decl: stmt, DeclaredType: declaredType(stmt)})
		}
	case gdast.IfStatement:
		for _, branch := range stmt.ChildNodes() {
			fm.walkIfBranch(branch, scope)
		}
	case gdast.ForStatement:
		fm.walkFor(stmt, scope)
	case gdast.WhileStatement:
		for _, c := range stmt.ChildNodes() {
			if c.Kind() == gdast.Block {
				fm.walkBlock(c, scope)
			}
		}
	case gdast.MatchStatement:
		for _, branch := range stmt.ChildNodes() {
			if branch.Kind() != gdast.MatchBranch {
				continue
			}
			for _, c := range branch.ChildNodes() {
				if c.Kind() == gdast.Block {
					fm.walkBlock(c, scope)
				}
			}
		}
	}
}

func (fm *FileModel) walkIfBranch(branch gdast.Node, scope *Scope) {
	if branch.Kind() != gdast.IfBranch {
		return
	}
	for _, c := range branch.ChildNodes() {
		if c.Kind() == gdast.Block {
			fm.walkBlock(c, scope)
		}
	}
}

func (fm *FileModel) walkFor(forStmt gdast.Node, scope *Scope) {
	// the loop variable lives in a fresh block scope that also covers
	// the loop body, since it's only bound while the loop runs.
	loopScope := newScope(ScopeBlock, scope)
	fm.nodeScope[forStmt] = loopScope

	name, _ := identifierToken(forStmt)
	if name != "" {
		loopScope.declare(&Symbol{Name: name, Kind: KindVariable, Decl: forStmt, DeclaredType: declaredType(forStmt)})
	}
	for _, c := range forStmt.ChildNodes() {
		if c.Kind() == gdast.Block {
			fm.walkBlock(c, loopScope)
		}
	}
}

// identifierToken returns the text of the first direct Identifier-kind
// token child of n (the declared name for any of our declaration node
// kinds, since the parser attaches names as plain tokens, never
// wrapped in a sub-node).
func identifierToken(n gdast.Node) (string, bool) {
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Identifier {
			return tok.Text(), true
		}
	}
	return "", false
}

func isConstDecl(n gdast.Node) bool {
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Keyword && tok.Text() == "const" {
			return true
		}
	}
	return false
}

// declaredType returns the spelled type name of n's TypeNode child, if
// present and non-generic ("" for ArrayTypeNode/DictionaryTypeNode and
// for inferred/untyped declarations).
func declaredType(n gdast.Node) string {
	for _, c := range n.ChildNodes() {
		if c.Kind() != gdast.TypeNode {
			continue
		}
		for _, tok := range c.ChildTokens() {
			if tok.Kind() == gdtoken.Identifier {
				return tok.Text()
			}
		}
	}
	return ""
}
