package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdtoken"
)

// typeValidator checks arithmetic/bitwise operand types, assignment
// compatibility, return-type compatibility, await on non-awaitables,
// and the three comparison rules (spec §4.6 "Type validator").
type typeValidator struct{}

func (typeValidator) Name() string { return "type" }

func (v typeValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.DualOperatorExpression:
			v.checkDualOperator(ctx, n)
		case gdast.VariableDeclaration:
			v.checkAssignment(ctx, n)
		case gdast.ReturnStatement:
			v.checkReturn(ctx, n)
		case gdast.AwaitExpression:
			v.checkAwait(ctx, n)
		}
	})
}

var comparisonOps = map[string]bool{
	"<": true, ">": true, "<=": true, ">=": true,
}

var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"|": true, "^": true, "&": true, "<<": true, ">>": true,
}

func operatorText(n gdast.Node) string {
	for _, tok := range n.ChildTokens() {
		if !tok.Kind().IsTrivia() {
			return tok.Text()
		}
	}
	return ""
}

func (v typeValidator) checkDualOperator(ctx *Context, n gdast.Node) {
	children := n.ChildNodes()
	if len(children) != 2 {
		return
	}
	op := operatorText(n)
	lhs, rhs := children[0], children[1]

	if comparisonOps[op] {
		v.checkComparison(ctx, n, op, lhs, rhs)
		return
	}
	if !arithmeticOps[op] {
		return
	}
	lt := ctx.Model.GetExpressionType(lhs)
	rt := ctx.Model.GetExpressionType(rhs)
	if lt == "Variant" || rt == "Variant" || lt == "" || rt == "" {
		return
	}
	if !operandTypesCompatible(lt, rt) {
		ctx.emit(gddiag.InvalidOperandType, n,
			"operator "+op+" is not defined for "+lt+" and "+rt)
	}
}

func operandTypesCompatible(a, b string) bool {
	if a == b {
		return true
	}
	numeric := map[string]bool{"int": true, "float": true}
	if numeric[a] && numeric[b] {
		return true
	}
	vector := map[string]bool{"Vector2": true, "Vector3": true, "Color": true}
	if (vector[a] || numeric[a]) && (vector[b] || numeric[b]) && (vector[a] || vector[b]) {
		return true
	}
	return false
}

func (v typeValidator) checkComparison(ctx *Context, n gdast.Node, op string, lhs, rhs gdast.Node) {
	for _, side := range []gdast.Node{lhs, rhs} {
		if side.Kind() == gdast.NullExpression {
			ctx.emit(gddiag.ComparisonWithNull, n, "comparison "+op+" with null is always false")
			return
		}
	}
	for _, side := range []gdast.Node{lhs, rhs} {
		if side.Kind() == gdast.IdentifierExpression && ctx.Model.IsVariablePotentiallyNull(identName(side), n) {
			ctx.emit(gddiag.ComparisonWithPotentiallyNull, n, "comparison "+op+" with a potentially-null value")
			return
		}
	}
	lt := ctx.Model.GetExpressionType(lhs)
	rt := ctx.Model.GetExpressionType(rhs)
	if lt == "Variant" || rt == "Variant" || lt == "" || rt == "" || lt == rt {
		return
	}
	numeric := map[string]bool{"int": true, "float": true}
	if numeric[lt] && numeric[rt] {
		return
	}
	ctx.emit(gddiag.IncompatibleComparisonTypes, n, "comparison "+op+" between incompatible types "+lt+" and "+rt)
}

func (v typeValidator) checkAssignment(ctx *Context, decl gdast.Node) {
	declType := declaredTypeOf(decl)
	if declType == "" {
		return
	}
	init := initializerOf(decl)
	if init.IsNil() {
		return
	}
	initType := ctx.Model.GetExpressionType(init)
	if initType == "" || initType == "Variant" {
		return
	}
	if !ctx.Model.AreTypesCompatible(initType, declType) {
		ctx.emit(gddiag.InvalidAssignment, init,
			"cannot assign "+initType+" to a variable declared "+declType)
	}
}

func declaredTypeOf(decl gdast.Node) string {
	for _, c := range decl.ChildNodes() {
		if c.Kind() == gdast.TypeNode {
			if name := typeNameToken(c); name != "" {
				return name
			}
		}
	}
	return ""
}

// typeNameToken returns the type-name token of a TypeNode — the
// Identifier it annotates with, or the `void` keyword — skipping the
// leading `:` (variable/parameter annotations) or `->` (method return
// types) that share the same node.
func typeNameToken(n gdast.Node) string {
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Identifier {
			return tok.Text()
		}
		if tok.Kind() == gdtoken.Keyword && tok.Text() == "void" {
			return tok.Text()
		}
	}
	return ""
}

func initializerOf(decl gdast.Node) gdast.Node {
	for _, c := range decl.ChildNodes() {
		switch c.Kind() {
		case gdast.TypeNode, gdast.MethodDeclaration:
			continue
		default:
			return c
		}
	}
	return gdast.Node{}
}

// checkReturn validates a return expression against the enclosing
// method's declared return type, if any (spec §4.6 "return-type
// compatibility per enclosing function").
func (v typeValidator) checkReturn(ctx *Context, ret gdast.Node) {
	method, ok := enclosingMethodDecl(ret)
	if !ok {
		return
	}
	retType := methodReturnType(method)
	if retType == "" || retType == "void" {
		return
	}
	children := ret.ChildNodes()
	if len(children) == 0 {
		return
	}
	exprType := ctx.Model.GetExpressionType(children[0])
	if exprType == "" || exprType == "Variant" {
		return
	}
	if !ctx.Model.AreTypesCompatible(exprType, retType) {
		ctx.emit(gddiag.IncompatibleReturnType, children[0],
			"returns "+exprType+", function declared to return "+retType)
	}
}

func methodReturnType(method gdast.Node) string {
	for _, c := range method.ChildNodes() {
		if c.Kind() == gdast.TypeNode {
			return typeNameToken(c)
		}
	}
	return ""
}

func (v typeValidator) checkAwait(ctx *Context, await gdast.Node) {
	children := await.ChildNodes()
	if len(children) == 0 {
		return
	}
	inner := children[0]
	switch inner.Kind() {
	case gdast.NumberExpression, gdast.StringExpression, gdast.BoolExpression,
		gdast.NullExpression, gdast.ArrayInitializer, gdast.DictionaryInitializer:
		ctx.emit(gddiag.AwaitOnNonAwaitable, await, "await on a literal, which never suspends")
	}
}
