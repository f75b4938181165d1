package gdtype

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdtoken"
)

// InferExpressionType is the get_expression_type primitive (spec
// §4.4). state is the flow state in effect at expr's position — pass
// nil when no flow context applies (e.g. inferring a class-level
// initializer, which has no per-method flow state).
func (e *Engine) InferExpressionType(expr gdast.Node, state FlowState) string {
	if expr.IsNil() {
		return "Variant"
	}
	switch expr.Kind() {
	case gdast.NumberExpression:
		return inferNumberType(expr)
	case gdast.StringExpression:
		return "String"
	case gdast.BoolExpression:
		return "bool"
	case gdast.NullExpression:
		return "null"
	case gdast.SelfExpression:
		return "Variant" // the concrete class name is substituted by gdsem, which knows the file's class
	case gdast.ArrayInitializer:
		return "Array"
	case gdast.DictionaryInitializer:
		return "Dictionary"
	case gdast.CastExpression:
		return castTarget(expr)
	case gdast.TypeCheckExpression:
		return "bool"
	case gdast.AwaitExpression:
		inner := firstChild(expr)
		if inner.IsNil() {
			return "Variant"
		}
		return e.InferExpressionType(inner, state)
	case gdast.IdentifierExpression:
		return e.inferIdentifier(expr, state)
	case gdast.CallExpression:
		return e.inferCall(expr, state)
	case gdast.MemberOperatorExpression:
		return e.inferMember(expr, state)
	case gdast.IndexerExpression:
		return e.inferIndexer(expr, state)
	case gdast.DualOperatorExpression:
		return e.inferDualOperator(expr, state)
	case gdast.SingleOperatorExpression:
		if isNotOperator(expr) {
			return "bool"
		}
		inner := firstChild(expr)
		return e.InferExpressionType(inner, state)
	case gdast.TernaryExpression:
		return e.inferTernary(expr, state)
	default:
		return "Variant"
	}
}

func inferNumberType(expr gdast.Node) string {
	for _, tok := range expr.ChildTokens() {
		switch tok.Kind() {
		case gdtoken.NumberFloat:
			return "float"
		case gdtoken.NumberInt, gdtoken.NumberHex, gdtoken.NumberBinary:
			return "int"
		}
	}
	return "Variant"
}

func castTarget(expr gdast.Node) string {
	for _, tok := range expr.ChildTokens() {
		if tok.Kind() == gdtoken.Identifier {
			return tok.Text()
		}
	}
	return "Variant"
}

func (e *Engine) inferIdentifier(expr gdast.Node, state FlowState) string {
	name := identName(expr)
	if name == "self" {
		return "Variant"
	}
	if state != nil {
		if v, ok := state[name]; ok {
			return v.EffectiveType()
		}
	}
	return "Variant"
}

func (e *Engine) inferCall(expr gdast.Node, state FlowState) string {
	children := expr.ChildNodes()
	if len(children) == 0 {
		return "Variant"
	}
	callee := children[0]
	switch callee.Kind() {
	case gdast.IdentifierExpression:
		name := identName(callee)
		if name == "preload" {
			return "Resource" // the project model refines this to the concrete class at gdsem layer
		}
		return "Variant"
	case gdast.MemberOperatorExpression:
		return e.inferMemberCallReturn(callee, state)
	default:
		return "Variant"
	}
}

func (e *Engine) inferMemberCallReturn(member gdast.Node, state FlowState) string {
	base := firstChild(member)
	baseType := e.InferExpressionType(base, state)
	name := memberName(member)
	if e.Runtime == nil {
		return "Variant"
	}
	info, ok := e.Runtime.GetMember(baseType, name)
	if !ok || info.ReturnType == "" {
		return "Variant"
	}
	return info.ReturnType
}

func (e *Engine) inferMember(expr gdast.Node, state FlowState) string {
	base := firstChild(expr)
	baseType := e.InferExpressionType(base, state)
	name := memberName(expr)
	if e.Runtime == nil {
		return "Variant"
	}
	info, ok := e.Runtime.GetMember(baseType, name)
	if !ok || info.ReturnType == "" {
		return "Variant"
	}
	return info.ReturnType
}

func (e *Engine) inferIndexer(expr gdast.Node, state FlowState) string {
	// element type of a typed container is not tracked by this
	// reference engine's UnionType (which carries only the container's
	// own name, e.g. "Array" rather than "Array[int]"); Variant is the
	// conservative, spec-sanctioned fallback (§4.4 "Variant otherwise").
	return "Variant"
}

func (e *Engine) inferDualOperator(expr gdast.Node, state FlowState) string {
	op := dualOperator(expr)
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "and", "or", "&&", "||", "in", "is":
		return "bool"
	}
	children := expr.ChildNodes()
	if len(children) != 2 {
		return "Variant"
	}
	lt := e.InferExpressionType(children[0], state)
	rt := e.InferExpressionType(children[1], state)
	if lt == rt {
		return lt
	}
	if isNumeric(lt) && isNumeric(rt) {
		return "float" // int op float widens to float
	}
	return "Variant"
}

func (e *Engine) inferTernary(expr gdast.Node, state FlowState) string {
	children := expr.ChildNodes()
	if len(children) < 1 {
		return "Variant"
	}
	trueType := e.InferExpressionType(children[0], state)
	if len(children) < 3 {
		return trueType
	}
	falseType := e.InferExpressionType(children[2], state)
	if trueType == falseType {
		return trueType
	}
	return "Variant"
}

func isNumeric(t string) bool {
	return t == "int" || t == "float"
}
