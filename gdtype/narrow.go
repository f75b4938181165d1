package gdtype

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdtoken"
)

// narrow implements the per-condition narrowing table from spec §4.4,
// returning the flow state for the true branch and the false branch of
// cond, both independently cloned from state.
func narrow(cond gdast.Node, state FlowState) (trueState, falseState FlowState) {
	switch cond.Kind() {
	case gdast.TypeCheckExpression:
		return narrowIsCheck(cond, state)
	case gdast.SingleOperatorExpression:
		if isNotOperator(cond) {
			inner := firstChild(cond)
			t, f := narrow(inner, state)
			return f, t // `not E` inverts E's effect on both branches
		}
	case gdast.DualOperatorExpression:
		if op := dualOperator(cond); op == "and" {
			return narrowAnd(cond, state)
		} else if op == "or" {
			return narrowOr(cond, state)
		} else if op == "!=" || op == "==" {
			if t, f, ok := narrowNullComparison(cond, state); ok {
				return t, f
			}
		}
	case gdast.CallExpression:
		if t, f, ok := narrowCall(cond, state); ok {
			return t, f
		}
	case gdast.IdentifierExpression:
		return narrowTruthiness(cond, state)
	}
	return state.Clone(), state.Clone()
}

func narrowIsCheck(cond gdast.Node, state FlowState) (FlowState, FlowState) {
	children := cond.ChildNodes()
	if len(children) == 0 || children[0].Kind() != gdast.IdentifierExpression {
		return state.Clone(), state.Clone()
	}
	name := identName(children[0])
	typeName := typeCheckTarget(cond)
	t := state.Clone()
	f := state.Clone()
	if v, ok := t[name]; ok && typeName != "" {
		t[name] = v.narrowTo(typeName)
	}
	return t, f
}

func narrowNullComparison(cond gdast.Node, state FlowState) (FlowState, FlowState, bool) {
	children := cond.ChildNodes()
	if len(children) != 2 {
		return nil, nil, false
	}
	lhs, rhs := children[0], children[1]
	var varExpr gdast.Node
	if lhs.Kind() == gdast.IdentifierExpression && rhs.Kind() == gdast.NullExpression {
		varExpr = lhs
	} else if rhs.Kind() == gdast.IdentifierExpression && lhs.Kind() == gdast.NullExpression {
		varExpr = rhs
	} else {
		return nil, nil, false
	}
	name := identName(varExpr)
	t := state.Clone()
	f := state.Clone()
	v, ok := t[name]
	if !ok {
		return t, f, true
	}
	if dualOperator(cond) == "!=" {
		// `x != null`: true branch non-null, false branch may-be-null
		t[name] = v.withNonNull(true)
		f[name] = v.withNonNull(false)
	} else {
		// `x == null`: true branch may-be-null, false branch non-null
		t[name] = v.withNonNull(false)
		f[name] = v.withNonNull(true)
	}
	return t, f, true
}

func narrowTruthiness(cond gdast.Node, state FlowState) (FlowState, FlowState) {
	name := identName(cond)
	t := state.Clone()
	f := state.Clone()
	if v, ok := t[name]; ok {
		t[name] = v.withNonNull(true)
	}
	return t, f
}

func narrowCall(cond gdast.Node, state FlowState) (FlowState, FlowState, bool) {
	children := cond.ChildNodes()
	if len(children) == 0 {
		return nil, nil, false
	}
	callee := children[0]

	if callee.Kind() == gdast.IdentifierExpression && identName(callee) == "is_instance_valid" {
		args := callArgs(cond)
		if len(args) != 1 || args[0].Kind() != gdast.IdentifierExpression {
			return nil, nil, false
		}
		name := identName(args[0])
		t := state.Clone()
		f := state.Clone()
		if v, ok := t[name]; ok {
			t[name] = v.withNonNull(true)
		}
		return t, f, true
	}

	if callee.Kind() == gdast.MemberOperatorExpression && memberName(callee) == "has_method" {
		base := firstChild(callee)
		if base.Kind() != gdast.IdentifierExpression {
			return nil, nil, false
		}
		name := identName(base)
		args := callArgs(cond)
		if len(args) != 1 || args[0].Kind() != gdast.StringExpression {
			return nil, nil, false
		}
		methodName := stringLiteralValue(args[0])
		t := state.Clone()
		f := state.Clone()
		if v, ok := t[name]; ok && v.Duck != nil {
			v.Duck.RequireMethod(methodName, -1)
		}
		return t, f, true
	}
	return nil, nil, false
}

func narrowAnd(cond gdast.Node, state FlowState) (FlowState, FlowState) {
	children := cond.ChildNodes()
	if len(children) != 2 {
		return state.Clone(), state.Clone()
	}
	aTrue, aFalse := narrow(children[0], state)
	bTrue, bFalse := narrow(children[1], aTrue)
	// true branch: A-true then B-true. false branch: join of A-false,
	// and (A-true-then-B-false).
	falseJoined := Join2(aFalse, bFalse)
	return bTrue, falseJoined
}

func narrowOr(cond gdast.Node, state FlowState) (FlowState, FlowState) {
	children := cond.ChildNodes()
	if len(children) != 2 {
		return state.Clone(), state.Clone()
	}
	aTrue, aFalse := narrow(children[0], state)
	bTrue, bFalse := narrow(children[1], aFalse)
	trueJoined := Join2(aTrue, bTrue)
	return trueJoined, bFalse
}

func isNotOperator(n gdast.Node) bool {
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Keyword && tok.Text() == "not" {
			return true
		}
	}
	return false
}

func dualOperator(n gdast.Node) string {
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Operator || tok.Kind() == gdtoken.Keyword {
			return tok.Text()
		}
	}
	return ""
}

func identName(identExpr gdast.Node) string {
	for _, tok := range identExpr.ChildTokens() {
		if isIdentifierTok(tok) {
			return tok.Text()
		}
	}
	return ""
}

func typeCheckTarget(n gdast.Node) string {
	for _, tok := range n.ChildTokens() {
		if isIdentifierTok(tok) {
			return tok.Text()
		}
	}
	return ""
}

func callArgs(call gdast.Node) []gdast.Node {
	children := call.ChildNodes()
	if len(children) < 2 {
		return nil
	}
	return children[1].ChildNodes()
}

func stringLiteralValue(strExpr gdast.Node) string {
	for _, tok := range strExpr.ChildTokens() {
		text := tok.Text()
		if len(text) >= 2 {
			return text[1 : len(text)-1]
		}
	}
	return ""
}
