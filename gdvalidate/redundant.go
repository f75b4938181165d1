package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdtoken"
)

// redundantGuardValidator implements spec §4.6's "Redundant guard
// validator": GD7010-GD7014. Flow-derived facts are queried at the
// condition's own position — which the flow engine's nearestStatement
// climbs up to the enclosing statement for, i.e. the state entering the
// if/while, not the branch's own narrowing of itself (spec §4.6 "query
// the flow state at the parent block").
type redundantGuardValidator struct{}

func (redundantGuardValidator) Name() string { return "redundant_guard" }

func (v redundantGuardValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.TypeCheckExpression:
			v.checkTypeCheck(ctx, n)
		case gdast.CallExpression:
			v.checkCapability(ctx, n)
		case gdast.DualOperatorExpression:
			v.checkNullCheck(ctx, n)
		case gdast.IfStatement:
			v.checkTruthinessConditions(ctx, ifConditions(n))
		case gdast.WhileStatement:
			if cond := whileCondition(n); !cond.IsNil() {
				v.checkTruthinessConditions(ctx, []gdast.Node{cond})
			}
		}
	})
}

func (v redundantGuardValidator) checkTypeCheck(ctx *Context, n gdast.Node) {
	children := n.ChildNodes()
	if len(children) == 0 || children[0].Kind() != gdast.IdentifierExpression {
		return
	}
	name := identName(children[0])
	target := typeCheckTargetText(n)
	if name == "" || target == "" {
		return
	}
	if sym, ok := ctx.Model.FindSymbol(name); ok && sym.DeclaredType == target {
		ctx.emit(gddiag.RedundantTypeCheckDeclared, n,
			"variable "+name+" is already declared "+target+"; this check always succeeds")
		return
	}
	fv := ctx.Model.GetFlowVariableType(name, n)
	if fv != nil && fv.IsNarrowed && fv.EffectiveType() == target {
		ctx.emit(gddiag.RedundantTypeCheckNarrowed, n,
			"variable "+name+" is already narrowed to "+target+" in an outer scope")
	}
}

func typeCheckTargetText(n gdast.Node) string {
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Identifier {
			return tok.Text()
		}
	}
	return ""
}

func (v redundantGuardValidator) checkCapability(ctx *Context, call gdast.Node) {
	info, ok := decomposeCall(call)
	if !ok || info.IsBare || info.Receiver.IsNil() {
		return
	}
	if info.Name != "has_method" && info.Name != "has_signal" {
		return
	}
	if len(info.Args) != 1 || info.Args[0].Kind() != gdast.StringExpression {
		return
	}
	member := stringLiteralValue(info.Args[0])
	baseType := ctx.Model.GetExpressionType(info.Receiver)
	if baseType == "" || baseType == "Variant" || ctx.Model.Runtime == nil {
		return
	}
	if info.Name == "has_method" {
		if m, ok := ctx.Model.Runtime.GetMember(baseType, member); ok && m.Kind == gdprovider.MemberMethod {
			ctx.emit(gddiag.RedundantCapabilityCheck, call,
				baseType+" is statically known to have method "+member)
		}
		return
	}
	if _, ok := ctx.Model.Runtime.GetSignal(baseType, member); ok {
		ctx.emit(gddiag.RedundantCapabilityCheck, call,
			baseType+" is statically known to have signal "+member)
	}
}

// neverNullValueTypes are value (non-reference) types that can never
// hold null, making an `== null`/`!= null` check against one redundant
// (spec §4.6 "null check on a never-null type").
var neverNullValueTypes = map[string]bool{
	"int": true, "float": true, "bool": true, "String": true,
	"StringName": true, "NodePath": true, "Vector2": true,
	"Vector3": true, "Color": true,
}

func (v redundantGuardValidator) checkNullCheck(ctx *Context, n gdast.Node) {
	op := operatorText(n)
	if op != "==" && op != "!=" {
		return
	}
	children := n.ChildNodes()
	if len(children) != 2 {
		return
	}
	var other gdast.Node
	sawNull := false
	for _, c := range children {
		if c.Kind() == gdast.NullExpression {
			sawNull = true
			continue
		}
		other = c
	}
	if !sawNull || other.IsNil() {
		return
	}
	if other.Kind() == gdast.SelfExpression {
		ctx.emit(gddiag.RedundantNullCheck, n, "self/super is never null")
		return
	}
	if other.Kind() != gdast.IdentifierExpression {
		return
	}
	name := identName(other)
	sym, ok := ctx.Model.FindSymbol(name)
	if !ok || sym.DeclaredType == "" {
		return
	}
	if neverNullValueTypes[sym.DeclaredType] {
		ctx.emit(gddiag.RedundantNullCheck, n,
			sym.DeclaredType+" is a value type and can never be null")
	}
}

// falsyCapableTypes are types whose zero/empty value is falsy even when
// the value itself is guaranteed non-null (an empty Array is still
// falsy); everything else (object references) is truthy as soon as it
// is known non-null (spec §4.6 "truthiness on a guaranteed-non-null
// non-zero type").
var falsyCapableTypes = map[string]bool{
	"int": true, "float": true, "bool": true, "String": true,
	"Array": true, "Dictionary": true, "Variant": true,
}

func (v redundantGuardValidator) checkTruthinessConditions(ctx *Context, conds []gdast.Node) {
	for _, cond := range conds {
		if cond.Kind() != gdast.IdentifierExpression {
			continue
		}
		name := identName(cond)
		if name == "" {
			continue
		}
		fv := ctx.Model.GetFlowVariableType(name, cond)
		if fv == nil || !fv.IsGuaranteedNonNull {
			continue
		}
		t := fv.EffectiveType()
		if t == "" || falsyCapableTypes[t] {
			continue
		}
		ctx.emit(gddiag.RedundantTruthinessCheck, cond,
			name+" is guaranteed non-null and never falsy as "+t)
	}
}

func ifConditions(ifStmt gdast.Node) []gdast.Node {
	var out []gdast.Node
	for _, branch := range ifStmt.ChildNodes() {
		if branch.Kind() != gdast.IfBranch {
			continue
		}
		for _, c := range branch.ChildNodes() {
			if c.Kind() == gdast.Block {
				continue
			}
			out = append(out, c)
			break
		}
	}
	return out
}

func whileCondition(stmt gdast.Node) gdast.Node {
	for _, c := range stmt.ChildNodes() {
		if c.Kind() != gdast.Block {
			return c
		}
	}
	return gdast.Node{}
}
