package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdprovider"
)

// memberAccessValidator implements the confidence-tiered property/method
// lookup described in spec §4.4/§4.6: Strict confidence with a missing
// member is an error, NameMatch confidence is an unguarded-access
// warning, everything else is silent (absence of evidence is not
// evidence of absence).
type memberAccessValidator struct{}

func (memberAccessValidator) Name() string { return "member_access" }

func (v memberAccessValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.CallExpression:
			v.checkCall(ctx, n)
		case gdast.MemberOperatorExpression:
			if isCallCallee(n) {
				return
			}
			v.checkProperty(ctx, n)
		}
	})
}

// isCallCallee reports whether n (a MemberOperatorExpression) is itself
// the callee of a CallExpression, in which case checkCall already
// handles it and checkProperty must not double-report.
func isCallCallee(n gdast.Node) bool {
	p, ok := n.Parent()
	if !ok || p.Kind() != gdast.CallExpression {
		return false
	}
	children := p.ChildNodes()
	return len(children) > 0 && children[0].Equal(n)
}

func (v memberAccessValidator) checkCall(ctx *Context, call gdast.Node) {
	info, ok := decomposeCall(call)
	if !ok || info.IsBare || info.Receiver.IsNil() {
		return
	}
	if isSuperExpr(info.Receiver) || info.Receiver.Kind() == gdast.SelfExpression {
		return
	}
	if objectLevelMethods[info.Name] {
		return
	}
	baseType := ctx.Model.GetExpressionType(info.Receiver)
	confidence := memberConfidence(ctx, info.Receiver, baseType, info.Name)
	switch confidence {
	case confStrict:
		member, ok := ctx.Model.Runtime.GetMember(baseType, info.Name)
		if !ok {
			ctx.emit(gddiag.MethodNotFound, call, info.Name+" is not a member of "+baseType)
			return
		}
		if member.Kind != gdprovider.MemberUnknown && member.Kind != gdprovider.MemberMethod {
			ctx.emit(gddiag.NotCallable, call, info.Name+" on "+baseType+" is not callable")
		}
	case confNameMatch:
		ctx.emit(gddiag.UnguardedMethodCall, call,
			"call to "+info.Name+" is not statically verified; add an 'is' or 'has_method' guard")
	}
}

type confidenceTier int

const (
	confUnknown confidenceTier = iota
	confNameMatch
	confPotential
	confStrict
)

// memberConfidence grades how sure we are that name is a real member of
// whatever recv evaluates to (spec §4.4's confidence ladder).
func memberConfidence(ctx *Context, recv gdast.Node, baseType, name string) confidenceTier {
	if baseType == "" || baseType == "Variant" {
		return narrowedOrDuckConfidence(ctx, recv, name)
	}
	if ctx.Model.Runtime == nil {
		return confUnknown
	}
	if ctx.Model.Runtime.IsKnownType(baseType) {
		return confStrict
	}
	return confNameMatch
}

func narrowedOrDuckConfidence(ctx *Context, recv gdast.Node, name string) confidenceTier {
	if recv.Kind() != gdast.IdentifierExpression {
		return confUnknown
	}
	varName := identName(recv)
	if uv := ctx.Model.GetUnionType(varName, recv); uv != nil && uv.Len() == 1 && ctx.Model.Runtime != nil {
		if _, ok := ctx.Model.Runtime.GetMember(uv.Names()[0], name); ok {
			return confPotential
		}
	}
	fv := ctx.Model.GetFlowVariableType(varName, recv)
	if fv != nil && fv.Duck != nil {
		if fv.Duck.HasMethod(name, 0) {
			return confPotential
		}
		if _, ok := fv.Duck.Properties[name]; ok {
			return confPotential
		}
	}
	return confNameMatch
}

func (v memberAccessValidator) checkProperty(ctx *Context, expr gdast.Node) {
	children := expr.ChildNodes()
	if len(children) != 1 {
		return
	}
	recv := children[0]
	if isSuperExpr(recv) || recv.Kind() == gdast.SelfExpression {
		return
	}
	name := lastIdentText(expr)
	if name == "" {
		return
	}
	baseType := ctx.Model.GetExpressionType(recv)
	switch memberConfidence(ctx, recv, baseType, name) {
	case confStrict:
		if _, ok := ctx.Model.Runtime.GetMember(baseType, name); !ok {
			ctx.emit(gddiag.PropertyNotFound, expr, name+" is not a member of "+baseType)
		}
	case confNameMatch:
		ctx.emit(gddiag.UnguardedPropertyAccess, expr,
			"access to ."+name+" is not statically verified")
	}
}
