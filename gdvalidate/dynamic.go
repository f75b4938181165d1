package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdprovider"
)

// dynamicCallValidator implements spec §4.6's "Dynamic call validator":
// for a static-string member-name argument to call/callv/get/set, checks
// the member exists and has the expected kind on the caller's static
// type. Dictionary.get/set use a different signature entirely (key
// lookup, not member lookup) and are skipped.
type dynamicCallValidator struct{}

func (dynamicCallValidator) Name() string { return "dynamic_call" }

func (v dynamicCallValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.CallExpression {
			return
		}
		info, ok := decomposeCall(n)
		if !ok || info.IsBare || info.Receiver.IsNil() {
			return
		}
		switch info.Name {
		case "call", "callv":
			v.checkMember(ctx, n, info, gdprovider.MemberMethod, gddiag.DynamicMethodNotFound)
		case "get", "set":
			v.checkMember(ctx, n, info, gdprovider.MemberProperty, gddiag.DynamicPropertyNotFound)
		}
	})
}

func (v dynamicCallValidator) checkMember(ctx *Context, n gdast.Node, info calleeInfo, wantKind gdprovider.MemberKind, code gddiag.Code) {
	if len(info.Args) == 0 || info.Args[0].Kind() != gdast.StringExpression {
		return
	}
	baseType := ctx.Model.GetExpressionType(info.Receiver)
	if baseType == "" || baseType == "Variant" || baseType == "Dictionary" {
		return
	}
	if ctx.Model.Runtime == nil {
		return
	}
	member := stringLiteralValue(info.Args[0])
	if member == "" {
		return
	}
	m, ok := ctx.Model.Runtime.GetMember(baseType, member)
	if !ok {
		ctx.emit(code, n, baseType+" has no member named "+member)
		return
	}
	if m.Kind != gdprovider.MemberUnknown && m.Kind != wantKind {
		ctx.emit(code, n, member+" on "+baseType+" is not a "+memberKindLabel(wantKind))
	}
}

func memberKindLabel(k gdprovider.MemberKind) string {
	if k == gdprovider.MemberMethod {
		return "method"
	}
	return "property"
}
