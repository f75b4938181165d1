package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsym"
)

// semanticSignalValidator checks emit_signal(name, ...) call sites
// against the signal's declared parameter types, resolving the signal
// first in the current class, then via the runtime provider's
// inherited signals (spec §4.6 "Semantic signal validator").
type semanticSignalValidator struct{}

func (semanticSignalValidator) Name() string { return "semantic_signal" }

func (v semanticSignalValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.CallExpression {
			return
		}
		info, ok := decomposeCall(n)
		if !ok || !info.IsBare || info.Name != "emit_signal" {
			return
		}
		if len(info.Args) == 0 || info.Args[0].Kind() != gdast.StringExpression {
			return
		}
		signalName := stringLiteralValue(info.Args[0])
		params := v.resolveSignalParams(ctx, signalName)
		if params == nil {
			v.checkUnguarded(ctx, n, signalName)
			return
		}
		v.checkArgs(ctx, n, info.Args[1:], params)
	})
}

// checkUnguarded flags an emit_signal call whose signal name resolves
// neither locally nor through the runtime provider, unless the call
// sits inside a `has_signal(name)` guard — the signal-access counterpart
// of memberAccessValidator's UnguardedMethodCall/UnguardedPropertyAccess.
func (v semanticSignalValidator) checkUnguarded(ctx *Context, call gdast.Node, signalName string) {
	if signalName == "" || ctx.Model.Runtime == nil {
		return
	}
	if isInsideHasSignalGuard(call, signalName) {
		return
	}
	ctx.emit(gddiag.UnguardedSignalAccess, call,
		"signal "+signalName+" is not statically verified; add a 'has_signal' guard")
}

func isInsideHasSignalGuard(n gdast.Node, signalName string) bool {
	cur := n
	for {
		p, ok := cur.Parent()
		if !ok {
			return false
		}
		if p.Kind() == gdast.IfBranch {
			for _, c := range p.ChildNodes() {
				if c.Kind() == gdast.Block {
					break
				}
				if isHasSignalCall(c, signalName) {
					return true
				}
				break
			}
		}
		cur = p
	}
}

func isHasSignalCall(cond gdast.Node, signalName string) bool {
	if cond.Kind() != gdast.CallExpression {
		return false
	}
	info, ok := decomposeCall(cond)
	if !ok || !info.IsBare || info.Name != "has_signal" || len(info.Args) == 0 {
		return false
	}
	return stringLiteralValue(info.Args[0]) == signalName
}

func stringLiteralValue(expr gdast.Node) string {
	tok, ok := expr.FirstToken()
	if !ok {
		return ""
	}
	text := tok.Text()
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

func (v semanticSignalValidator) resolveSignalParams(ctx *Context, name string) []string {
	sym, ok := ctx.Model.FindSymbol(name)
	if ok && sym.Kind == gdsym.KindSignal {
		return signalParamTypes(sym.Decl)
	}
	if ctx.Model.Runtime == nil {
		return nil
	}
	className := currentClassName(ctx)
	if className == "" {
		return nil
	}
	info, ok := ctx.Model.Runtime.GetSignal(className, name)
	if !ok {
		return nil
	}
	return info.ParameterTypes
}

// currentClassName returns the file's `class_name` declaration, if any
// (a file with none has no global-class identity the runtime provider
// can look up by name).
func currentClassName(ctx *Context) string {
	for _, member := range ctx.Tree.Root().ChildNodes() {
		if member.Kind() != gdast.TypeNode {
			continue
		}
		toks := member.ChildTokens()
		if len(toks) < 2 || toks[0].Text() != "class_name" {
			continue
		}
		return identName(member)
	}
	return ""
}

func signalParamTypes(decl gdast.Node) []string {
	var out []string
	for _, c := range decl.ChildNodes() {
		if c.Kind() != gdast.ParameterList {
			continue
		}
		for _, p := range c.ChildNodes() {
			out = append(out, declaredTypeOf(p))
		}
	}
	return out
}

func (v semanticSignalValidator) checkArgs(ctx *Context, call gdast.Node, args []gdast.Node, params []string) {
	for i, arg := range args {
		if i >= len(params) {
			return
		}
		want := params[i]
		if want == "" || want == "Variant" {
			continue
		}
		got := ctx.Model.GetExpressionType(arg)
		if got == "" || got == "Variant" {
			continue
		}
		if !ctx.Model.AreTypesCompatible(got, want) {
			ctx.emit(gddiag.EmitSignalTypeMismatch, arg,
				"signal argument "+want+" expected, got "+got)
		}
	}
}
