package gdvalidate

import (
	"strconv"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// argumentTypeValidator checks call-site argument count and, where the
// callee's parameter types are known, argument type compatibility
// (spec §4.6 "Argument type validator").
type argumentTypeValidator struct{}

func (argumentTypeValidator) Name() string { return "argument_type" }

func (v argumentTypeValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.CallExpression {
			return
		}
		info, ok := decomposeCall(n)
		if !ok {
			return
		}
		if !info.IsBare && !isSuperExpr(info.Receiver) && info.Receiver.Kind() != gdast.SelfExpression {
			baseType := ctx.Model.GetExpressionType(info.Receiver)
			v.checkAgainstRuntime(ctx, n, baseType, info)
			return
		}
		v.checkAgainstDeclaredMethod(ctx, n, info)
	})
}

func (v argumentTypeValidator) checkAgainstRuntime(ctx *Context, call gdast.Node, baseType string, info calleeInfo) {
	if baseType == "" || baseType == "Variant" || ctx.Model.Runtime == nil {
		return
	}
	member, ok := ctx.Model.Runtime.GetMember(baseType, info.Name)
	if !ok {
		return
	}
	v.checkArity(ctx, call, len(info.Args), member.MinArgs, member.MaxArgs, member.IsVararg)
	v.checkParamTypes(ctx, info.Args, member.ParameterTypes)
}

func (v argumentTypeValidator) checkAgainstDeclaredMethod(ctx *Context, call gdast.Node, info calleeInfo) {
	sym, ok := ctx.Model.FindSymbol(info.Name)
	if !ok || sym.Decl.Kind() != gdast.MethodDeclaration {
		return
	}
	params := declaredParamTypes(sym.Decl)
	min, max := arityOf(sym.Decl)
	v.checkArity(ctx, call, len(info.Args), min, max, false)
	v.checkParamTypes(ctx, info.Args, params)
}

func (v argumentTypeValidator) checkArity(ctx *Context, call gdast.Node, got, min, max int, vararg bool) {
	if vararg || max < 0 {
		if got < min {
			ctx.emit(gddiag.WrongArgumentCount, call, gddiag.WrongArgumentCountMessage(min, got))
		}
		return
	}
	if got < min || got > max {
		expected := min
		if got > max {
			expected = max
		}
		ctx.emit(gddiag.WrongArgumentCount, call, gddiag.WrongArgumentCountMessage(expected, got))
	}
}

func (v argumentTypeValidator) checkParamTypes(ctx *Context, args []gdast.Node, paramTypes []string) {
	for i, arg := range args {
		if i >= len(paramTypes) {
			return
		}
		want := paramTypes[i]
		if want == "" || want == "Variant" {
			continue
		}
		if arg.Kind() == gdast.NullExpression {
			continue // null is accepted for any reference-typed parameter
		}
		got := ctx.Model.GetExpressionType(arg)
		if got == "" || got == "Variant" {
			continue
		}
		if !ctx.Model.AreTypesCompatible(got, want) {
			ctx.emit(gddiag.ArgumentTypeMismatch, arg,
				"argument "+strconv.Itoa(i+1)+": expected "+want+", got "+got)
		}
	}
}

func declaredParamTypes(method gdast.Node) []string {
	var out []string
	for _, c := range method.ChildNodes() {
		if c.Kind() != gdast.ParameterList {
			continue
		}
		for _, p := range c.ChildNodes() {
			out = append(out, declaredTypeOf(p))
		}
	}
	return out
}

func arityOf(method gdast.Node) (min, max int) {
	for _, c := range method.ChildNodes() {
		if c.Kind() != gdast.ParameterList {
			continue
		}
		params := c.ChildNodes()
		max = len(params)
		min = 0
		for _, p := range params {
			if initializerOf(p).IsNil() {
				min++
			}
		}
		return min, max
	}
	return 0, 0
}
