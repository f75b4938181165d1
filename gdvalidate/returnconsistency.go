package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// returnConsistencyValidator implements spec §4.6's "Return consistency"
// concern: GD3024 (MissingReturnType) when a method with at least one
// value-returning statement declares no return type, and GD3023
// (InconsistentReturnType) when, absent a declared return type, two
// return statements infer mutually incompatible types.
type returnConsistencyValidator struct{}

func (returnConsistencyValidator) Name() string { return "return_consistency" }

func (v returnConsistencyValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.MethodDeclaration {
			return
		}
		v.checkMethod(ctx, n)
	})
}

func (v returnConsistencyValidator) checkMethod(ctx *Context, method gdast.Node) {
	var valueReturns []gdast.Node
	collectReturns(method, &valueReturns)
	if len(valueReturns) == 0 {
		return
	}
	declared := methodReturnType(method)
	if declared != "" {
		return
	}
	ctx.emit(gddiag.MissingReturnType, method,
		"function returns a value but declares no return type")

	var firstType string
	for i, expr := range valueReturns {
		t := ctx.Model.GetExpressionType(expr)
		if t == "" || t == "Variant" {
			continue
		}
		if i == 0 || firstType == "" {
			firstType = t
			continue
		}
		if t != firstType && !ctx.Model.AreTypesCompatible(t, firstType) && !ctx.Model.AreTypesCompatible(firstType, t) {
			ctx.emit(gddiag.InconsistentReturnType, expr,
				"returns "+t+" here but "+firstType+" elsewhere in the same function")
		}
	}
}

// collectReturns gathers the value-expression of every ReturnStatement
// belonging to method itself, not descending into a nested lambda's own
// return statements (which belong to that lambda's separate return-type
// context, spec §4.6 "methods and lambdas are a stack of return-type
// contexts").
func collectReturns(n gdast.Node, out *[]gdast.Node) {
	for _, c := range n.ChildNodes() {
		switch c.Kind() {
		case gdast.MethodExpression:
			continue
		case gdast.ReturnStatement:
			if children := c.ChildNodes(); len(children) > 0 {
				*out = append(*out, children[0])
			}
		default:
			collectReturns(c, out)
		}
	}
}
