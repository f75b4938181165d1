// Package gdvalidate implements the validator suite (component C7): one
// stateless visitor per concern, each walking the tree, consulting a
// gdsem.Model, and emitting gddiag.Diagnostics. Validators never share
// state and never depend on another validator's findings (spec §4.6
// "Visitors are independent and order-agnostic").
package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/gdtoken"
	"github.com/dekarrin/gdlint/internal/config"
)

// Context is the shared, read-only state every validator receives.
type Context struct {
	File      string
	Tree      *gdast.Tree
	Model     *gdsem.Model
	Config    *config.AnalyzerConfig
	Collector *gddiag.Collector
}

// emit records a diagnostic at n, resolving its severity through the
// config's override table.
func (ctx *Context) emit(code gddiag.Code, n gdast.Node, message string) {
	ctx.Collector.Add(gddiag.New(code, ctx.Config.SeverityFor(code), ctx.File, n, message))
}

// emitSeverity records a diagnostic at the given severity, bypassing
// the config's per-code override table. Used only by the nullable
// access validator's Error strictness tier, which promotes every
// nullable finding to Error regardless of the code's configured
// severity (spec §4.6 "Error (promote all to errors)").
func (ctx *Context) emitSeverity(code gddiag.Code, n gdast.Node, message string, sev gddiag.Severity) {
	ctx.Collector.Add(gddiag.New(code, sev, ctx.File, n, message))
}

// Validator is one C7 concern.
type Validator interface {
	Name() string
	Run(ctx *Context)
}

// methodName returns decl's declared name (the first direct Identifier
// token child), or "" if decl is not a well-formed MethodDeclaration.
func methodName(decl gdast.Node) string {
	for _, tok := range decl.ChildTokens() {
		if tok.Kind() == gdtoken.Identifier {
			return tok.Text()
		}
	}
	return ""
}

// variableName returns decl's declared name for a VariableDeclaration /
// ParameterDeclaration.
func variableName(decl gdast.Node) string {
	return methodName(decl)
}

// calleeInfo decomposes a CallExpression into its receiver expression
// (nil Node if the call is a bare identifier, e.g. `foo()`), member
// name, and argument nodes.
type calleeInfo struct {
	Receiver gdast.Node // zero Node for a bare-name call
	Name     string
	Args     []gdast.Node
	IsBare   bool
}

func decomposeCall(call gdast.Node) (calleeInfo, bool) {
	if call.Kind() != gdast.CallExpression {
		return calleeInfo{}, false
	}
	children := call.ChildNodes()
	if len(children) < 2 {
		return calleeInfo{}, false
	}
	callee, argList := children[0], children[1]
	info := calleeInfo{Args: argList.ChildNodes()}
	switch callee.Kind() {
	case gdast.IdentifierExpression:
		info.IsBare = true
		info.Name = identName(callee)
	case gdast.MemberOperatorExpression:
		mchildren := callee.ChildNodes()
		if len(mchildren) != 1 {
			return calleeInfo{}, false
		}
		info.Receiver = mchildren[0]
		info.Name = lastIdentText(callee)
	default:
		return calleeInfo{}, false
	}
	return info, true
}

func identName(expr gdast.Node) string {
	for _, tok := range expr.ChildTokens() {
		if tok.Kind() == gdtoken.Identifier {
			return tok.Text()
		}
	}
	return ""
}

// lastIdentText returns the text of the last direct Identifier token
// child of n — the member name in a MemberOperatorExpression, whose
// first child is the base expression and whose trailing token is the
// accessed name.
func lastIdentText(n gdast.Node) string {
	toks := n.ChildTokens()
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Kind() == gdtoken.Identifier ||
			(toks[i].Kind() == gdtoken.Keyword && (toks[i].Text() == "get" || toks[i].Text() == "set")) {
			return toks[i].Text()
		}
	}
	return ""
}

func isSelfOrSuper(expr gdast.Node) bool {
	if expr.Kind() != gdast.SelfExpression {
		return false
	}
	return true
}

// isSuperExpr reports whether expr is the `super` keyword specifically
// (SelfExpression covers both `self` and `super`; callers that must
// treat them differently check the token text).
func isSuperExpr(expr gdast.Node) bool {
	if expr.Kind() != gdast.SelfExpression {
		return false
	}
	for _, tok := range expr.ChildTokens() {
		if tok.Text() == "super" {
			return true
		}
	}
	return false
}

// walk calls visit for every node in tree's root subtree, depth-first,
// document order — the traversal every validator uses to find its
// nodes of interest.
func walk(root gdast.Node, visit func(gdast.Node)) {
	visit(root)
	for _, c := range root.ChildNodes() {
		walk(c, visit)
	}
}

// enclosingMethodDecl returns the nearest MethodDeclaration ancestor of
// n (not MethodExpression/lambda — callers that must also cross lambda
// boundaries use gdsem's enclosingMethod instead).
func enclosingMethodDecl(n gdast.Node) (gdast.Node, bool) {
	cur := n
	for {
		p, ok := cur.Parent()
		if !ok {
			return gdast.Node{}, false
		}
		if p.Kind() == gdast.MethodDeclaration {
			return p, true
		}
		cur = p
	}
}

// isWithinClassInitializer reports whether n sits in a class member's
// initializer expression rather than inside any method body.
func isWithinClassInitializer(n gdast.Node) bool {
	_, ok := enclosingMethodDecl(n)
	return !ok
}

// objectLevelMethods is the closed set of base Object methods the
// member access validator never flags as unguarded, since every
// GDScript value (including Variant-typed ones) answers to them.
var objectLevelMethods = map[string]bool{
	"has_method": true, "has_signal": true, "connect": true,
	"disconnect": true, "call": true, "callv": true, "call_deferred": true,
	"get": true, "set": true, "get_class": true, "is_class": true,
	"emit_signal": true, "notification": true, "free": true,
	"queue_free": true, "duplicate": true, "is_queued_for_deletion": true,
}
