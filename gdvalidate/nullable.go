package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/gdsym"
	"github.com/dekarrin/gdlint/internal/config"
)

// nullableAccessValidator implements spec §4.6's "Nullable access
// validator": flags a property access, method call, or indexer access
// performed on a value the flow engine cannot prove non-null, gated by
// the configured strictness tier and the three suppression rules (a)
// guard narrowing (already folded into the flow state itself), (b)
// onready/lifecycle safety, (c) caller-side safety analysis.
//
// Receivers are restricted to bare identifiers; a chained access like
// `a.b.c()` only ever reports on `a`, since the flow engine tracks
// nullability per-variable, not per-subexpression (documented scope
// decision, DESIGN.md).
type nullableAccessValidator struct{}

func (nullableAccessValidator) Name() string { return "nullable_access" }

func (v nullableAccessValidator) Run(ctx *Context) {
	if ctx.Config.NullStrictness == config.NullOff {
		return
	}
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.MemberOperatorExpression:
			if isCallCallee(n) {
				return
			}
			children := n.ChildNodes()
			if len(children) != 1 {
				return
			}
			v.check(ctx, n, children[0], gddiag.PotentiallyNullAccess,
				"access to ."+lastIdentText(n)+" on a potentially-null value")
		case gdast.CallExpression:
			info, ok := decomposeCall(n)
			if !ok || info.IsBare || info.Receiver.IsNil() {
				return
			}
			v.check(ctx, n, info.Receiver, gddiag.PotentiallyNullMethodCall,
				"call to "+info.Name+"() on a potentially-null value")
		case gdast.IndexerExpression:
			children := n.ChildNodes()
			if len(children) != 2 {
				return
			}
			v.check(ctx, n, children[0], gddiag.PotentiallyNullIndexer,
				"indexing a potentially-null value")
		}
	})
}

func (v nullableAccessValidator) check(ctx *Context, n, recv gdast.Node, code gddiag.Code, message string) {
	if recv.IsNil() || recv.Kind() != gdast.IdentifierExpression {
		return
	}
	name := identName(recv)
	if name == "" || !ctx.Model.IsVariablePotentiallyNull(name, n) {
		return
	}
	if v.suppressedByLifecycle(ctx, name, n) {
		return
	}
	if v.suppressedByCallerSafety(ctx, name, n) {
		return
	}
	if !v.passesStrictness(ctx, name, n) {
		return
	}
	if ctx.Config.NullStrictness == config.NullError {
		ctx.emitSeverity(code, n, message, gddiag.Error)
		return
	}
	ctx.emit(code, n, message)
}

// passesStrictness applies the four-tier strictness gate (spec §4.6):
// Strict/Error report every possibly-null access, Normal additionally
// skips untyped (duck) parameters, Relaxed reports only variables
// explicitly declared `= null`.
func (v nullableAccessValidator) passesStrictness(ctx *Context, name string, at gdast.Node) bool {
	switch ctx.Config.NullStrictness {
	case config.NullStrict, config.NullError:
		return true
	case config.NullRelaxed:
		return v.isExplicitlyNullDeclared(ctx, name)
	default: // Normal
		return !v.isUntypedParameter(ctx, name, at)
	}
}

func (v nullableAccessValidator) isUntypedParameter(ctx *Context, name string, at gdast.Node) bool {
	sym, ok := ctx.Model.FM.ScopeAt(at).Lookup(name)
	if !ok || sym.Kind != gdsym.KindParameter {
		return false
	}
	return sym.DeclaredType == ""
}

func (v nullableAccessValidator) isExplicitlyNullDeclared(ctx *Context, name string) bool {
	sym, ok := ctx.Model.FindSymbol(name)
	if !ok {
		return false
	}
	return initializerOf(sym.Decl).Kind() == gdast.NullExpression
}

// suppressedByLifecycle implements suppression rule (b): an @onready
// variable accessed inside a lifecycle method guaranteed to run after
// _ready, or inside an `if is_node_ready(): ...` guard.
func (v nullableAccessValidator) suppressedByLifecycle(ctx *Context, name string, at gdast.Node) bool {
	if !ctx.Model.IsOnreadyVariable(name) {
		return false
	}
	method, ok := enclosingMethodDecl(at)
	if !ok {
		return false
	}
	if ctx.Model.GetMethodOnreadySafety(methodName(method)) == gdsem.Safe {
		return true
	}
	return isInsideIsNodeReadyGuard(at)
}

func isInsideIsNodeReadyGuard(n gdast.Node) bool {
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
				if isIsNodeReadyCall(c) {
					return true
				}
				break
			}
		}
		cur = p
	}
}

func isIsNodeReadyCall(cond gdast.Node) bool {
	if cond.Kind() != gdast.CallExpression {
		return false
	}
	info, ok := decomposeCall(cond)
	return ok && info.IsBare && info.Name == "is_node_ready"
}

// suppressedByCallerSafety implements suppression rule (c): a
// parameter is safe if every local call site of the enclosing method
// passes a provably non-null argument in that position. This is a
// single-file best-effort analysis (spec §9 degrades gracefully when a
// full cross-file call graph isn't available); a method never called
// locally is conservatively treated as unsafe.
func (v nullableAccessValidator) suppressedByCallerSafety(ctx *Context, name string, at gdast.Node) bool {
	method, ok := enclosingMethodDecl(at)
	if !ok {
		return false
	}
	paramIdx, ok := paramIndexOf(method, name)
	if !ok {
		return false
	}
	callee := methodName(method)
	if callee == "" {
		return false
	}
	var sites []gdast.Node
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.CallExpression {
			return
		}
		info, ok := decomposeCall(n)
		if !ok || !info.IsBare || info.Name != callee {
			return
		}
		sites = append(sites, n)
	})
	if len(sites) == 0 {
		return false
	}
	for _, call := range sites {
		info, _ := decomposeCall(call)
		if paramIdx >= len(info.Args) {
			return false
		}
		arg := info.Args[paramIdx]
		if arg.Kind() == gdast.NullExpression {
			return false
		}
		if arg.Kind() == gdast.IdentifierExpression && ctx.Model.IsVariablePotentiallyNull(identName(arg), call) {
			return false
		}
	}
	return true
}

func paramIndexOf(method gdast.Node, name string) (int, bool) {
	for _, c := range method.ChildNodes() {
		if c.Kind() != gdast.ParameterList {
			continue
		}
		for i, p := range c.ChildNodes() {
			if variableName(p) == name {
				return i, true
			}
		}
	}
	return 0, false
}
