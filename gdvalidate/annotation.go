package gdvalidate

import (
	"strings"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// annotationValidator implements spec §4.6's "annotation narrowing /
// redundancy, type widening, container specialization, parameter type
// hint" concerns: GD3022 (AnnotationWiderThanInferred), GD7022
// (RedundantAnnotation), GD3025 (ContainerMissingSpecialization), GD7019
// (TypeWideningAssignment), GD7020 (CallSiteParameterConsensus), and
// GD7021 (UntypedContainerElementRead).
type annotationValidator struct{}

func (annotationValidator) Name() string { return "annotation_narrowing" }

func (v annotationValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.VariableDeclaration:
			v.checkWiderThanInferred(ctx, n)
			v.checkRedundantAnnotation(ctx, n)
			v.checkContainerSpecialization(ctx, n)
		case gdast.DualOperatorExpression:
			v.checkWidening(ctx, n)
		case gdast.MethodDeclaration:
			v.checkCallSiteConsensus(ctx, n)
		case gdast.IndexerExpression:
			v.checkUntypedContainer(ctx, n)
		}
	})
}

// checkWiderThanInferred flags an explicit `Variant` annotation whose
// initializer infers a concrete, narrower type: the annotation gives up
// static checking the initializer already supports.
func (v annotationValidator) checkWiderThanInferred(ctx *Context, decl gdast.Node) {
	declared := methodReturnType(decl)
	if declared != "Variant" {
		return
	}
	init := initializerOf(decl)
	if init.IsNil() {
		return
	}
	inferred := ctx.Model.GetExpressionType(init)
	if inferred == "" || inferred == "Variant" {
		return
	}
	ctx.emit(gddiag.AnnotationWiderThanInferred, decl,
		"declared Variant but the initializer is "+inferred+"; consider annotating "+inferred)
}

// checkRedundantAnnotation flags an explicit type annotation that
// exactly matches the natural type of a literal initializer — the same
// narrowing `:=` type inference would already have produced.
func (v annotationValidator) checkRedundantAnnotation(ctx *Context, decl gdast.Node) {
	declared := methodReturnType(decl)
	if declared == "" {
		return
	}
	init := initializerOf(decl)
	if init.IsNil() {
		return
	}
	natural := literalNaturalType(init)
	if natural == "" || natural != declared {
		return
	}
	ctx.emit(gddiag.RedundantAnnotation, decl,
		"annotation "+declared+" duplicates what type inference already gives the literal initializer")
}

func literalNaturalType(lit gdast.Node) string {
	switch lit.Kind() {
	case gdast.StringExpression:
		return "String"
	case gdast.BoolExpression:
		return "bool"
	case gdast.NumberExpression:
		for _, tok := range lit.ChildTokens() {
			if strings.ContainsAny(tok.Text(), ".eE") {
				return "float"
			}
			return "int"
		}
	}
	return ""
}

// checkContainerSpecialization flags a bare `Array`/`Dictionary`
// annotation initialized with a homogeneously-typed array literal,
// which could be specialized to `Array[T]`.
func (v annotationValidator) checkContainerSpecialization(ctx *Context, decl gdast.Node) {
	declared := methodReturnType(decl)
	if declared != "Array" {
		return
	}
	init := initializerOf(decl)
	if init.IsNil() || init.Kind() != gdast.ArrayInitializer {
		return
	}
	elemType, ok := homogeneousElementType(ctx, init.ChildNodes())
	if !ok {
		return
	}
	ctx.emit(gddiag.ContainerMissingSpecialization, decl,
		"every element is "+elemType+"; declare as Array["+elemType+"]")
}

func homogeneousElementType(ctx *Context, elems []gdast.Node) (string, bool) {
	if len(elems) == 0 {
		return "", false
	}
	first := ctx.Model.GetExpressionType(elems[0])
	if first == "" || first == "Variant" {
		return "", false
	}
	for _, e := range elems[1:] {
		if ctx.Model.GetExpressionType(e) != first {
			return "", false
		}
	}
	return first, true
}

// checkWidening flags a plain reassignment that undoes a variable's
// current flow narrowing by assigning back a value of its full declared
// (wider) type.
func (v annotationValidator) checkWidening(ctx *Context, assign gdast.Node) {
	if operatorText(assign) != "=" {
		return
	}
	children := assign.ChildNodes()
	if len(children) != 2 {
		return
	}
	lhs, rhs := children[0], children[1]
	if lhs.Kind() != gdast.IdentifierExpression {
		return
	}
	name := identName(lhs)
	sym, ok := ctx.Model.FindSymbol(name)
	if !ok || sym.DeclaredType == "" {
		return
	}
	fv := ctx.Model.GetFlowVariableType(name, assign)
	if fv == nil || !fv.IsNarrowed {
		return
	}
	narrowed := fv.EffectiveType()
	if narrowed == "" || narrowed == sym.DeclaredType {
		return
	}
	if ctx.Model.GetExpressionType(rhs) != sym.DeclaredType {
		return
	}
	ctx.emit(gddiag.TypeWideningAssignment, assign,
		name+" was narrowed to "+narrowed+"; this assignment widens it back to "+sym.DeclaredType)
}

// checkCallSiteConsensus flags an untyped parameter every local call
// site happens to pass the same concrete type for.
func (v annotationValidator) checkCallSiteConsensus(ctx *Context, method gdast.Node) {
	name := methodName(method)
	if name == "" {
		return
	}
	for i, p := range methodParameters(method) {
		if methodReturnType(p) != "" {
			continue
		}
		consensusType := ""
		consistent := true
		found := false
		walk(ctx.Tree.Root(), func(call gdast.Node) {
			if !consistent || call.Kind() != gdast.CallExpression {
				return
			}
			info, ok := decomposeCall(call)
			if !ok || !info.IsBare || info.Name != name || i >= len(info.Args) {
				return
			}
			t := ctx.Model.GetExpressionType(info.Args[i])
			if t == "" || t == "Variant" {
				consistent = false
				return
			}
			found = true
			if consensusType == "" {
				consensusType = t
			} else if consensusType != t {
				consistent = false
			}
		})
		if found && consistent && consensusType != "" {
			ctx.emit(gddiag.CallSiteParameterConsensus, p,
				"every call site passes "+consensusType+" for parameter "+variableName(p)+"; consider annotating it")
		}
	}
}

func methodParameters(method gdast.Node) []gdast.Node {
	for _, c := range method.ChildNodes() {
		if c.Kind() == gdast.ParameterList {
			return c.ChildNodes()
		}
	}
	return nil
}

// checkUntypedContainer flags indexing a variable declared as a bare
// Array/Dictionary, whose element access necessarily yields Variant.
func (v annotationValidator) checkUntypedContainer(ctx *Context, n gdast.Node) {
	children := n.ChildNodes()
	if len(children) != 2 {
		return
	}
	base := children[0]
	if base.Kind() != gdast.IdentifierExpression {
		return
	}
	name := identName(base)
	sym, ok := ctx.Model.FindSymbol(name)
	if !ok {
		return
	}
	if sym.DeclaredType == "Array" || sym.DeclaredType == "Dictionary" {
		ctx.emit(gddiag.UntypedContainerElementRead, n,
			"indexing untyped "+sym.DeclaredType+" "+name+" returns Variant; consider specializing its element type")
	}
}
