package gdsym

import (
	"sort"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdtoken"
)

// ReferenceConfidence grades how sure a cross-file reference match is
// (spec §4.3).
type ReferenceConfidence int

const (
	// Strict: the occurrence's static type matches the symbol's owner.
	Strict ReferenceConfidence = iota
	// Potential: duck-typed or narrowed evidence, not a hard type match.
	Potential
	// NameMatch: same identifier, no evidence it's the same symbol.
	NameMatch
)

func (c ReferenceConfidence) String() string {
	switch c {
	case Strict:
		return "Strict"
	case Potential:
		return "Potential"
	default:
		return "NameMatch"
	}
}

// OccurrenceKind is the closed set of ways a symbol can be referenced.
type OccurrenceKind int

const (
	OccurrenceDeclaration OccurrenceKind = iota
	OccurrenceRead
	OccurrenceWrite
	OccurrenceCall
	OccurrenceTypeAnnotation
	OccurrenceTypeCheck
	OccurrenceExtends
)

// Occurrence is one located reference to a symbol.
type Occurrence struct {
	Kind       OccurrenceKind
	File       string
	Node       gdast.Node
	Confidence ReferenceConfidence
}

// ProjectSemanticModel owns one FileModel per script in a project plus
// the scene/resource provider, and answers cross-file reference
// queries (spec §4.3).
type ProjectSemanticModel struct {
	project gdprovider.ProjectModel
	files   map[string]*FileModel
	order   []string
}

// NewProjectSemanticModel resolves every script in project into its own
// FileModel, in ScriptPaths order (stable, for deterministic output).
func NewProjectSemanticModel(project gdprovider.ProjectModel) (*ProjectSemanticModel, error) {
	pm := &ProjectSemanticModel{project: project, files: make(map[string]*FileModel)}

	paths := append([]string(nil), project.ScriptPaths()...)
	sort.Strings(paths)
	for _, path := range paths {
		src, err := project.ReadScript(path)
		if err != nil {
			return nil, err
		}
		tree := gdast.ParseFile(src)
		pm.files[path] = Resolve(tree)
		pm.order = append(pm.order, path)
	}
	return pm, nil
}

// FileModel returns the resolved model for path, if it's part of the
// project.
func (pm *ProjectSemanticModel) FileModel(path string) (*FileModel, bool) {
	fm, ok := pm.files[path]
	return fm, ok
}

// ScriptPaths returns every script path in the project, in stable
// (sorted) order.
func (pm *ProjectSemanticModel) ScriptPaths() []string {
	return append([]string(nil), pm.order...)
}

// FindReferences yields every occurrence of symbolName across the
// project, classified into all seven OccurrenceKinds by syntactic
// position. This layer (pure symbol tables) has no type information,
// so every occurrence is reported at NameMatch confidence; callers
// with a semantic model available should prefer gdsem.FindReferences,
// which takes this result and upgrades confidence to Strict/Potential
// using flow-sensitive type information (spec §4.5 get_references_to).
func (pm *ProjectSemanticModel) FindReferences(symbolName string) []Occurrence {
	var out []Occurrence
	for _, path := range pm.order {
		fm := pm.files[path]
		collectOccurrences(fm.Tree.Root(), symbolName, path, &out)
	}
	return out
}

// declarationKinds are the node kinds whose name token, if it matches,
// marks an OccurrenceDeclaration (spec §4.3's declared-symbol kinds,
// plus ForStatement for its loop variable binding).
var declarationKinds = map[gdast.NodeKind]bool{
	gdast.VariableDeclaration:   true,
	gdast.ParameterDeclaration:  true,
	gdast.SignalDeclaration:     true,
	gdast.EnumDeclaration:       true,
	gdast.EnumValueDeclaration:  true,
	gdast.InnerClassDeclaration: true,
	gdast.MethodDeclaration:     true,
	gdast.ForStatement:          true,
}

// assignmentOperators are the token spellings that make a
// DualOperatorExpression an assignment rather than a comparison or
// arithmetic expression (mirrors gdast's own isAssignmentOp).
var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

func collectOccurrences(n gdast.Node, name, path string, out *[]Occurrence) {
	classifyNode(n, name, path, out)
	for _, c := range n.ChildNodes() {
		collectOccurrences(c, name, path, out)
	}
}

func classifyNode(n gdast.Node, name, path string, out *[]Occurrence) {
	switch {
	case declarationKinds[n.Kind()]:
		if declName, ok := identifierToken(n); ok && declName == name {
			*out = append(*out, Occurrence{Kind: OccurrenceDeclaration, File: path, Node: n, Confidence: NameMatch})
		}
	case n.Kind() == gdast.TypeNode || n.Kind() == gdast.ArrayTypeNode || n.Kind() == gdast.DictionaryTypeNode:
		classifyTypeNode(n, name, path, out)
	case n.Kind() == gdast.CastExpression || n.Kind() == gdast.TypeCheckExpression:
		for _, tok := range n.ChildTokens() {
			if tok.Kind() == gdtoken.Identifier && tok.Text() == name {
				*out = append(*out, Occurrence{Kind: OccurrenceTypeCheck, File: path, Node: n, Confidence: NameMatch})
			}
		}
	case n.Kind() == gdast.IdentifierExpression:
		classifyIdentifier(n, name, path, out)
	}
}

// classifyTypeNode distinguishes an `extends Foo` header (OccurrenceExtends)
// and a `class_name Foo` header (OccurrenceDeclaration — it names the
// class itself) from an ordinary `: Foo` type annotation
// (OccurrenceTypeAnnotation); the parser represents all three as a
// TypeNode/ArrayTypeNode/DictionaryTypeNode, distinguished only by
// their leading keyword token, if any (gdast/decl.go parseExtends,
// parseClassName).
func classifyTypeNode(n gdast.Node, name, path string, out *[]Occurrence) {
	header := typeNodeHeaderKeyword(n)
	for _, tok := range n.ChildTokens() {
		if tok.Kind() != gdtoken.Identifier || tok.Text() != name {
			continue
		}
		switch header {
		case "extends":
			*out = append(*out, Occurrence{Kind: OccurrenceExtends, File: path, Node: n, Confidence: NameMatch})
		case "class_name":
			*out = append(*out, Occurrence{Kind: OccurrenceDeclaration, File: path, Node: n, Confidence: NameMatch})
		default:
			*out = append(*out, Occurrence{Kind: OccurrenceTypeAnnotation, File: path, Node: n, Confidence: NameMatch})
		}
	}
}

func typeNodeHeaderKeyword(n gdast.Node) string {
	toks := n.ChildTokens()
	if len(toks) == 0 {
		return ""
	}
	first := toks[0]
	if first.Kind() == gdtoken.Keyword && (first.Text() == "extends" || first.Text() == "class_name") {
		return first.Text()
	}
	return ""
}

// classifyIdentifier grades a bare identifier as a call (it's the
// callee of a CallExpression), a write (it's the target of an
// assignment DualOperatorExpression), or an ordinary read — the three
// ways an IdentifierExpression can appear outside of a declaration or
// type position.
func classifyIdentifier(n gdast.Node, name, path string, out *[]Occurrence) {
	text, ok := identifierToken(n)
	if !ok || text != name {
		return
	}
	kind := OccurrenceRead
	if parent, ok := n.Parent(); ok {
		switch parent.Kind() {
		case gdast.CallExpression:
			if isFirstChild(parent, n) {
				kind = OccurrenceCall
			}
		case gdast.DualOperatorExpression:
			if isAssignment(parent) && isFirstChild(parent, n) {
				kind = OccurrenceWrite
			}
		}
	}
	*out = append(*out, Occurrence{Kind: kind, File: path, Node: n, Confidence: NameMatch})
}

func isFirstChild(parent, candidate gdast.Node) bool {
	children := parent.ChildNodes()
	return len(children) > 0 && children[0].Equal(candidate)
}

func isAssignment(dual gdast.Node) bool {
	for _, tok := range dual.ChildTokens() {
		if tok.Kind() == gdtoken.Operator && assignmentOperators[tok.Text()] {
			return true
		}
	}
	return false
}
