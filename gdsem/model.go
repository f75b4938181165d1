// Package gdsem implements the semantic model facade (component C6): a
// single entry point binding the symbol resolver (gdsym) and the type
// inference/flow engine (gdtype) to one parsed file, memoizing answers
// so validators can query freely without recomputing flow state on
// every call (spec §4.5).
package gdsem

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdsym"
	"github.com/dekarrin/gdlint/gdtype"
	"github.com/dekarrin/gdlint/internal/gderrors"
)

// ReadySafety is the closed set a method's onready-access safety can be
// graded as (spec §4.5 get_method_onready_safety).
type ReadySafety int

const (
	Unknown ReadySafety = iota
	Safe
	Unsafe
)

// lifecycleMethodsSafeAfterReady are the engine callback methods spec
// §4.6 guarantees run after _ready, so @onready access inside them never
// warrants a nullable warning.
var lifecycleMethodsSafeAfterReady = map[string]bool{
	"_process": true, "_physics_process": true, "_input": true,
	"_unhandled_input": true, "_draw": true,
}

// Model is the per-file semantic facade (spec §4.5). RunID identifies
// this analysis pass; gdvalidate.RunCached stamps internal/cache
// entries with it so a caller can later discard everything one pass
// produced in bulk via Store.InvalidateRun (spec §5 "Memory"). The
// per-method flow cache needs no such key: a fresh Model always starts
// it empty, so reparse invalidation already happens for free.
type Model struct {
	Tree    *gdast.Tree
	FM      *gdsym.FileModel
	Runtime gdprovider.RuntimeProvider
	Engine  *gdtype.Engine
	RunID   uuid.UUID

	// ScriptPath and Scenes are optional: the scene node validator
	// degrades to silence (never flags anything) when Scenes is nil,
	// since a script with no known scene provider has no evidence
	// either way (spec §9).
	ScriptPath string
	Scenes     gdprovider.SceneProvider

	mu     sync.Mutex
	flows  map[string]*gdtype.MethodFlow
	single singleflight.Group
}

// New builds a Model for tree, resolving its symbol table and wiring a
// gdtype.Engine against runtime (which may be nil — validators and
// queries that need the runtime provider degrade gracefully per spec
// §9's "semantic model absent" open question).
func New(tree *gdast.Tree, runtime gdprovider.RuntimeProvider) *Model {
	return &Model{
		Tree:    tree,
		FM:      gdsym.Resolve(tree),
		Runtime: runtime,
		Engine:  gdtype.NewEngine(runtime),
		RunID:   uuid.New(),
		flows:   make(map[string]*gdtype.MethodFlow),
	}
}

// FindSymbol resolves name from the class scope outward, returning the
// innermost binding (spec §4.5 find_symbol).
func (m *Model) FindSymbol(name string) (*gdsym.Symbol, bool) {
	if m == nil {
		return nil, false
	}
	return m.FM.ClassScope.Lookup(name)
}

// FindSymbols returns every symbol named name reachable anywhere in the
// file's scope tree (spec §4.5 find_symbols), outermost-declared first.
func (m *Model) FindSymbols(name string) []*gdsym.Symbol {
	if m == nil {
		return nil
	}
	var out []*gdsym.Symbol
	var walk func(s *gdsym.Scope)
	walk = func(s *gdsym.Scope) {
		if sym, ok := s.LookupLocal(name); ok {
			out = append(out, sym)
		}
		for _, c := range s.Children() {
			walk(c)
		}
	}
	walk(m.FM.ClassScope)
	return out
}

// enclosingMethod returns the nearest MethodDeclaration/MethodExpression
// ancestor of n, or the zero Node if none (class-level initializer).
func enclosingMethod(n gdast.Node) gdast.Node {
	cur := n
	for {
		p, ok := cur.Parent()
		if !ok {
			return gdast.Node{}
		}
		if p.Kind() == gdast.MethodDeclaration || p.Kind() == gdast.MethodExpression {
			return p
		}
		cur = p
	}
}

// flowKey gives a stable per-method cache key from its first token's
// position, since Node identity isn't exported outside gdast.
func flowKey(method gdast.Node) string {
	tok, ok := method.FirstToken()
	if !ok {
		return ""
	}
	sp := tok.Span()
	return fmt.Sprintf("%d:%d", sp.Start.Line, sp.Start.Col)
}

// flowFor returns the memoized MethodFlow for the method enclosing n,
// computing it at most once per Model even under concurrent callers
// (spec §5 "N concurrent readers" on a frozen tree): concurrent
// identical requests collapse into one computation via singleflight.
func (m *Model) flowFor(method gdast.Node) *gdtype.MethodFlow {
	key := flowKey(method)
	m.mu.Lock()
	if mf, ok := m.flows[key]; ok {
		m.mu.Unlock()
		return mf
	}
	m.mu.Unlock()

	v, _, _ := m.single.Do(key, func() (interface{}, error) {
		m.mu.Lock()
		if mf, ok := m.flows[key]; ok {
			m.mu.Unlock()
			return mf, nil
		}
		m.mu.Unlock()
		mf := m.Engine.AnalyzeMethod(method, m.FM)
		m.mu.Lock()
		m.flows[key] = mf
		m.mu.Unlock()
		return mf, nil
	})
	return v.(*gdtype.MethodFlow)
}

// flowStateAt returns the flow state in effect immediately before
// atNode, or nil if atNode is not inside any method body (a class-level
// initializer has no per-method flow state).
func (m *Model) flowStateAt(atNode gdast.Node) gdtype.FlowState {
	method := enclosingMethod(atNode)
	if method.IsNil() {
		return nil
	}
	mf := m.flowFor(method)
	stmt := nearestStatement(atNode)
	return mf.StateAt(stmt)
}

// nearestStatement walks up from n (inclusive) to the statement-level
// node the flow engine recorded a state for, since MethodFlow tracks
// state per-statement rather than per-expression.
func nearestStatement(n gdast.Node) gdast.Node {
	cur := n
	for {
		p, ok := cur.Parent()
		if !ok {
			return cur
		}
		if p.Kind() == gdast.Block {
			return cur
		}
		cur = p
	}
}

// GetExpressionType is the get_expression_type query (spec §4.5),
// layering the flow state in effect at expr's position onto the pure
// type-inference primitive.
func (m *Model) GetExpressionType(expr gdast.Node) string {
	if m == nil || expr.IsNil() {
		return "Variant"
	}
	if expr.Kind() == gdast.GetNodeExpression {
		if t, ok := m.resolveNodeRefType(expr); ok {
			return t
		}
		return "Node"
	}
	state := m.flowStateAt(expr)
	return m.Engine.InferExpressionType(expr, state)
}

// resolveNodeRefType resolves a $Path/%Unique expression's static type
// against every scene known to use this file's script, per spec §4.5's
// extension of get_expression_type into Godot's node-tree types. Silent
// (false) when no scene provider is wired or the path resolves in none
// of them — absence of a scene provider is not evidence the path is
// wrong (spec §9).
func (m *Model) resolveNodeRefType(expr gdast.Node) (string, bool) {
	if m.Scenes == nil {
		return "", false
	}
	path := expr.NodeRefPath()
	if path == "" {
		return "", false
	}
	for _, scene := range m.Scenes.GetScenesForScript(m.ScriptPath) {
		if expr.IsUniqueNodeRef() {
			if t, ok := m.Scenes.GetUniqueNodeType(scene, path); ok {
				return t, true
			}
			continue
		}
		if t, ok := m.Scenes.GetNodeType(scene, path); ok {
			return t, true
		}
	}
	return "", false
}

// GetFlowVariableType returns varName's flow state at atNode, or nil if
// the variable isn't tracked there (out of scope, or atNode is outside
// any method).
func (m *Model) GetFlowVariableType(varName string, atNode gdast.Node) *gdtype.FlowVariableType {
	if m == nil {
		return nil
	}
	state := m.flowStateAt(atNode)
	if state == nil {
		return nil
	}
	return state[varName]
}

// GetUnionType returns varName's current UnionType at atNode, or nil.
func (m *Model) GetUnionType(varName string, atNode gdast.Node) *gdtype.UnionType {
	v := m.GetFlowVariableType(varName, atNode)
	if v == nil {
		return nil
	}
	return v.CurrentUnion
}

// GetInitialFlowVariableType returns the state entering the method
// enclosing atNode, before any narrowing — used to break circular
// narrowing (spec §4.5).
func (m *Model) GetInitialFlowVariableType(varName string, atNode gdast.Node) *gdtype.FlowVariableType {
	if m == nil {
		return nil
	}
	method := enclosingMethod(atNode)
	if method.IsNil() {
		return nil
	}
	mf := m.flowFor(method)
	return mf.InitialState()[varName]
}

// AreTypesCompatible implements spec §4.5's are_types_compatible: the
// runtime provider's nominal assignability, widened by numeric
// widening (int -> float), Variant universality, and null being
// universally assignable to any reference type (never to a value type).
func (m *Model) AreTypesCompatible(source, target string) bool {
	if source == "" || target == "" || source == "Variant" || target == "Variant" {
		return true
	}
	if source == target {
		return true
	}
	if source == "null" {
		return !isValueType(target)
	}
	if source == "int" && target == "float" {
		return true
	}
	if m == nil || m.Runtime == nil {
		return false
	}
	return m.Runtime.IsAssignableTo(source, target)
}

var valueTypes = map[string]bool{
	"int": true, "float": true, "bool": true, "String": true,
	"StringName": true, "NodePath": true, "Vector2": true,
	"Vector3": true, "Color": true,
}

func isValueType(t string) bool {
	return valueTypes[t]
}

// IsVariablePotentiallyNull reports whether varName might be null at
// atNode per the current flow state (spec §4.5).
func (m *Model) IsVariablePotentiallyNull(varName string, atNode gdast.Node) bool {
	v := m.GetFlowVariableType(varName, atNode)
	if v == nil {
		return false
	}
	return !v.IsGuaranteedNonNull
}

// IsOnreadyVariable reports whether the class member varName carries an
// `@onready` attribute.
func (m *Model) IsOnreadyVariable(varName string) bool {
	if m == nil {
		return false
	}
	sym, ok := m.FM.ClassScope.LookupLocal(varName)
	if !ok || sym.Kind != gdsym.KindVariable {
		return false
	}
	return hasAttribute(sym.Decl, "@onready")
}

func hasAttribute(decl gdast.Node, name string) bool {
	for _, attr := range decl.AttributesBefore() {
		for _, tok := range attr.ChildTokens() {
			if tok.Text() == name {
				return true
			}
		}
	}
	return false
}

// IsReadyInitializedVariable reports whether varName is assigned
// unconditionally somewhere in the class's _ready() method body (spec
// §4.5).
func (m *Model) IsReadyInitializedVariable(varName string) bool {
	ready, ok := m.findMethod("_ready")
	if !ok {
		return false
	}
	assigned, conditional := scanAssignments(ready, varName)
	return assigned && !conditional
}

// HasConditionalReadyInitialization reports whether varName is assigned
// inside _ready() but only within a conditional branch (spec §4.5),
// which is weaker evidence than an unconditional IsReadyInitializedVariable.
func (m *Model) HasConditionalReadyInitialization(varName string) bool {
	ready, ok := m.findMethod("_ready")
	if !ok {
		return false
	}
	assigned, conditional := scanAssignments(ready, varName)
	return assigned && conditional
}

func (m *Model) findMethod(name string) (gdast.Node, bool) {
	if m == nil {
		return gdast.Node{}, false
	}
	for _, member := range m.Tree.Root().ChildNodes() {
		if member.Kind() != gdast.MethodDeclaration {
			continue
		}
		for _, tok := range member.ChildTokens() {
			if tok.Text() == name {
				return member, true
			}
		}
	}
	return gdast.Node{}, false
}

// scanAssignments walks method's subtree for `varName = ...` assignment
// expressions, reporting whether any were found and whether every one
// found sits inside an IfStatement/WhileStatement/ForStatement/
// MatchStatement (conditional).
func scanAssignments(method gdast.Node, varName string) (found, onlyConditional bool) {
	onlyConditional = true
	var walk func(n gdast.Node, depth int)
	walk = func(n gdast.Node, depth int) {
		if n.Kind() == gdast.DualOperatorExpression {
			children := n.ChildNodes()
			isAssign := false
			for _, tok := range n.ChildTokens() {
				if tok.Text() == "=" {
					isAssign = true
				}
			}
			if isAssign && len(children) == 2 && children[0].Kind() == gdast.IdentifierExpression {
				for _, tok := range children[0].ChildTokens() {
					if tok.Text() == varName {
						found = true
						if depth == 0 {
							onlyConditional = false
						}
					}
				}
			}
		}
		nextDepth := depth
		switch n.Kind() {
		case gdast.IfStatement, gdast.WhileStatement, gdast.ForStatement, gdast.MatchStatement:
			nextDepth = depth + 1
		}
		for _, c := range n.ChildNodes() {
			walk(c, nextDepth)
		}
	}
	walk(method, 0)
	return found, found && onlyConditional
}

// GetMethodOnreadySafety grades whether methodName is guaranteed to run
// after _ready (spec §4.6's nullable validator guard list): Safe for
// _ready itself and for the fixed engine lifecycle callbacks that always
// run after _ready,
// Unknown for anything else (a user-defined method might be called
// before _ready from another script).
func (m *Model) GetMethodOnreadySafety(methodName string) ReadySafety {
	if methodName == "_ready" {
		return Safe
	}
	if lifecycleMethodsSafeAfterReady[methodName] {
		return Safe
	}
	return Unknown
}

// GetTypeUsages returns every node in this file that refers to
// className by name: `extends`, type annotations, `is`/`as`, and `new()`
// style construction by identifier (spec §4.5 get_type_usages).
func (m *Model) GetTypeUsages(className string) []gdast.Node {
	if m == nil {
		return nil
	}
	var out []gdast.Node
	for _, n := range m.Tree.Root().AllNodes() {
		switch n.Kind() {
		case gdast.TypeNode, gdast.ArrayTypeNode, gdast.DictionaryTypeNode,
			gdast.CastExpression, gdast.TypeCheckExpression:
			for _, tok := range n.ChildTokens() {
				if tok.Text() == className {
					out = append(out, n)
				}
			}
		}
	}
	return out
}

// RequireNonNil returns gderrors.ErrNoSemanticModel if m is nil,
// letting callers write `if err := gdsem.RequireNonNil(model); err !=
// nil { return err }` at API boundaries that must have a model (spec
// §7's structural error domain).
func RequireNonNil(m *Model) error {
	if m == nil {
		return gderrors.New("semantic model required", gderrors.ErrNoSemanticModel)
	}
	return nil
}
