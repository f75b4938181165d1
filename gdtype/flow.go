package gdtype

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdsym"
	"github.com/dekarrin/gdlint/gdtoken"
)

func isIdentifierTok(tok gdast.Token) bool {
	return tok.Kind() == gdtoken.Identifier
}

// FlowVariableType is one variable's inferred state at a given program
// point (spec §3).
type FlowVariableType struct {
	DeclaredType     string // static, from the declaration
	NarrowedFrom     string // pre-narrowing type of the innermost narrowing frame, if any
	CurrentUnion     *UnionType
	IsGuaranteedNonNull bool
	Duck             *DuckType // nil if the variable has a declared (non-Variant) type
	IsNarrowed       bool
}

func freshFlowVar(declaredType string) *FlowVariableType {
	v := &FlowVariableType{DeclaredType: declaredType}
	if declaredType != "" {
		v.CurrentUnion = NewUnionType(declaredType)
	} else {
		v.CurrentUnion = NewUnionType("Variant")
		v.Duck = NewDuckType()
	}
	return v
}

// EffectiveType returns the type callers should treat this variable as
// right now: the narrowed type if narrowed, else the union's effective
// type.
func (v *FlowVariableType) EffectiveType() string {
	if v.IsNarrowed {
		return v.CurrentUnion.EffectiveType()
	}
	if v.DeclaredType != "" {
		return v.DeclaredType
	}
	return v.CurrentUnion.EffectiveType()
}

// Clone returns a deep copy, so forking flow state across a branch
// never lets one branch's mutation leak into the other.
func (v *FlowVariableType) Clone() *FlowVariableType {
	out := &FlowVariableType{
		DeclaredType:        v.DeclaredType,
		NarrowedFrom:        v.NarrowedFrom,
		IsGuaranteedNonNull: v.IsGuaranteedNonNull,
		IsNarrowed:          v.IsNarrowed,
	}
	if v.CurrentUnion != nil {
		out.CurrentUnion = v.CurrentUnion.Clone()
	}
	if v.Duck != nil {
		out.Duck = v.Duck.Clone()
	}
	return out
}

// narrowTo returns a clone of v narrowed to typeName, recording the
// pre-narrowing type so annotation-narrowing validators can compare.
func (v *FlowVariableType) narrowTo(typeName string) *FlowVariableType {
	out := v.Clone()
	out.NarrowedFrom = out.EffectiveType()
	out.CurrentUnion = NewUnionType(typeName)
	out.IsNarrowed = true
	out.IsGuaranteedNonNull = true
	return out
}

func (v *FlowVariableType) withNonNull(nonNull bool) *FlowVariableType {
	out := v.Clone()
	out.IsGuaranteedNonNull = nonNull
	return out
}

// joinVar implements the flow engine's branch-merge rule (spec §4.4):
// same variable narrowed to {A,B} on the two incoming edges merges to
// UnionType{A,B}; non-null is the AND of both; duck constraints
// intersect.
func joinVar(a, b *FlowVariableType) *FlowVariableType {
	out := &FlowVariableType{DeclaredType: a.DeclaredType}
	out.CurrentUnion = Join(a.CurrentUnion, b.CurrentUnion)
	out.IsGuaranteedNonNull = a.IsGuaranteedNonNull && b.IsGuaranteedNonNull
	out.IsNarrowed = a.IsNarrowed && b.IsNarrowed && out.CurrentUnion.Len() == 1
	if a.Duck != nil && b.Duck != nil {
		out.Duck = a.Duck.Intersect(b.Duck)
	}
	return out
}

// FlowState is the set of FlowVariableTypes live at one program point,
// keyed by variable name.
type FlowState map[string]*FlowVariableType

// Clone returns a state with every variable deep-copied.
func (s FlowState) Clone() FlowState {
	out := make(FlowState, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}
	return out
}

// Join2 merges two states from branches that re-converge, per the
// spec's join rule. Variables present in only one branch (e.g.
// declared inside it) are dropped, since they're out of scope past the
// merge point.
func Join2(a, b FlowState) FlowState {
	out := make(FlowState, len(a))
	for k, av := range a {
		if bv, ok := b[k]; ok {
			out[k] = joinVar(av, bv)
		}
	}
	return out
}

// MethodFlow is the result of analyzing one method: the flow state
// that holds immediately before each statement/expression node
// executes, plus the state entering the method (used to break circular
// narrowing per get_initial_flow_variable_type).
type MethodFlow struct {
	entry   FlowState
	atNode  map[gdast.Node]FlowState
}

// StateAt returns the FlowState in effect immediately before n
// executes, or the method's entry state if n wasn't visited (e.g. it's
// inside an Invalid subtree the engine skipped).
func (mf *MethodFlow) StateAt(n gdast.Node) FlowState {
	if s, ok := mf.atNode[n]; ok {
		return s
	}
	return mf.entry
}

// InitialState returns the flow state entering the method, before any
// narrowing.
func (mf *MethodFlow) InitialState() FlowState {
	return mf.entry
}

// Engine runs the per-method flow analysis and the expression-type
// inference primitive that backs it (spec §4.4).
type Engine struct {
	Runtime gdprovider.RuntimeProvider
}

// NewEngine returns a flow/type engine backed by rt.
func NewEngine(rt gdprovider.RuntimeProvider) *Engine {
	return &Engine{Runtime: rt}
}

// AnalyzeMethod walks method's body once, computing the flow state
// entering every statement (spec §4.4's forward data-flow analysis).
// method must be a gdast.MethodDeclaration; fm is that file's resolved
// symbol table, used to seed the enclosing class's variables and each
// parameter with their declared types (locals are typed from their own
// declarations as the walk reaches them).
func (e *Engine) AnalyzeMethod(method gdast.Node, fm *gdsym.FileModel) *MethodFlow {
	mf := &MethodFlow{atNode: make(map[gdast.Node]FlowState)}
	scope := fm.ScopeAt(method)

	initial := make(FlowState)
	if scope.Parent != nil {
		for _, sym := range scope.Parent.Symbols() {
			if sym.Kind == gdsym.KindVariable {
				initial[sym.Name] = freshFlowVar(sym.DeclaredType)
			}
		}
	}
	for _, sym := range scope.Symbols() {
		if sym.Kind == gdsym.KindParameter {
			initial[sym.Name] = freshFlowVar(sym.DeclaredType)
		}
	}
	mf.entry = initial

	var body gdast.Node
	for _, c := range method.ChildNodes() {
		if c.Kind() == gdast.Block {
			body = c
		}
	}
	if body.IsNil() {
		return mf
	}
	e.walkBlock(body, initial, mf)
	return mf
}

func (e *Engine) walkBlock(block gdast.Node, state FlowState, mf *MethodFlow) FlowState {
	cur := state
	for _, stmt := range block.ChildNodes() {
		mf.atNode[stmt] = cur
		cur = e.walkStatement(stmt, cur, mf)
	}
	return cur
}

func (e *Engine) walkStatement(stmt gdast.Node, state FlowState, mf *MethodFlow) FlowState {
	switch stmt.Kind() {
	case gdast.VariableDeclaration:
		return e.walkLocalVar(stmt, state)
	case gdast.IfStatement:
		return e.walkIf(stmt, state, mf)
	case gdast.WhileStatement:
		return e.walkWhile(stmt, state, mf)
	case gdast.ForStatement:
		return e.walkFor(stmt, state, mf)
	case gdast.ExpressionStatement:
		out := state.Clone()
		e.observeExpression(firstChild(stmt), out)
		return out
	default:
		return state
	}
}

func (e *Engine) walkLocalVar(decl gdast.Node, state FlowState) FlowState {
	out := state.Clone()
	name, declType := "", ""
	var initExpr gdast.Node
	for _, c := range decl.ChildNodes() {
		if c.Kind() == gdast.TypeNode {
			for _, tok := range c.ChildTokens() {
				if isIdentifierTok(tok) && declType == "" {
					declType = tok.Text()
				}
			}
		}
	}
	for _, tok := range decl.ChildTokens() {
		if name == "" && isIdentifierTok(tok) {
			name = tok.Text()
		}
	}
	for _, c := range decl.ChildNodes() {
		if c.Kind() != gdast.TypeNode {
			initExpr = c
		}
	}
	if name == "" {
		return out
	}
	v := freshFlowVar(declType)
	if !initExpr.IsNil() {
		e.observeExpression(initExpr, out)
		if declType == "" {
			inferred := e.InferExpressionType(initExpr, out)
			if inferred != "" && inferred != "Variant" {
				v = freshFlowVar(inferred)
			}
		}
		if initExpr.Kind() == gdast.NullExpression {
			v.IsGuaranteedNonNull = false
		} else {
			v.IsGuaranteedNonNull = true
		}
	}
	out[name] = v
	return out
}

func (e *Engine) walkIf(stmt gdast.Node, state FlowState, mf *MethodFlow) FlowState {
	var joined FlowState
	anyLive := false
	sawElse := false
	notTakenSoFar := state

	for _, branch := range stmt.ChildNodes() {
		if branch.Kind() != gdast.IfBranch {
			continue
		}
		cond := branchCondition(branch)
		var trueState, falseState FlowState
		if cond.IsNil() {
			trueState, falseState = notTakenSoFar.Clone(), notTakenSoFar.Clone()
		} else {
			trueState, falseState = narrow(cond, notTakenSoFar)
		}
		mf.atNode[branch] = notTakenSoFar
		if isElseBranch(branch) {
			sawElse = true
		}
		body := branchBody(branch)
		var bodyExit FlowState
		terminates := false
		if !body.IsNil() {
			bodyExit = e.walkBlock(body, trueState, mf)
			terminates = blockTerminates(body)
		} else {
			bodyExit = trueState
		}
		// A branch that unconditionally returns/breaks/continues never
		// reaches the merge point after the if, so its exit state must
		// not be joined in (spec §4.4's early-return guard-clause row:
		// "affects subsequent statements in the block").
		if !terminates {
			if joined == nil {
				joined = bodyExit
			} else {
				joined = Join2(joined, bodyExit)
			}
			anyLive = true
		}
		notTakenSoFar = falseState
	}
	if !sawElse {
		if joined == nil {
			joined = notTakenSoFar
		} else {
			joined = Join2(joined, notTakenSoFar)
		}
		anyLive = true
	}
	if !anyLive {
		// every branch terminates: the statement after this if is
		// unreachable. Fall back to the pre-if state rather than an
		// empty join, since callers still index by node for statements
		// that are merely dead code, not genuinely absent.
		return state
	}
	return joined
}

// blockTerminates reports whether every path through block ends in a
// return/break/continue, so a caller merging flow state across this
// branch and its sibling must not count this branch's exit state.
func blockTerminates(block gdast.Node) bool {
	stmts := block.ChildNodes()
	if len(stmts) == 0 {
		return false
	}
	last := stmts[len(stmts)-1]
	switch last.Kind() {
	case gdast.ReturnStatement, gdast.BreakStatement, gdast.ContinueStatement:
		return true
	case gdast.IfStatement:
		return ifStatementTerminates(last)
	default:
		return false
	}
}

// ifStatementTerminates reports whether an IfStatement terminates on
// every branch, including requiring an else (no else means there's a
// fall-through path that doesn't terminate).
func ifStatementTerminates(stmt gdast.Node) bool {
	sawElse := false
	for _, branch := range stmt.ChildNodes() {
		if branch.Kind() != gdast.IfBranch {
			continue
		}
		if isElseBranch(branch) {
			sawElse = true
		}
		body := branchBody(branch)
		if body.IsNil() || !blockTerminates(body) {
			return false
		}
	}
	return sawElse
}

func (e *Engine) walkWhile(stmt gdast.Node, state FlowState, mf *MethodFlow) FlowState {
	cond := firstChild(stmt)
	trueState, falseState := state, state
	if !cond.IsNil() {
		trueState, falseState = narrow(cond, state)
	}
	var body gdast.Node
	for _, c := range stmt.ChildNodes() {
		if c.Kind() == gdast.Block {
			body = c
		}
	}
	if !body.IsNil() {
		e.walkBlock(body, trueState, mf)
	}
	return falseState
}

func (e *Engine) walkFor(stmt gdast.Node, state FlowState, mf *MethodFlow) FlowState {
	out := state.Clone()
	var name, declType string
	for _, tok := range stmt.ChildTokens() {
		if name == "" && isIdentifierTok(tok) {
			name = tok.Text()
		}
	}
	for _, c := range stmt.ChildNodes() {
		if c.Kind() == gdast.TypeNode {
			for _, tok := range c.ChildTokens() {
				if isIdentifierTok(tok) {
					declType = tok.Text()
				}
			}
		}
	}
	if name != "" {
		v := freshFlowVar(declType)
		v.IsGuaranteedNonNull = true
		out[name] = v
	}
	var body gdast.Node
	for _, c := range stmt.ChildNodes() {
		if c.Kind() == gdast.Block {
			body = c
		}
	}
	if !body.IsNil() {
		e.walkBlock(body, out, mf)
	}
	return state
}

// observeExpression records duck-type usage for any bare identifier
// member/call chain so untyped variables accumulate constraints as the
// flow engine passes over them (spec §4.4 duck inference). It mutates
// the FlowVariableType for the root identifier in place within state.
func (e *Engine) observeExpression(expr gdast.Node, state FlowState) {
	if expr.IsNil() {
		return
	}
	switch expr.Kind() {
	case gdast.CallExpression:
		children := expr.ChildNodes()
		if len(children) == 0 {
			return
		}
		callee := children[0]
		if callee.Kind() == gdast.MemberOperatorExpression {
			e.observeMemberCall(callee, argCount(expr), state)
		}
		for _, c := range children {
			e.observeExpression(c, state)
		}
	case gdast.MemberOperatorExpression:
		base := firstChild(expr)
		if base.Kind() == gdast.IdentifierExpression {
			if v := lookupBareIdentifier(base, state); v != nil && v.Duck != nil {
				v.Duck.RequireProperty(memberName(expr), "")
			}
		}
		e.observeExpression(base, state)
	default:
		for _, c := range expr.ChildNodes() {
			e.observeExpression(c, state)
		}
	}
}

func (e *Engine) observeMemberCall(member gdast.Node, arity int, state FlowState) {
	base := firstChild(member)
	if base.Kind() != gdast.IdentifierExpression {
		return
	}
	v := lookupBareIdentifier(base, state)
	if v == nil || v.Duck == nil {
		return
	}
	v.Duck.RequireMethod(memberName(member), arity)
}

func argCount(call gdast.Node) int {
	children := call.ChildNodes()
	if len(children) < 2 {
		return 0
	}
	return len(children[1].ChildNodes())
}

func memberName(member gdast.Node) string {
	for _, tok := range member.ChildTokens() {
		if isIdentifierTok(tok) {
			return tok.Text()
		}
	}
	return ""
}

func lookupBareIdentifier(identExpr gdast.Node, state FlowState) *FlowVariableType {
	for _, tok := range identExpr.ChildTokens() {
		if isIdentifierTok(tok) {
			return state[tok.Text()]
		}
	}
	return nil
}

func firstChild(n gdast.Node) gdast.Node {
	nodes := n.ChildNodes()
	if len(nodes) == 0 {
		return gdast.Node{}
	}
	return nodes[0]
}

func branchCondition(branch gdast.Node) gdast.Node {
	for _, c := range branch.ChildNodes() {
		if c.Kind() != gdast.Block {
			return c
		}
	}
	return gdast.Node{}
}

func branchBody(branch gdast.Node) gdast.Node {
	for _, c := range branch.ChildNodes() {
		if c.Kind() == gdast.Block {
			return c
		}
	}
	return gdast.Node{}
}

func isElseBranch(branch gdast.Node) bool {
	for _, tok := range branch.ChildTokens() {
		if tok.Text() == "else" {
			return true
		}
	}
	return false
}
