// Package gderrors implements the structural API error domain described
// in spec §7: value-typed errors for operations that fail without side
// effects (mutating a frozen tree, dereferencing a nil node, looking up
// an undeclared symbol). Parse-level problems never use this type — they
// become Invalid tokens/nodes inside the tree instead.
//
// The shape follows the teacher's tqerrors/serr pattern: a message, an
// optional wrapped cause, and errors.Is/errors.Unwrap support.
package gderrors

import "errors"

var (
	// ErrFrozenTree is the cause reported when a structural edit is
	// attempted on a frozen node or any of its descendants.
	ErrFrozenTree = errors.New("tree is frozen and cannot be mutated")

	// ErrNilNode is the cause reported when an API is called with a null
	// or zero-value node reference.
	ErrNilNode = errors.New("node reference is nil")

	// ErrUnknownSymbol is the cause reported when a symbol lookup targets
	// a name that has no declaration reachable from the query scope.
	ErrUnknownSymbol = errors.New("symbol is not declared")

	// ErrNoSemanticModel is the cause reported when a query requires a
	// semantic model that could not be constructed (e.g. the runtime
	// provider failed to resolve the file's base type).
	ErrNoSemanticModel = errors.New("no semantic model available")
)

// Error is a value-typed structural error carrying a message and the
// sentinel cause it wraps, so callers can use errors.Is against the
// package-level sentinels above.
type Error struct {
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a structural Error with the given technical message wrapping
// cause.
func New(msg string, cause error) error {
	return &Error{msg: msg, cause: cause}
}

// Frozen builds the FrozenTree error for the named operation.
func Frozen(operation string) error {
	return New(operation+" on a frozen node", ErrFrozenTree)
}

// Nil builds the nil-node-reference error for the named operation.
func Nil(operation string) error {
	return New(operation+" called with a nil node", ErrNilNode)
}

// UnknownSymbol builds the undeclared-symbol error for the given name.
func UnknownSymbol(name string) error {
	return New("symbol "+name+" has no reachable declaration", ErrUnknownSymbol)
}
