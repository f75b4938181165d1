package gderrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Frozen_WrapsSentinel(t *testing.T) {
	err := Frozen("insert child")
	assert.ErrorIs(t, err, ErrFrozenTree)
	assert.Equal(t, "insert child on a frozen node: tree is frozen and cannot be mutated", err.Error())
}

func Test_Nil_WrapsSentinel(t *testing.T) {
	err := Nil("first token")
	assert.ErrorIs(t, err, ErrNilNode)
	assert.Contains(t, err.Error(), "first token called with a nil node")
}

func Test_UnknownSymbol_WrapsSentinel(t *testing.T) {
	err := UnknownSymbol("foo")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	assert.Contains(t, err.Error(), "foo")
}

func Test_New_NoCause_ReturnsBareMessage(t *testing.T) {
	err := New("something went wrong", nil)
	assert.Equal(t, "something went wrong", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func Test_New_NoMessage_FallsBackToCause(t *testing.T) {
	err := New("", ErrNoSemanticModel)
	assert.Equal(t, ErrNoSemanticModel.Error(), err.Error())
	assert.ErrorIs(t, err, ErrNoSemanticModel)
}
