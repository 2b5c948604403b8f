package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrorTypeValidation, "push", "payload too large")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "[validation] push: payload too large", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(cause, ErrorTypeNetwork, "listen", "accept failed")

	assert.Equal(t, "[network] listen: accept failed: connection reset", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	assert.Nil(t, Wrap(nil, ErrorTypeNetwork, "listen", "no-op"))
}

func TestWithContext(t *testing.T) {
	err := NewCapacityError("push", "stack full").
		WithContext("capacity", 100).
		WithContext("depth", 100)

	assert.Equal(t, 100, err.Context["capacity"])
	assert.Equal(t, 100, err.Context["depth"])
}

func TestIsType(t *testing.T) {
	err := NewCapacityError("push", "stack full")
	assert.True(t, IsType(err, ErrorTypeCapacity))
	assert.False(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeCapacity))
}
