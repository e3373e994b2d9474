package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("invalid input").WithCode("VAL001").WithDetail("field", "title").WithComponent("donation-service")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "donation-service", err.Component)
	assert.Equal(t, "title", err.Details["field"])
	assert.Equal(t, "invalid input", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrDocumentNotFound
	err := NewNotFoundError("donation").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "donation not found")
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("insert")
	assert.Equal(t, ErrorTypeTimeout, err.Type)
	assert.True(t, IsTimeout(err))
	assert.ErrorIs(t, err, ErrRequestTimedOut)
}

func TestClassifiers(t *testing.T) {
	nf := NewNotFoundError("doc")
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
	assert.False(t, IsAuthentication(nf))
	assert.False(t, IsAuthorization(nf))
	assert.False(t, IsTimeout(nf))

	assert.True(t, IsValidation(NewValidationError("bad")))
	assert.True(t, IsAuthentication(NewAuthenticationError("bad")))
	assert.True(t, IsAuthorization(NewAuthorizationError("bad")))
	assert.True(t, IsConflict(NewConflictError("dup")))
	assert.True(t, IsNotFound(ErrDocumentNotFound))
	assert.True(t, IsTimeout(ErrRequestTimedOut))
}

func TestWrapError_PassesThroughAppError(t *testing.T) {
	orig := NewConflictError("exists")
	wrapped := WrapError(orig, "ignored")
	assert.Same(t, orig, wrapped)

	plain := ErrInvalidInput
	app := WrapError(plain, "store call failed")
	assert.Equal(t, ErrorTypeInternal, app.Type)
	assert.ErrorIs(t, app, plain)
}
