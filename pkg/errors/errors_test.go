package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryError_Error(t *testing.T) {
	err := New(ErrCodeNotFound, "book not found")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "book not found")
}

func TestLibraryError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk failure")
	err := NewDatabaseError("query failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "disk failure")
}

func TestLibraryError_WithDetail(t *testing.T) {
	err := NewNotFoundError("account")

	require.NotNil(t, err.Details)
	assert.Equal(t, "account", err.Details["resource"])

	err.WithDetail("username", "maya")
	assert.Equal(t, "maya", err.Details["username"])
}

func TestAuthErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *LibraryError
		code ErrorCode
	}{
		{"invalid credentials", NewInvalidCredentialsError(), ErrCodeInvalidCredentials},
		{"unauthenticated", NewUnauthenticatedError("login required"), ErrCodeUnauthenticated},
		{"forbidden", NewForbiddenError("administrative access required"), ErrCodeForbidden},
		{"token expired", NewTokenExpiredError(), ErrCodeTokenExpired},
		{"invalid token", NewInvalidTokenError(), ErrCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestValidationError_CollectsAllViolations(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())
	assert.NoError(t, verr.ToError())

	verr.Add("name", "full name must be at least 2 characters")
	verr.Add("message", "message must be at least 15 characters long")

	require.True(t, verr.HasErrors())
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, "message", verr.Fields[1].Field)

	err := verr.ToError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "message")
}

func TestGetLibraryError(t *testing.T) {
	libErr := NewForbiddenError("nope")
	assert.True(t, IsLibraryError(libErr))
	assert.Equal(t, libErr, GetLibraryError(libErr))

	plain := fmt.Errorf("plain")
	assert.False(t, IsLibraryError(plain))
	assert.Nil(t, GetLibraryError(plain))
}

func TestGetValidationError(t *testing.T) {
	verr := NewValidationError()
	verr.Add("email", "please enter a valid email address")

	var err error = verr
	assert.Equal(t, verr, GetValidationError(err))
	assert.Nil(t, GetValidationError(fmt.Errorf("other")))
}
