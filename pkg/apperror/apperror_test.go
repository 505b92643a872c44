package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Authentication("no token"), http.StatusUnauthorized},
		{Authorization("reserved for administrators"), http.StatusForbidden},
		{ValidationMsg("invalid boutiqueId"), http.StatusBadRequest},
		{Validation(FieldViolation{Field: "nom", Message: "nom is required"}), http.StatusBadRequest},
		{Conflict("already exists"), http.StatusConflict},
		{NotFound("produit not found"), http.StatusNotFound},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.HTTPStatus(), tc.err.Message)
	}
}

func TestFrom(t *testing.T) {
	typed := NotFound("client not found")
	assert.Same(t, typed, From(typed))

	// Typed errors survive fmt wrapping
	wrapped := fmt.Errorf("loading client: %w", typed)
	assert.Same(t, typed, From(wrapped))

	// Unknown errors become internal and keep the cause
	cause := errors.New("connection refused")
	got := From(cause)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestIsKind(t *testing.T) {
	err := Conflict("a category with this nom already exists")
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))

	assert.True(t, IsKind(fmt.Errorf("creating: %w", err), KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
	assert.False(t, IsKind(nil, KindConflict))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "produit not found", NotFound("produit not found").Error())

	cause := errors.New("disk full")
	internal := Internal(cause)
	assert.Equal(t, "internal server error: disk full", internal.Error())
	require.ErrorIs(t, internal, cause)
}

func TestValidationViolations(t *testing.T) {
	err := Validation(
		FieldViolation{Field: "email", Message: "email must be a valid address"},
		FieldViolation{Field: "password", Message: "password must be at least 6 characters"},
	)
	assert.Equal(t, "invalid request payload", err.Message)
	require.Len(t, err.Violations, 2)
	assert.Equal(t, "email", err.Violations[0].Field)
}
