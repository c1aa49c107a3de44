package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/phrazzld/oetprep/internal/service/auth"
	"github.com/phrazzld/oetprep/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{service.ErrAuthenticationRequired, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("load: %w", store.ErrTestNotFound), http.StatusNotFound},
		{store.NewStoreError("test_results", "find", "result 3", store.ErrResultNotFound), http.StatusNotFound},
		{store.ErrEmailExists, http.StatusConflict},
		{service.ErrNoActiveAttempt, http.StatusBadRequest},
		{domain.NewValidationError("id", "must be a positive integer", domain.ErrInvalidID), http.StatusBadRequest},
		{domain.ErrInvalidResultCollection, http.StatusBadRequest},
		{service.NewServiceError("record_result", "failed", errors.New("disk full")), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), tc.err.Error())
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, "An unexpected error occurred"},
		{auth.ErrExpiredToken, "Token expired"},
		{auth.ErrWrongTokenType, "Invalid token"},
		{service.ErrAuthenticationRequired, "Please log in to submit practice tests"},
		{fmt.Errorf("x: %w", store.ErrResultNotFound), "Result not found"},
		{store.ErrNotFound, "Not found"},
		{domain.NewValidationError("username", "must be between 3 and 20 characters", domain.ErrInvalidUsername),
			"Invalid username must be between 3 and 20 characters"},
		{errors.New("pq: password authentication failed for user oet"), "An unexpected error occurred"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New("Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag")
	assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
