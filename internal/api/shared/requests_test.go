package shared

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type customBody struct{ ok bool }

var errCustom = errors.New("custom invalid")

func (c customBody) Validate() error {
	if c.ok {
		return nil
	}
	return errCustom
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"email":"a@example.com","password":"pw"}`, false},
		{"malformed", `{"email":`, true},
		{"unknown field", `{"email":"a@example.com","admin":true}`, true},
		{"empty", ``, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var got loginBody
			err := DecodeJSON(r, &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@example.com", got.Email)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(loginBody{Email: "a@example.com", Password: "x"}))
	assert.Error(t, ValidateRequest(loginBody{Email: "nope", Password: "x"}))
	assert.Error(t, ValidateRequest(loginBody{}))

	assert.NoError(t, ValidateRequest(customBody{ok: true}))
	assert.ErrorIs(t, ValidateRequest(customBody{}), errCustom)
}
