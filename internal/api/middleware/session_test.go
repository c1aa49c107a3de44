package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	h := NewSessionMiddleware("oet_session", true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.SessionIDFromContext(r.Context())
	}))

	t.Run("issues a cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "oet_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, cookies[0].Value, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("reuses a valid cookie", func(t *testing.T) {
		id := uuid.NewString()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "oet_session", Value: id})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Empty(t, w.Result().Cookies())
		assert.Equal(t, id, seen)
	})

	t.Run("replaces a forged cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "oet_session", Value: "../../etc"})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Len(t, w.Result().Cookies(), 1)
		assert.NotEqual(t, "../../etc", seen)
	})
}
