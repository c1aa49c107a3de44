package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/phrazzld/oetprep/internal/platform/logger"
)

// NewSessionMiddleware ensures each client carries an attempt session id in
// the named cookie. Missing or malformed ids are replaced with a new one.
func NewSessionMiddleware(cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sessionID = c.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Debug("issued attempt session")
			}

			next.ServeHTTP(w, r.WithContext(shared.WithSessionID(r.Context(), sessionID)))
		})
	}
}
