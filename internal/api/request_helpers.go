package api

import (
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
)

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, domain.NewValidationError(name, "is required", domain.ErrInvalidID)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// requireUserID returns the authenticated user id, writing a 401 when the
// auth middleware did not set one.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return 0, false
	}
	return userID, true
}

// decodeAndValidate decodes a JSON body into v and validates it, writing a
// 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// maxFormMemory is the part of a multipart body kept in memory; file parts
// beyond it spill to temporary files.
const maxFormMemory = 1 << 20

const (
	mediaTypeURLEncoded = "application/x-www-form-urlencoded"
	mediaTypeMultipart  = "multipart/form-data"
)

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// isForm reports whether the request body is form encoded.
func isForm(r *http.Request) bool {
	mt := mediaType(r)
	return mt == mediaTypeURLEncoded || mt == mediaTypeMultipart
}

// formValues parses a url-encoded or multipart body and returns its
// non-file fields.
func formValues(r *http.Request) (url.Values, error) {
	if mediaType(r) != mediaTypeMultipart {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, err
	}
	if err := r.MultipartForm.RemoveAll(); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("failed to remove multipart temp files", slog.String("error", err.Error()))
	}
	return r.PostForm, nil
}
