package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/oetprep/internal/api/middleware"
	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/service"
)

// TestHandler serves the test catalog and runs attempts.
type TestHandler struct {
	catalog service.TestCatalog
	exams   service.ExamService
	logger  *slog.Logger
}

// NewTestHandler creates a TestHandler.
func NewTestHandler(catalog service.TestCatalog, exams service.ExamService, log *slog.Logger) *TestHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TestHandler{
		catalog: catalog,
		exams:   exams,
		logger:  log.With(slog.String("component", "test_handler")),
	}
}

// ListMockTests handles GET /api/tests/mock.
func (h *TestHandler) ListMockTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.catalog.ListMockTests(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load tests")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TestListResponse{Tests: tests})
}

// ListPracticeTests handles GET /api/tests/practice.
func (h *TestHandler) ListPracticeTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.catalog.ListPracticeTests(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load tests")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TestListResponse{Tests: tests})
}

// StartTest handles POST /api/tests/{id}/start.
func (h *TestHandler) StartTest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out, err := h.exams.StartTest(r.Context(), shared.SessionIDFromContext(r.Context()), id, middleware.Identity(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start test")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StartTestResponse{
		Test:          out.Test,
		StartedAt:     out.Attempt.StartedAt,
		LoginRequired: out.AuthenticationRequired,
	})
}

// SubmitTest handles POST /api/tests/submit. Answers come either as a JSON
// object under "answers" or as url-encoded or multipart form fields. A
// missing answers object is an empty submission.
func (h *TestHandler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var answers map[string]string
	if isForm(r) {
		form, err := formValues(r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		answers = make(map[string]string, len(form))
		for key, values := range form {
			if len(values) > 0 {
				answers[key] = values[0]
			}
		}
	} else {
		var req SubmitTestRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		answers = req.Answers
	}

	out, err := h.exams.SubmitTest(r.Context(), shared.SessionIDFromContext(r.Context()), middleware.Identity(r), answers)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit test")
		return
	}

	log.Debug("submission graded",
		slog.Int("result_id", out.ResultID),
		slog.String("collection", string(out.Collection)))
	shared.RespondWithJSON(w, r, http.StatusCreated, out)
}
