package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/service"
)

// ResultHandler serves result history and downloadable reports.
type ResultHandler struct {
	results service.ResultService
	reports service.ReportRenderer
	logger  *slog.Logger
}

// NewResultHandler creates a ResultHandler.
func NewResultHandler(results service.ResultService, reports service.ReportRenderer, log *slog.Logger) *ResultHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ResultHandler{
		results: results,
		reports: reports,
		logger:  log.With(slog.String("component", "result_handler")),
	}
}

// ListResults handles GET /api/results.
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	views, err := h.results.GetResultsForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load results")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ResultListResponse{Results: views})
}

// GetResult handles GET /api/results/{id}. Results of other users are
// reported as not found.
func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.ownedPracticeResult(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detail(rt))
}

// GetResultReport handles GET /api/results/{id}/report.
func (h *ResultHandler) GetResultReport(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.ownedPracticeResult(w, r)
	if !ok {
		return
	}
	h.writeReport(w, r, rt)
}

// GetMockResult handles GET /api/mock-results/{id}.
func (h *ResultHandler) GetMockResult(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.mockResult(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detail(rt))
}

// GetMockResultReport handles GET /api/mock-results/{id}/report.
func (h *ResultHandler) GetMockResultReport(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.mockResult(w, r)
	if !ok {
		return
	}
	h.writeReport(w, r, rt)
}

func (h *ResultHandler) ownedPracticeResult(w http.ResponseWriter, r *http.Request) (*domain.ResultWithTest, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return nil, false
	}
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	if _, err := h.results.GetPracticeResultForUser(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to load result")
		return nil, false
	}
	rt, err := h.results.ResultWithTest(r.Context(), domain.PracticeResults, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load result")
		return nil, false
	}
	return rt, true
}

func (h *ResultHandler) mockResult(w http.ResponseWriter, r *http.Request) (*domain.ResultWithTest, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	rt, err := h.results.ResultWithTest(r.Context(), domain.MockResults, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load result")
		return nil, false
	}
	return rt, true
}

func (h *ResultHandler) writeReport(w http.ResponseWriter, r *http.Request, rt *domain.ResultWithTest) {
	var buf bytes.Buffer
	if err := h.reports.Render(r.Context(), &buf, rt); err != nil {
		HandleAPIError(w, r, err, "Failed to render report")
		return
	}

	name := fmt.Sprintf("oet-result-%d%s", rt.Result.ID, h.reports.FileExtension())
	w.Header().Set("Content-Type", h.reports.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Warn("failed to write report", slog.String("error", err.Error()))
	}
}

func detail(rt *domain.ResultWithTest) ResultDetailResponse {
	return ResultDetailResponse{Result: rt.Result, Test: rt.Test, TestMissing: rt.TestMissing}
}
