package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/service"
)

// VocabularyHandler serves the vocabulary and learning progress.
type VocabularyHandler struct {
	vocabulary service.VocabularyService
	progress   service.ProgressService
	logger     *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(
	vocabulary service.VocabularyService,
	progress service.ProgressService,
	log *slog.Logger,
) *VocabularyHandler {
	if log == nil {
		log = slog.Default()
	}
	return &VocabularyHandler{
		vocabulary: vocabulary,
		progress:   progress,
		logger:     log.With(slog.String("component", "vocabulary_handler")),
	}
}

// ListWords handles GET /api/vocabulary?specialty=.
func (h *VocabularyHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")

	words, err := h.vocabulary.ListWords(r.Context(), specialty)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load vocabulary")
		return
	}
	specialties, err := h.vocabulary.Specialties(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load vocabulary")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VocabularyResponse{
		Words:             words,
		Specialties:       specialties,
		SelectedSpecialty: specialty,
	})
}

// CheckWord handles POST /api/vocabulary/check.
func (h *VocabularyHandler) CheckWord(w http.ResponseWriter, r *http.Request) {
	var req CheckWordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	check, err := h.vocabulary.CheckWord(r.Context(), req.Word)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check word")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, check)
}

// MarkLearned handles POST /api/vocabulary/{id}/learned.
func (h *VocabularyHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	wordID, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	added, err := h.progress.MarkLearned(r.Context(), userID, wordID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MarkLearnedResponse{WordID: wordID, Added: added})
}

// Progress handles GET /api/progress.
func (h *VocabularyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	summary, err := h.progress.Summary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load progress")
		return
	}
	learned, err := h.progress.GetProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{ProgressSummary: *summary, LearnedWords: learned})
}
