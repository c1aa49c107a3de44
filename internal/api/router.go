package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/oetprep/internal/api/middleware"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/phrazzld/oetprep/internal/service/auth"
)

// RouterDeps are the collaborators of the HTTP API.
type RouterDeps struct {
	Logger        *slog.Logger
	SessionCookie string
	SecureCookie  bool

	JWT        auth.JWTService
	Users      service.UserService
	Catalog    service.TestCatalog
	Exams      service.ExamService
	Results    service.ResultService
	Progress   service.ProgressService
	Vocabulary service.VocabularyService
	Reports    service.ReportRenderer
}

// NewRouter builds the chi router with every route and middleware.
func NewRouter(d RouterDeps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	authMiddleware := middleware.NewAuthMiddleware(d.JWT, log)
	sessions := middleware.NewSessionMiddleware(d.SessionCookie, d.SecureCookie)

	authHandler := NewAuthHandler(d.Users, d.JWT, log)
	testHandler := NewTestHandler(d.Catalog, d.Exams, log)
	resultHandler := NewResultHandler(d.Results, d.Reports, log)
	vocabHandler := NewVocabularyHandler(d.Vocabulary, d.Progress, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Optional identity: anonymous callers may take mock tests.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Identify)

			r.Get("/tests/mock", testHandler.ListMockTests)
			r.With(sessions).Post("/tests/{id}/start", testHandler.StartTest)
			r.With(sessions).Post("/tests/submit", testHandler.SubmitTest)

			r.Get("/mock-results/{id}", resultHandler.GetMockResult)
			r.Get("/mock-results/{id}/report", resultHandler.GetMockResultReport)

			r.Get("/vocabulary", vocabHandler.ListWords)
			r.Post("/vocabulary/check", vocabHandler.CheckWord)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tests/practice", testHandler.ListPracticeTests)
			r.Get("/results", resultHandler.ListResults)
			r.Get("/results/{id}", resultHandler.GetResult)
			r.Get("/results/{id}/report", resultHandler.GetResultReport)
			r.Post("/vocabulary/{id}/learned", vocabHandler.MarkLearned)
			r.Get("/progress", vocabHandler.Progress)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
