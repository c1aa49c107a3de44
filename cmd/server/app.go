package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/oetprep/internal/api"
	"github.com/phrazzld/oetprep/internal/catalog"
	"github.com/phrazzld/oetprep/internal/config"
	"github.com/phrazzld/oetprep/internal/domain/scoring"
	"github.com/phrazzld/oetprep/internal/platform/excel"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/phrazzld/oetprep/internal/service/auth"
	"github.com/phrazzld/oetprep/internal/session"
	"github.com/phrazzld/oetprep/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds the wired dependencies shared by every command.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	store      store.CollectionStore
	closeStore func() error

	catalog  *catalog.Catalog
	sessions *session.MemoryStore
	sweeper  *session.Sweeper
	jwt      auth.JWTService
	reports  *excel.ReportRenderer

	users      service.UserService
	results    service.ResultService
	progress   service.ProgressService
	exams      service.ExamService
	vocabulary service.VocabularyService
}

// newApplication opens storage and wires the services. The sweeper is
// created but not started.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	s, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	app := &application{config: cfg, logger: log, store: s, closeStore: closeStore}

	if err := app.wire(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	return app, nil
}

func (app *application) wire(ctx context.Context) error {
	cfg, log := app.config, app.logger
	var err error

	if app.catalog, err = catalog.New(ctx, app.store, log); err != nil {
		return fmt.Errorf("failed to load test catalog: %w", err)
	}

	app.sessions = session.NewMemoryStore(time.Duration(cfg.Session.IdleTimeoutMinutes) * time.Minute)
	sweepEvery := time.Duration(cfg.Session.SweepIntervalMinutes) * time.Minute
	if app.sweeper, err = session.NewSweeper(app.sessions, sweepEvery, log); err != nil {
		return err
	}

	if app.jwt, err = auth.NewJWTService(cfg.Auth); err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.reports = excel.NewReportRenderer(log)

	if app.users, err = service.NewUserService(app.store, auth.NewBcryptHasher(bcrypt.DefaultCost), log); err != nil {
		return err
	}
	if app.results, err = service.NewResultService(app.store, app.catalog, log); err != nil {
		return err
	}
	if app.progress, err = service.NewProgressService(app.store, app.results, log); err != nil {
		return err
	}
	if app.vocabulary, err = service.NewVocabularyService(app.store, log); err != nil {
		return err
	}
	app.exams, err = service.NewExamService(app.catalog, app.sessions, scoring.NewScorer(nil, log), app.results, log)
	return err
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Logger:        app.logger,
		SessionCookie: app.config.Session.CookieName,
		SecureCookie:  app.config.Session.CookieSecure,
		JWT:           app.jwt,
		Users:         app.users,
		Catalog:       app.catalog,
		Exams:         app.exams,
		Results:       app.results,
		Progress:      app.progress,
		Vocabulary:    app.vocabulary,
		Reports:       app.reports,
	})
}

// cleanup stops background work and releases storage.
func (app *application) cleanup() {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}
	if app.closeStore != nil {
		if err := app.closeStore(); err != nil {
			app.logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}
}
