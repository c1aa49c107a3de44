package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/service/auth"
	"github.com/phrazzld/oetprep/internal/store"
	"github.com/samber/lo"
)

// UserService provides registration and credential checks.
type UserService interface {
	// Register creates a free-tier user. A taken email yields store.ErrEmailExists.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate returns the user whose email and password match, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type userServiceImpl struct {
	users  *store.List[domain.User]
	hasher auth.PasswordHasher
	logger *slog.Logger
	now    func() time.Time
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a UserService.
func NewUserService(s store.CollectionStore, hasher auth.PasswordHasher, log *slog.Logger) (UserService, error) {
	if s == nil {
		return nil, domain.NewValidationError("store", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "user_service"))

	users, err := store.NewList[domain.User](s, store.CollectionUsers, nil, log)
	if err != nil {
		return nil, err
	}
	return &userServiceImpl{users: users, hasher: hasher, logger: log, now: time.Now}, nil
}

// Register implements UserService.
func (s *userServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, NewServiceError("register", "failed to hash password", err)
	}

	user, err := s.users.Append(ctx, func(id int, existing []domain.User) (domain.User, error) {
		if lo.ContainsBy(existing, func(u domain.User) bool { return strings.EqualFold(u.Email, email) }) {
			return domain.User{}, store.ErrEmailExists
		}
		return domain.User{
			ID:               int64(id),
			Username:         username,
			Email:            email,
			HashedPassword:   hashed,
			SubscriptionType: domain.SubscriptionFree,
			CreatedAt:        s.now().UTC().Truncate(time.Second),
		}, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register existing email")
			return nil, err
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, NewServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return &user, nil
}

// Authenticate implements UserService.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, NewServiceError("authenticate", "failed to load users", err)
	}

	email = strings.TrimSpace(email)
	user, found := lo.Find(all, func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
	if !found {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("password mismatch",
			slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser implements UserService.
func (s *userServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.Find(ctx, int(userID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, store.ErrUserNotFound)
		}
		return nil, NewServiceError("get_user", "failed to load user", err)
	}
	return &user, nil
}
