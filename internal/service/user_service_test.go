package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/memory"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/phrazzld/oetprep/internal/service/auth"
	"github.com/phrazzld/oetprep/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) service.UserService {
	t.Helper()
	svc, err := service.NewUserService(memory.New(nil), auth.NewBcryptHasher(bcrypt.MinCost), nil)
	require.NoError(t, err)
	return svc
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := newUserService(t)
		u, err := svc.Register(ctx, " nurse1 ", "nurse@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "nurse1", u.Username)
		assert.Equal(t, domain.SubscriptionFree, u.SubscriptionType)
		assert.NotEqual(t, "password123", u.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("password123")))

		second, err := svc.Register(ctx, "nurse2", "other@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("duplicate email ignores case", func(t *testing.T) {
		svc := newUserService(t)
		_, err := svc.Register(ctx, "nurse1", "nurse@example.com", "password123")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "nurse2", "NURSE@example.com", "password123")
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	invalid := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"short username", "ab", "a@example.com", "password123", domain.ErrInvalidUsername},
		{"empty email", "nurse", "", "password123", domain.ErrEmptyEmail},
		{"bad email", "nurse", "not-an-email", "password123", domain.ErrInvalidEmail},
		{"short password", "nurse", "a@example.com", "12345", domain.ErrPasswordTooShort},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			svc := newUserService(t)
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newUserService(t)

	registered, err := svc.Register(ctx, "doctor", "doc@example.com", "s3cretpass")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "DOC@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = svc.Authenticate(ctx, "doc@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newUserService(t)

	registered, err := svc.Register(ctx, "doctor", "doc@example.com", "s3cretpass")
	require.NoError(t, err)

	u, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "doctor", u.Username)

	_, err = svc.GetUser(ctx, 42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestNewUserServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := service.NewUserService(nil, auth.NewBcryptHasher(bcrypt.MinCost), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewUserService(memory.New(nil), nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
