package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// User validation errors. Each wraps ErrValidation.
var (
	ErrInvalidUsername     = fmt.Errorf("%w: invalid username", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: empty email", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password too short", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password too long", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: empty password hash", ErrValidation)
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

// Subscription types.
const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

// User is a registered account.
type User struct {
	ID                  int64      `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	HashedPassword      string     `json:"password_hash"`
	SubscriptionType    string     `json:"subscription_type"`
	SubscriptionExpires *time.Time `json:"subscription_expires,omitempty"`
	IsSuperuser         bool       `json:"is_superuser"`
	CreatedAt           time.Time  `json:"created_at"`
}

// GetID implements store.Record.
func (u User) GetID() int { return int(u.ID) }

// HasActiveSubscription reports whether the user holds an unexpired premium
// subscription at now. Superusers always have access.
func (u *User) HasActiveSubscription(now time.Time) bool {
	if u.IsSuperuser {
		return true
	}
	if u.SubscriptionType != SubscriptionPremium || u.SubscriptionExpires == nil {
		return false
	}
	return u.SubscriptionExpires.After(now)
}

// Validate checks a stored user record.
func (u *User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// ValidateUsername checks the username length after trimming.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	if n < MinUsernameLength || n > MaxUsernameLength {
		return NewValidationError("username", "must be between 3 and 20 characters", ErrInvalidUsername)
	}
	return nil
}

// ValidateEmail checks that email is a bare address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyEmail)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return NewValidationError("email", "is not a valid address", ErrInvalidEmail)
	}
	return nil
}

// ValidatePassword checks plaintext password length.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "must be at least 6 characters long", ErrPasswordTooShort)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "must be at most 72 characters long", ErrPasswordTooLong)
	}
	return nil
}
