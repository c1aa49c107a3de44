package api

import (
	"time"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	// AccessToken is the bearer token for authenticated endpoints.
	AccessToken string `json:"token"`
	// ExpiresAt is the RFC 3339 expiry of AccessToken.
	ExpiresAt string `json:"expires_at"`
}

// TestListResponse lists tests of one kind.
type TestListResponse struct {
	Tests []*domain.Test `json:"tests"`
}

// StartTestResponse is returned when an attempt starts.
type StartTestResponse struct {
	Test      *domain.Test `json:"test"`
	StartedAt time.Time    `json:"started_at"`
	// LoginRequired tells the client that the practice attempt can only be
	// submitted after signing in.
	LoginRequired bool `json:"login_required"`
}

// SubmitTestRequest carries submitted answers keyed by question.
type SubmitTestRequest struct {
	Answers map[string]string `json:"answers"`
}

// ResultListResponse lists a user's practice results.
type ResultListResponse struct {
	Results []domain.ResultView `json:"results"`
}

// ResultDetailResponse is a result together with its test.
type ResultDetailResponse struct {
	Result      domain.Result `json:"result"`
	Test        *domain.Test  `json:"test"`
	TestMissing bool          `json:"test_missing,omitempty"`
}

// VocabularyResponse lists words and the known specialties.
type VocabularyResponse struct {
	Words             []domain.Word `json:"words"`
	Specialties       []string      `json:"specialties"`
	SelectedSpecialty string        `json:"selected_specialty,omitempty"`
}

// CheckWordRequest asks whether a word is in the vocabulary.
type CheckWordRequest struct {
	Word string `json:"word" validate:"required"`
}

// MarkLearnedResponse reports whether a word was newly learned.
type MarkLearnedResponse struct {
	WordID int  `json:"word_id"`
	Added  bool `json:"added"`
}

// ProgressResponse is the dashboard view of a user.
type ProgressResponse struct {
	service.ProgressSummary
	LearnedWords []int `json:"learned_words"`
}
