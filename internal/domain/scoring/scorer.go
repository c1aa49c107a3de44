package scoring

import (
	"context"
	"log/slog"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
)

// Scorer grades submissions using the answer key of a test's section.
type Scorer struct {
	keys   AnswerKeys
	logger *slog.Logger
}

// NewScorer creates a Scorer over keys. A nil keys map uses DefaultAnswerKeys.
func NewScorer(keys AnswerKeys, log *slog.Logger) *Scorer {
	if keys == nil {
		keys = DefaultAnswerKeys()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scorer{
		keys:   keys,
		logger: log.With(slog.String("component", "scorer")),
	}
}

// Score grades answers for section. A section without an answer key scores 0
// and logs a warning.
func (s *Scorer) Score(ctx context.Context, answers map[string]string, section domain.Section) float64 {
	key, ok := s.keys[section]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "no answer key for section",
			slog.String("section", string(section)))
		return 0
	}
	return Calculate(answers, key)
}
