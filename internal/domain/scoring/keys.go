package scoring

import "github.com/phrazzld/oetprep/internal/domain"

// ManualGradingRequired marks a free-response item in an answer key.
const ManualGradingRequired = "manual_grading_required"

// FreeResponseCredit is the provisional credit for a non-blank free response.
const FreeResponseCredit = 0.7

// AnswerKey maps a question key ("question_N") to its expected answer.
type AnswerKey map[string]string

// AnswerKeys holds one key per section. Keys are shared by every test of a
// section.
type AnswerKeys map[domain.Section]AnswerKey

// DefaultAnswerKeys returns a fresh copy of the built-in keys.
func DefaultAnswerKeys() AnswerKeys {
	return AnswerKeys{
		domain.SectionReading: {
			"question_1":  "2",
			"question_2":  "2",
			"question_3":  "1",
			"question_4":  "1",
			"question_5":  "1",
			"question_6":  "1",
			"question_7":  "3",
			"question_8":  "1",
			"question_9":  "2",
			"question_10": "1",
		},
		domain.SectionListening: {
			"question_1":  "1",
			"question_2":  "2",
			"question_3":  "1",
			"question_4":  "1",
			"question_5":  "1",
			"question_6":  "1",
			"question_7":  "2",
			"question_8":  "1",
			"question_9":  "1",
			"question_10": "1",
		},
		domain.SectionWriting: {
			"question_writing": ManualGradingRequired,
		},
		domain.SectionSpeaking: {
			"question_speaking": ManualGradingRequired,
		},
	}
}
