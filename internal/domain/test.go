package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Section names a test section. The value doubles as the answer-key lookup key.
type Section string

const (
	SectionReading     Section = "Reading"
	SectionListening   Section = "Listening"
	SectionWriting     Section = "Writing"
	SectionSpeaking    Section = "Speaking"
	SectionAllSections Section = "All Sections"

	// SectionUnknown labels placeholder tests whose definition is gone.
	SectionUnknown Section = "Unknown"
)

// TestKind records which catalog collection a test was resolved from.
type TestKind string

const (
	TestKindPractice TestKind = "practice"
	TestKindMock     TestKind = "mock"
)

// QuestionType distinguishes auto-graded from free-response items.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFreeResponse   QuestionType = "free_response"
)

// Test is an immutable test definition from the catalog.
type Test struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Section         Section     `json:"section"`
	DurationMinutes int         `json:"duration_minutes"`
	Description     string      `json:"description,omitempty"`
	IsPremium       bool        `json:"is_premium"`
	IsMockTest      bool        `json:"is_mock_test,omitempty"`
	Content         TestContent `json:"content"`

	// Kind is assigned by the catalog on lookup and never persisted.
	Kind TestKind `json:"-"`
}

// TestContent is the section tree of a test.
type TestContent struct {
	Sections map[string]SectionContent `json:"sections"`
}

// SectionContent holds the passages and questions of one section.
type SectionContent struct {
	DurationMinutes int        `json:"duration_minutes"`
	Passages        []Passage  `json:"passages"`
	Questions       []Question `json:"questions"`
}

// Passage is reading or listening material referenced by questions.
type Passage struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Question is a single test item. CorrectAnswer is usually the option index
// for multiple-choice items and is unused for free-response items.
type Question struct {
	ID            int          `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer AnswerValue  `json:"correct_answer"`
}

// AnswerValue is the expected answer of a question. Stored tests hold either
// an option index (a JSON number) or a text answer such as "B"; both decode.
type AnswerValue string

// MarshalJSON writes integer answers as JSON numbers and anything else as a
// string.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(a)); err == nil && strconv.Itoa(n) == string(a) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON accepts a number, a string or null.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = AnswerValue(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("correct_answer must be a number or a string: %w", err)
	}
	*a = AnswerValue(s)
	return nil
}

// GetID implements store.Record.
func (t Test) GetID() int { return t.ID }

// GradingSection is the section used to pick an answer key. Tests persisted
// without a section grade as Reading.
func (t *Test) GradingSection() Section {
	if t.Section == "" {
		return SectionReading
	}
	return t.Section
}

// Clone returns a deep copy so callers cannot mutate catalog state.
func (t *Test) Clone() *Test {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Content.Sections != nil {
		cp.Content.Sections = make(map[string]SectionContent, len(t.Content.Sections))
		for name, sc := range t.Content.Sections {
			sc.Passages = append([]Passage(nil), sc.Passages...)
			qs := make([]Question, len(sc.Questions))
			for i, q := range sc.Questions {
				q.Options = append([]string(nil), q.Options...)
				qs[i] = q
			}
			sc.Questions = qs
			cp.Content.Sections[name] = sc
		}
	}
	return &cp
}

// MarshalJSON adds the resolved kind as test_type. Catalog records are
// stored before a kind is assigned, so the field is omitted on disk.
func (t Test) MarshalJSON() ([]byte, error) {
	type plain Test
	return json.Marshal(struct {
		plain
		TestType TestKind `json:"test_type,omitempty"`
	}{plain: plain(t), TestType: t.Kind})
}

// PlaceholderTest stands in for a test that is no longer in the catalog so
// historical results can still be displayed.
func PlaceholderTest(id int) *Test {
	return &Test{
		ID:          id,
		Title:       fmt.Sprintf("Test %d", id),
		Section:     SectionUnknown,
		Description: "Test completed",
	}
}
