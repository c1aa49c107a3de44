package catalog

import "github.com/phrazzld/oetprep/internal/domain"

// DefaultPracticeTests seeds the practice collection on first start.
func DefaultPracticeTests() []domain.Test {
	return []domain.Test{
		{
			ID:              1,
			Title:           "Listening Practice Test 1",
			Section:         domain.SectionListening,
			DurationMinutes: 30,
			Description:     "Basic listening comprehension test",
			Content: domain.TestContent{Sections: map[string]domain.SectionContent{
				"listening": {DurationMinutes: 30, Passages: []domain.Passage{}, Questions: []domain.Question{}},
			}},
		},
		{
			ID:              2,
			Title:           "Reading Practice Test 1",
			Section:         domain.SectionReading,
			DurationMinutes: 45,
			Description:     "Reading comprehension and analysis",
			Content: domain.TestContent{Sections: map[string]domain.SectionContent{
				"reading": {DurationMinutes: 45, Passages: []domain.Passage{}, Questions: []domain.Question{}},
			}},
		},
	}
}

// DefaultMockTests seeds the mock collection on first start.
func DefaultMockTests() []domain.Test {
	return []domain.Test{
		{
			ID:              100,
			Title:           "Complete OET Mock Test 1",
			Section:         domain.SectionAllSections,
			DurationMinutes: 180,
			Description:     "Full OET practice exam covering all sections",
			IsMockTest:      true,
			Content: domain.TestContent{Sections: map[string]domain.SectionContent{
				"reading": {
					DurationMinutes: 45,
					Passages: []domain.Passage{{
						ID:      1,
						Title:   "Patient Care Guidelines",
						Content: "Comprehensive patient care guidelines for healthcare professionals...",
					}},
					Questions: []domain.Question{{
						ID:            1,
						Question:      "What is the primary focus of patient care?",
						Type:          domain.QuestionMultipleChoice,
						Options:       []string{"Safety", "Efficiency", "Cost", "Speed"},
						CorrectAnswer: "0",
					}},
				},
			}},
		},
	}
}
