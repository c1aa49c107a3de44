package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderReport(t *testing.T) {
	t.Parallel()

	uid := int64(3)
	rt := &domain.ResultWithTest{
		Result: domain.Result{
			ID:               7,
			UserID:           &uid,
			TestID:           2,
			ScorePercentage:  50,
			TimeTakenMinutes: 12,
			Answers: map[string]string{
				"question_10":      "1",
				"question_2":       "3",
				"question_writing": "Dear Doctor",
			},
			CompletedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		},
		Test: &domain.Test{ID: 2, Title: "Reading Practice Test 1", Section: domain.SectionReading},
	}

	r := NewReportRenderer(nil)
	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), &buf, rt))
	assert.Equal(t, ".xlsx", r.FileExtension())
	assert.Contains(t, r.ContentType(), "spreadsheetml")

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SummarySheet, AnswersSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Test", "Reading Practice Test 1"}, summary[0])
	assert.Equal(t, []string{"Section", "Reading"}, summary[1])
	assert.Equal(t, "2024-05-01 09:30:00 UTC", summary[2][1])
	assert.Equal(t, "12", summary[3][1])
	assert.Equal(t, "50", summary[4][1])

	answers, err := f.GetRows(AnswersSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Question", "Answer"},
		{"question_2", "3"},
		{"question_10", "1"},
		{"question_writing", "Dear Doctor"},
	}, answers)
}

func TestRenderNilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewReportRenderer(nil).Render(context.Background(), &buf, nil)
	assert.ErrorIs(t, err, ErrNilResult)
	assert.Zero(t, buf.Len())
}

func TestQuestionLess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"question_2", "question_10", true},
		{"question_10", "question_2", false},
		{"question_9", "question_writing", true},
		{"question_speaking", "question_1", false},
		{"question_speaking", "question_writing", true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, questionLess(tc.a, tc.b), "%s < %s", tc.a, tc.b)
	}
}
