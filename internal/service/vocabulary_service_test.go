package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWords(t *testing.T, f *fixture) {
	t.Helper()
	n, err := f.vocab.ImportWords(context.Background(), []domain.Word{
		{Word: "Tachycardia", Definition: "fast heart rate", Specialty: "Cardiology"},
		{Word: "Bradycardia", Definition: "slow heart rate", Specialty: "Cardiology"},
		{Word: "Dyspnea", Definition: "shortness of breath", Specialty: "Respiratory"},
		{Word: "Oedema", Definition: "swelling"},
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestImportWords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	seedWords(t, f)

	n, err := f.vocab.ImportWords(ctx, []domain.Word{
		{Word: "tachycardia", Definition: "dup"},
		{Word: "  Angina  ", Definition: "chest pain", Specialty: "Cardiology"},
		{Word: "", Definition: "blank"},
		{Word: "angina", Definition: "dup in batch"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	words, err := f.vocab.ListWords(ctx, "")
	require.NoError(t, err)
	require.Len(t, words, 5)
	assert.Equal(t, 5, words[4].ID)
	assert.Equal(t, "Angina", words[4].Word)
}

func TestListWordsAndSpecialties(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	seedWords(t, f)

	cardio, err := f.vocab.ListWords(ctx, "cardiology")
	require.NoError(t, err)
	assert.Len(t, cardio, 2)

	none, err := f.vocab.ListWords(ctx, "Dermatology")
	require.NoError(t, err)
	assert.Empty(t, none)

	specialties, err := f.vocab.Specialties(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Respiratory"}, specialties)
}

func TestCheckWord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	seedWords(t, f)

	tests := []struct {
		name    string
		input   string
		correct bool
		message string
	}{
		{name: "exact", input: "Dyspnea", correct: true},
		{name: "case and space insensitive", input: "  dySPnea ", correct: true},
		{name: "unknown", input: "Xyz", message: `"Xyz" is not found in our medical vocabulary database.`},
		{name: "blank", input: "   ", message: `"" is not found in our medical vocabulary database.`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.vocab.CheckWord(ctx, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.correct, got.Correct)
			if tc.correct {
				assert.Equal(t, "Dyspnea", got.Word)
				assert.Equal(t, "shortness of breath", got.Definition)
				assert.Equal(t, "Respiratory", got.Specialty)
				return
			}
			assert.Equal(t, tc.message, got.Message)
		})
	}
}
