package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Vocabulary sheet columns, zero based.
const (
	wordColumn       = 0
	definitionColumn = 1
	specialtyColumn  = 2
)

// ReadVocabulary reads words from the first sheet of an .xlsx workbook.
// Columns are word, definition and specialty; a header row whose first cell
// is "word" is skipped, as are rows with a blank word. Returned words have
// no ids.
func ReadVocabulary(r io.Reader) ([]domain.Word, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheets[0], err)
	}

	words := make([]domain.Word, 0, len(rows))
	for i, row := range rows {
		word := cell(row, wordColumn)
		if i == 0 && strings.EqualFold(word, "word") {
			continue
		}
		if word == "" {
			continue
		}
		words = append(words, domain.Word{
			Word:       word,
			Definition: cell(row, definitionColumn),
			Specialty:  cell(row, specialtyColumn),
		})
	}
	return words, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
