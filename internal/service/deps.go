package service

import (
	"context"
	"io"

	"github.com/phrazzld/oetprep/internal/domain"
)

// TestCatalog resolves test definitions. *catalog.Catalog implements it.
type TestCatalog interface {
	GetTestByID(ctx context.Context, id int) (*domain.Test, error)
	ListPracticeTests(ctx context.Context) ([]*domain.Test, error)
	ListMockTests(ctx context.Context) ([]*domain.Test, error)
}

// Scorer grades answers for a section. *scoring.Scorer implements it.
type Scorer interface {
	Score(ctx context.Context, answers map[string]string, section domain.Section) float64
}

// ReportRenderer turns a result and its test into a downloadable document.
type ReportRenderer interface {
	// ContentType is the MIME type of rendered reports.
	ContentType() string
	// FileExtension is the extension, with dot, for report file names.
	FileExtension() string
	// Render writes the report for rt to w.
	Render(ctx context.Context, w io.Writer, rt *domain.ResultWithTest) error
}
