// Package excel reads and writes .xlsx workbooks: result reports for
// download and vocabulary sheets for import.
package excel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in rendered reports.
const (
	SummarySheet = "Summary"
	AnswersSheet = "Answers"
)

const completedLayout = "2006-01-02 15:04:05 MST"

// ErrNilResult is returned when Render is called without a result.
var ErrNilResult = errors.New("result cannot be nil")

// ReportRenderer renders results as .xlsx workbooks.
type ReportRenderer struct {
	logger *slog.Logger
}

var _ service.ReportRenderer = (*ReportRenderer)(nil)

// NewReportRenderer creates a ReportRenderer.
func NewReportRenderer(log *slog.Logger) *ReportRenderer {
	if log == nil {
		log = slog.Default()
	}
	return &ReportRenderer{logger: log.With(slog.String("component", "excel_report"))}
}

// ContentType implements service.ReportRenderer.
func (r *ReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension implements service.ReportRenderer.
func (r *ReportRenderer) FileExtension() string { return ".xlsx" }

// Render implements service.ReportRenderer. The workbook has a summary sheet
// and one row per submitted answer, ordered by question key.
func (r *ReportRenderer) Render(ctx context.Context, w io.Writer, rt *domain.ResultWithTest) error {
	if rt == nil {
		return ErrNilResult
	}
	log := logger.FromContextOrDefault(ctx, r.logger)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummary(f, rt); err != nil {
		return err
	}
	if err := writeAnswers(f, rt.Result.Answers); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	log.Debug("report rendered",
		slog.Int("result_id", rt.Result.ID),
		slog.Int("answers", len(rt.Result.Answers)))
	return nil
}

func writeSummary(f *excelize.File, rt *domain.ResultWithTest) error {
	title := ""
	section := ""
	if rt.Test != nil {
		title = rt.Test.Title
		section = string(rt.Test.Section)
	}

	rows := [][]interface{}{
		{"Test", title},
		{"Section", section},
		{"Completed", rt.Result.CompletedAt.UTC().Format(completedLayout)},
		{"Time taken (minutes)", rt.Result.TimeTakenMinutes},
		{"Score (%)", rt.Result.ScorePercentage},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A"+strconv.Itoa(len(rows)), bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}

func writeAnswers(f *excelize.File, answers map[string]string) error {
	if _, err := f.NewSheet(AnswersSheet); err != nil {
		return fmt.Errorf("failed to create answers sheet: %w", err)
	}
	header := []interface{}{"Question", "Answer"}
	if err := f.SetSheetRow(AnswersSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write answers header: %w", err)
	}

	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return questionLess(keys[i], keys[j]) })

	for i, k := range keys {
		row := []interface{}{k, answers[k]}
		if err := f.SetSheetRow(AnswersSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return fmt.Errorf("failed to write answer %s: %w", k, err)
		}
	}
	return nil
}

// questionLess orders question_2 before question_10; non-numeric suffixes
// sort after numeric ones.
func questionLess(a, b string) bool {
	na, errA := strconv.Atoi(strings.TrimPrefix(a, service.AnswerKeyPrefix))
	nb, errB := strconv.Atoi(strings.TrimPrefix(b, service.AnswerKeyPrefix))
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
