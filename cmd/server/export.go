package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/spf13/cobra"
)

func newExportReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-report",
		Short: "Write the Excel report of a stored result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			kind, _ := cmd.Flags().GetString("collection")
			id, _ := cmd.Flags().GetInt("id")
			out, _ := cmd.Flags().GetString("out")

			collection, err := collectionFlag(kind)
			if err != nil {
				return err
			}
			if id <= 0 {
				return fmt.Errorf("--id must be a positive result id")
			}

			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.cleanup()

			rt, err := app.results.ResultWithTest(cmd.Context(), collection, id)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("oet-result-%d%s", id, app.reports.FileExtension())
			}
			f, err := os.Create(filepath.Clean(out))
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			if err := app.reports.Render(cmd.Context(), f, rt); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().String("collection", "practice", "result collection (practice or mock)")
	cmd.Flags().Int("id", 0, "result id")
	cmd.Flags().StringP("out", "o", "", "output file (default oet-result-<id>.xlsx)")
	return cmd
}

func collectionFlag(kind string) (domain.ResultCollection, error) {
	switch kind {
	case "practice":
		return domain.PracticeResults, nil
	case "mock":
		return domain.MockResults, nil
	default:
		return "", fmt.Errorf("--collection must be practice or mock, got %q", kind)
	}
}
