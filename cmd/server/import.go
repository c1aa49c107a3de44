package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phrazzld/oetprep/internal/platform/excel"
	"github.com/spf13/cobra"
)

func newImportVocabularyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-vocabulary <file.xlsx>",
		Short: "Import vocabulary words from an Excel workbook",
		Long: "Reads word, definition and specialty from the first sheet of the " +
			"workbook and appends words not already in the vocabulary.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("failed to open workbook: %w", err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			words, err := excel.ReadVocabulary(f)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.cleanup()

			added, err := app.vocabulary.ImportWords(cmd.Context(), words)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d words from %s\n", added, len(words), args[0])
			return nil
		},
	}
}
