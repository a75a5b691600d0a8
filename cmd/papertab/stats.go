package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/papertab"
	"github.com/tsawler/papertab/format"
	"github.com/tsawler/papertab/report"
)

func newStatsCmd(app *app) *cobra.Command {
	var output string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <file|dir>...",
		Short: "Summarise table detection over a corpus",
		Long: `Process every document and print a corpus summary: files, tables,
valid tables, validity rate and defect counts by kind.

Directories are searched recursively for PDF, text, bbox HTML and image
files. Documents that fail are logged and left out of the summary.

Examples:
  papertab stats corpus/
  papertab stats --output summary.yaml corpus/*.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return err
			}
			app.logger.Info("processing corpus", "files", len(files), "workers", app.settings.Workers)

			summary, warnings, err := papertab.ProcessCorpus(cmd.Context(), files, app.settings.corpusOptions())
			logWarnings(app.logger, warnings)
			if err != nil {
				return err
			}

			if output != "" {
				if err := writeSummary(output, summary); err != nil {
					return err
				}
				app.logger.Info("summary written", "path", output)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			_, err = io.WriteString(out, renderSummary(summary))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the summary to a .yaml or .json file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// collectFiles expands directories into the supported files below them.
// Files named explicitly are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && format.Detect(path) != format.Unknown {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// writeSummary saves the summary as JSON for a .json path and YAML otherwise
func writeSummary(path string, summary report.Summary) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = yaml.Marshal(summary)
	}
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
