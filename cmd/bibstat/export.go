package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bibstat/internal/export"
	"github.com/matsen/bibstat/internal/report"
	"github.com/matsen/bibstat/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportJSONL  string
	exportSQLite string
	exportBibTeX string
	exportWindow report.RawParams
)

func init() {
	exportCmd.Flags().StringVar(&exportBibTeX, "bibtex", "", "Write publications as BibTeX to this path")
	exportCmd.Flags().StringVar(&exportWindow.From, "from", "", "BibTeX only: first year (inclusive)")
	exportCmd.Flags().StringVar(&exportWindow.To, "to", "", "BibTeX only: last year (inclusive)")
	exportCmd.Flags().StringVar(&exportWindow.Type, "type", "all", "BibTeX only: publication type")
	exportCmd.Flags().StringVar(&exportJSONL, "jsonl", "", "Write a JSONL snapshot to this path")
	exportCmd.Flags().StringVar(&exportSQLite, "sqlite", "", "Write the dataset into this SQLite database")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded dataset to a snapshot or bibliography",
	Long: `Write the loaded dataset to a JSONL snapshot, a SQLite database, a BibTeX
file, or any combination.

A JSONL snapshot has one publication per line with author names inline, and
loads much faster than the XML it came from: pass it back with --data.

A SQLite database may hold several datasets, keyed by dataset id. Authors are
indexed for full-text search; see 'bibstat snapshot'.

BibTeX entries get keys like Smith2004, Smith2004a. --from, --to, and --type
restrict which publications are written.

Examples:
  bibstat export --data dblp.xml --jsonl dblp.jsonl
  bibstat export --data dblp.xml --sqlite dblp.db
  bibstat export --bibtex journals.bib --type journal --from 2000`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportJSONL == "" && exportSQLite == "" && exportBibTeX == "" {
		return errors.New("nothing to export: use --jsonl, --sqlite, or --bibtex")
	}
	params, err := exportWindow.Parse()
	if err != nil {
		return err
	}

	store := mustLoadStore()
	v := store.Snapshot()

	var written []string
	if exportJSONL != "" {
		if err := storage.WriteJSONL(exportJSONL, v); err != nil {
			return fmt.Errorf("exporting JSONL: %w", err)
		}
		written = append(written, exportJSONL)
	}
	if exportSQLite != "" {
		if err := storage.ExportSQLite(exportSQLite, v); err != nil {
			return fmt.Errorf("exporting SQLite: %w", err)
		}
		written = append(written, exportSQLite)
	}
	if exportBibTeX != "" {
		if err := writeBibTeX(exportBibTeX, v, params.Window); err != nil {
			return fmt.Errorf("exporting BibTeX: %w", err)
		}
		written = append(written, exportBibTeX)
	}

	if !humanOutput {
		return outputJSON(StatusResponse{Status: "exported", Paths: written})
	}
	for _, p := range written {
		fmt.Printf("Exported dataset %s to %s\n", v.DatasetID, p)
	}
	return nil
}

func writeBibTeX(path string, v *storage.Snapshot, w report.Window) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteBibTeX(f, v, w.Contains); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
