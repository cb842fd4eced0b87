package main

import (
	"github.com/matsen/bibstat/internal/report"
	"github.com/spf13/cobra"
)

var reportFlags report.RawParams

func init() {
	reportCmd.Flags().StringVar(&reportFlags.Stat, "stat", "mean", "Statistic: mean, median, or mode")
	reportCmd.Flags().StringVar(&reportFlags.Year, "year", "", "Calendar year, for per-year reports")
	reportCmd.Flags().StringVar(&reportFlags.From, "from", "", "First year of the window (inclusive)")
	reportCmd.Flags().StringVar(&reportFlags.To, "to", "", "Last year of the window (inclusive)")
	reportCmd.Flags().StringVar(&reportFlags.Type, "type", "all", "Publication type: all, conference, journal, book, or chapter")
	reportCmd.Flags().StringVar(&reportFlags.Author, "author", "", "Author name, for author reports")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Run a named report",
	Long: `Run one of the aggregate reports over the dataset.

Use 'bibstat reports' to list report names and the parameters each reads.

Examples:
  bibstat report summary-average --stat median
  bibstat report publications-for-year --year 2004 --human
  bibstat report coauthors --from 2000 --to 2005 --type journal
  bibstat report author-stat --author "Stefano Ceri"`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	def, err := report.Lookup(args[0])
	if err != nil {
		return err
	}
	params, err := reportFlags.Parse()
	if err != nil {
		return err
	}

	store := mustLoadStore()
	table, err := def.Run(store.Snapshot(), params)
	if err != nil {
		return err
	}
	return writeTable(table)
}
