package main

import (
	"os"

	"github.com/matsen/bibstat/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authorCmd)
}

var authorCmd = &cobra.Command{
	Use:   "author <name>",
	Short: "Show an author's profile",
	Long: `Show publication and authorship counts for one author, matched by
exact name.

With a staff list (--staff or staff_file) the profile also says whether the
author is internal, and for internal authors lists their external co-authors.

Examples:
  bibstat author "Stefano Ceri"
  bibstat author "Stefano Ceri" --staff staff.txt --human`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthor,
}

func runAuthor(cmd *cobra.Command, args []string) error {
	staff, err := loadStaff(cfg.StaffFile)
	if err != nil {
		return err
	}
	store := mustLoadStore()

	profile, err := report.AuthorProfile(store.Snapshot(), args[0], staff)
	if err != nil {
		return err
	}

	if !humanOutput {
		return outputJSON(profile)
	}
	return printTable(os.Stdout, profile.Table())
}
