// Package main provides the bibstat CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibstat/internal/config"
	"github.com/matsen/bibstat/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

var (
	configPath string
	dataFlag   string
	staffFlag  string
	logLevel   string
	logFormat  string
)

// cfg is loaded before any command runs.
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibstat",
	Short: "Bibliographic statistics over DBLP exports",
	Long: `bibstat loads a DBLP XML export into memory and reports on it.

Core features:
  - Publication and author counts by type and year
  - Mean, median, and mode of authors per publication and publications per author
  - First, last, and sole authorship
  - Co-authorship lookups and an interactive network view
  - Ranked fuzzy author search
  - JSONL and SQLite snapshots, and a read-only HTTP API

The data file is taken from --data, BIBSTAT_DATA, or data_file in the config
file. All commands output JSON by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/bibstat/config.yml)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "DBLP XML or JSONL snapshot to load")
	rootCmd.PersistentFlags().StringVar(&staffFlag, "staff", "", "Staff list, one author name per line")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.Version = Version
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if dataFlag != "" {
		c.DataFile = config.ExpandTilde(dataFlag)
	}
	if staffFlag != "" {
		c.StaffFile = config.ExpandTilde(staffFlag)
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}

	logging.Setup(c.LogLevel, c.LogFormat)
	cfg = c
	return nil
}
