package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibstat/internal/storage"
	"github.com/spf13/cobra"
)

var (
	snapshotDB      string
	snapshotDataset string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Query SQLite snapshots written by export",
	Long: `Query a SQLite database written by 'bibstat export --sqlite' without
loading the XML again.

A database may hold several datasets. When it holds more than one, pick one
with --dataset.`,
}

func init() {
	snapshotCmd.PersistentFlags().StringVar(&snapshotDB, "db", "", "SQLite database written by export (required)")
	snapshotCmd.PersistentFlags().StringVar(&snapshotDataset, "dataset", "", "Dataset id (default: the only dataset)")
	_ = snapshotCmd.MarkPersistentFlagRequired("db")
	rootCmd.AddCommand(snapshotCmd)
}

// openSnapshotDB opens the --db database, which must already exist.
func openSnapshotDB() (*storage.DB, error) {
	if _, err := os.Stat(snapshotDB); err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	return storage.OpenDB(snapshotDB)
}

// openSnapshot opens the snapshot database and resolves the dataset to query.
// The caller is responsible for calling Close() on the returned DB.
func openSnapshot() (*storage.DB, string, error) {
	db, err := openSnapshotDB()
	if err != nil {
		return nil, "", err
	}

	id, err := pickDataset(db, snapshotDataset)
	if err != nil {
		db.Close()
		return nil, "", err
	}
	return db, id, nil
}

func pickDataset(db *storage.DB, want string) (string, error) {
	ids, err := db.Datasets()
	if err != nil {
		return "", err
	}
	if want != "" {
		for _, id := range ids {
			if id == want {
				return id, nil
			}
		}
		return "", fmt.Errorf("dataset %s not found in %s", want, snapshotDB)
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%s holds no datasets", snapshotDB)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("%s holds %d datasets: choose one with --dataset", snapshotDB, len(ids))
}
