package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/bibstat/internal/config"
	"github.com/matsen/bibstat/internal/staff"
	"github.com/matsen/bibstat/internal/storage"
)

// loadStore ingests a DBLP XML document, or a JSONL snapshot when path ends
// in .jsonl.
func loadStore(path string) (*storage.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no data file (use --data, %s, or data_file)", config.ErrInvalidConfig, config.EnvData)
	}

	s := storage.New()
	var err error
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		err = s.IngestJSONL(path)
	} else {
		err = s.IngestFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// loadStaff reads the staff list. An empty path yields a nil list, which
// contains nobody.
func loadStaff(path string) (*staff.List, error) {
	if path == "" {
		return nil, nil
	}
	return staff.Load(path)
}

// mustLoadStore loads the configured data file, exits on error.
func mustLoadStore() *storage.Store {
	s, err := loadStore(cfg.DataFile)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	return s
}
