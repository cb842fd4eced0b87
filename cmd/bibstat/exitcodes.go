package main

import (
	"errors"

	"github.com/matsen/bibstat/internal/config"
	"github.com/matsen/bibstat/internal/importer"
	"github.com/matsen/bibstat/internal/storage"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (invalid config, no data file)
	ExitDataError   = 3 // Data error (malformed XML or snapshot)
	ExitNotFound    = 4 // Author not found
)

// exitCodeFor maps an error returned by a command to its exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, importer.ErrMalformed):
		return ExitDataError
	case errors.Is(err, storage.ErrAuthorNotFound):
		return ExitNotFound
	}
	return ExitError
}
