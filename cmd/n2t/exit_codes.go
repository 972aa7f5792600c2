package main

import (
	"errors"
	"os"

	n2t "github.com/alnah/go-n2t"
	"github.com/alnah/go-n2t/internal/config"
	"github.com/alnah/go-n2t/internal/dateutil"
	"github.com/alnah/go-n2t/internal/logging"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("usage error")

// Exit codes for the n2t CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Every document converted
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or options
	ExitIO       = 3 // Input, image or output file problems
	ExitDocument = 4 // Page is not a well-formed Notion export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// A batch failure is classified by the first failing document's error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var batch *batchError
	if errors.As(err, &batch) && len(batch.errs) > 0 {
		err = batch.errs[0]
	}

	// Document structure errors (exit 4)
	if errors.Is(err, n2t.ErrMissingElement) ||
		errors.Is(err, n2t.ErrDuplicateElement) {
		return ExitDocument
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrBatchLanguages) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, n2t.ErrCodeLanguages) ||
		errors.Is(err, n2t.ErrInvalidCodeLanguage) ||
		errors.Is(err, n2t.ErrInvalidCodeTheme) ||
		errors.Is(err, n2t.ErrInvalidAssetPath) ||
		errors.Is(err, n2t.ErrTemplateNotFound) ||
		errors.Is(err, n2t.ErrFragmentRender) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoPages) ||
		errors.Is(err, n2t.ErrSourceRead) ||
		errors.Is(err, n2t.ErrAssetRead) ||
		errors.Is(err, n2t.ErrArchive) {
		return ExitIO
	}

	return ExitGeneral
}
