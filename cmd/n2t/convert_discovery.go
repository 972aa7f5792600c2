package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	n2t "github.com/alnah/go-n2t"
	"github.com/alnah/go-n2t/internal/fileutil"
)

// Sentinel errors for page discovery.
var (
	ErrInvalidExtension   = errors.New("input must be an .html page, a directory or a .zip export")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// MaxWorkers caps --workers.
const MaxWorkers = 64

// pageJob is a single page to transform: a loose export file or an entry
// of an opened export archive.
type pageJob struct {
	Path    string       // loose file path, or the archive path
	Entry   string       // archive entry name, empty for loose files
	Archive *n2t.Archive // nil for loose files
}

// Name identifies the job in output lines.
func (j pageJob) Name() string {
	if j.Archive == nil {
		return j.Path
	}
	return j.Path + ":" + j.Entry
}

// discoverJobs finds the pages to convert under inputPath.
//   - .html file: that page
//   - .zip file: every page in the archive
//   - directory: every .html page below it, recursively
//
// Previously written *_output.html files are skipped. The returned func
// releases opened archives and must be called when the jobs are done.
func discoverJobs(inputPath string) ([]pageJob, func(), error) {
	noop := func() {}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, noop, err
	}

	if info.IsDir() {
		jobs, err := discoverDir(inputPath)
		return jobs, noop, err
	}

	switch {
	case fileutil.HasExtension(inputPath, ".zip"):
		a, err := n2t.OpenArchive(inputPath)
		if err != nil {
			return nil, noop, err
		}
		pages := a.Pages()
		jobs := make([]pageJob, 0, len(pages))
		for _, name := range pages {
			jobs = append(jobs, pageJob{Path: inputPath, Entry: name, Archive: a})
		}
		return jobs, func() { _ = a.Close() }, nil
	case fileutil.HasExtension(inputPath, ".html"):
		if fileutil.IsOutputPath(inputPath) {
			return nil, noop, fmt.Errorf("%w: %s is a converted output", ErrInvalidExtension, inputPath)
		}
		return []pageJob{{Path: inputPath}}, noop, nil
	default:
		return nil, noop, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
	}
}

// discoverDir walks dir for exported pages.
func discoverDir(dir string) ([]pageJob, error) {
	var jobs []pageJob
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isPagePath(path) {
			return nil
		}
		jobs = append(jobs, pageJob{Path: path})
		return nil
	})
	return jobs, err
}

// isPagePath reports whether path names an exported page, not a converted output.
func isPagePath(path string) bool {
	return fileutil.HasExtension(path, ".html") && !fileutil.IsOutputPath(path)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
