package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	n2t "github.com/alnah/go-n2t"
	"github.com/alnah/go-n2t/internal/fileutil"
	"github.com/alnah/go-n2t/internal/hints"
	"github.com/alnah/go-n2t/internal/logging"
)

// CLITransformer is the interface for the transformation service.
type CLITransformer interface {
	Transform(ctx context.Context, src n2t.Source, opts n2t.Options) (*n2t.Result, error)
}

// Compile-time interface implementation check.
var _ CLITransformer = (*n2t.Transformer)(nil)

// ConversionResult holds the outcome of a single page.
type ConversionResult struct {
	InputPath  string
	OutputPath string // empty when the post went to stdout
	Body       string // post HTML when not persisted
	Err        error
	Duration   time.Duration
	assetDir   string
}

// batchError reports failed pages. Unwrap exposes every page error so
// errors.Is sees through it.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// convertBatch transforms pages concurrently. The transformer is shared:
// it is safe for concurrent use on distinct documents.
func convertBatch(ctx context.Context, tr CLITransformer, jobs []pageJob, opts n2t.Options, workers int, logger *slog.Logger) []ConversionResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]ConversionResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: jobs[idx].Name(),
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertJob(ctx, tr, jobs[idx], opts)
				r := results[idx]
				logger.Debug("page done", logging.Worker(id), logging.Path(r.InputPath),
					logging.DurationMS(float64(r.Duration.Microseconds())/1000), slog.Bool("ok", r.Err == nil))
			}
		}(w)
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// convertJob transforms a single page and returns the result.
func convertJob(ctx context.Context, tr CLITransformer, j pageJob, opts n2t.Options) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: j.Name()}

	src := n2t.Source{Path: j.Path}
	if j.Archive != nil {
		var err error
		src, err = j.Archive.Source(j.Entry)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		opts.FromArchive = true
	} else {
		result.assetDir = fileutil.SiblingDir(j.Path)
	}

	out, err := tr.Transform(ctx, src, opts)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.OutputPath = out.OutputPath
	if !opts.PersistOutput {
		result.Body, err = out.BodyHTML()
		if err != nil {
			result.Err = err
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// summarize prints results and returns a *batchError when any page failed.
// Failures are always printed; successes only when not quiet. A post that
// was not persisted is written to stdout even in quiet mode.
func summarize(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r))
			errs = append(errs, r.Err)
			continue
		}

		if r.OutputPath == "" {
			fmt.Fprintln(env.Stdout, r.Body)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed == 0 {
		return nil
	}
	return &batchError{failed: summary.Failed, total: len(results), errs: errs}
}

// hintFor returns an actionable hint for a failed page, or "".
func hintFor(r ConversionResult) string {
	var langErr *n2t.CodeLanguagesError
	switch {
	case errors.As(r.Err, &langErr):
		return hints.ForCodeLanguages(langErr.Blocks, langErr.Languages)
	case errors.Is(r.Err, n2t.ErrMissingElement):
		return hints.ForMissingElement(missingTag(r.Err))
	case errors.Is(r.Err, n2t.ErrAssetRead) && r.assetDir != "":
		return hints.ForMissingAsset(r.assetDir)
	case errors.Is(r.Err, os.ErrPermission):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// missingTag extracts the head tag named by a missing-element error.
func missingTag(err error) string {
	msg := err.Error()
	for _, tag := range []string{"meta", "title", "style"} {
		if strings.Contains(msg, "<"+tag+">") {
			return tag
		}
	}
	return ""
}

// formatError renders a top-level error for stderr.
func formatError(err error) string {
	var batch *batchError
	if errors.As(err, &batch) {
		return batch.Error()
	}
	return "error: " + err.Error()
}

// resolveWorkers determines the worker count.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	available := runtime.GOMAXPROCS(0)
	if available < 1 {
		return 1
	}
	if available > 8 {
		return 8
	}
	return available
}
