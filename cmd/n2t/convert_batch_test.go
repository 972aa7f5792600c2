package main

// Notes:
// - convertBatch is tested with a fake transformer to control failures and
//   concurrency; real transforms are covered in convert_test.go.

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/net/html"

	n2t "github.com/alnah/go-n2t"
	"github.com/alnah/go-n2t/internal/logging"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake transformer
// ---------------------------------------------------------------------------

type fakeTransformer struct {
	calls  atomic.Int32
	active atomic.Int32
	peak   atomic.Int32
	fail   map[string]error
}

func (f *fakeTransformer) Transform(_ context.Context, src n2t.Source, opts n2t.Options) (*n2t.Result, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if err := f.fail[src.Path]; err != nil {
		return nil, err
	}

	doc, _ := html.Parse(strings.NewReader("<p>" + src.Path + "</p>"))
	res := &n2t.Result{Document: doc}
	if opts.PersistOutput {
		res.OutputPath = src.Path + ".out"
	}
	return res, nil
}

func jobsFor(paths ...string) []pageJob {
	jobs := make([]pageJob, len(paths))
	for i, p := range paths {
		jobs[i] = pageJob{Path: p}
	}
	return jobs
}

// ---------------------------------------------------------------------------
// TestConvertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	fake := &fakeTransformer{fail: map[string]error{"b": n2t.ErrMissingElement}}
	results := convertBatch(context.Background(), fake, jobsFor("a", "b", "c", "d"), n2t.Options{PersistOutput: true}, 2, logging.Discard())

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if results[i].InputPath != want {
			t.Errorf("results[%d].InputPath = %q, want %q (order must match jobs)", i, results[i].InputPath, want)
		}
	}
	if !errors.Is(results[1].Err, n2t.ErrMissingElement) {
		t.Errorf("results[1].Err = %v", results[1].Err)
	}
	if results[0].OutputPath != "a.out" {
		t.Errorf("results[0].OutputPath = %q", results[0].OutputPath)
	}
	if p := fake.peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestConvertBatch_LogsWorker(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}

	convertBatch(context.Background(), &fakeTransformer{}, jobsFor("a", "b", "c"), n2t.Options{PersistOutput: true}, 2, logger)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"worker":`) || !strings.Contains(line, `"path":`) {
			t.Errorf("log line missing worker or path: %s", line)
		}
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &fakeTransformer{}, nil, n2t.Options{}, 4, logging.Discard()); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeTransformer{}
	results := convertBatch(ctx, fake, jobsFor("a", "b"), n2t.Options{}, 1, logging.Discard())

	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
	if fake.calls.Load() != 0 {
		t.Errorf("transformer called %d times after cancel", fake.calls.Load())
	}
}

func TestConvertJob_Stdout(t *testing.T) {
	t.Parallel()

	r := convertJob(context.Background(), &fakeTransformer{}, pageJob{Path: "/x/Post.html"}, n2t.Options{})
	if r.Err != nil {
		t.Fatalf("convertJob() error = %v", r.Err)
	}
	if r.OutputPath != "" || r.Body != "<p>/x/Post.html</p>" {
		t.Errorf("result = %+v", r)
	}
	if r.assetDir != "/x/Post" {
		t.Errorf("assetDir = %q, want /x/Post", r.assetDir)
	}
}

// ---------------------------------------------------------------------------
// TestSummarize - Output lines and batch error
// ---------------------------------------------------------------------------

func TestSummarize(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.html", OutputPath: "a_output.html"},
		{InputPath: "b.html", Err: n2t.ErrDuplicateElement},
		{InputPath: "c.html", Body: "<p>c</p>"},
	}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		err := summarize(results, false, false, env)

		var batch *batchError
		if !errors.As(err, &batch) || batch.failed != 1 || batch.total != 3 {
			t.Fatalf("error = %v", err)
		}
		if !errors.Is(err, n2t.ErrDuplicateElement) {
			t.Error("batch error should unwrap to page errors")
		}
		out := stdout.String()
		for _, want := range []string{"Created a_output.html", "<p>c</p>", "2 succeeded, 1 failed"} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout missing %q: %q", want, out)
			}
		}
		if !strings.Contains(stderr.String(), "FAILED b.html") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("quiet still prints posts", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		_ = summarize(results, true, false, env)
		out := stdout.String()
		if strings.Contains(out, "Created") || strings.Contains(out, "succeeded") {
			t.Errorf("quiet stdout = %q", out)
		}
		if !strings.Contains(out, "<p>c</p>") {
			t.Error("quiet mode must still print the post body")
		}
	})

	t.Run("all succeeded", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(nil)
		if err := summarize(results[:1], false, true, env); err != nil {
			t.Errorf("error = %v, want nil", err)
		}
	})
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	langErr := &n2t.CodeLanguagesError{Blocks: 3, Languages: 1}
	tests := []struct {
		name string
		r    ConversionResult
		want string
	}{
		{"languages", ConversionResult{Err: langErr}, "3 code block(s)"},
		{"head element", ConversionResult{Err: errors.Join(n2t.ErrMissingElement, errors.New("required element not found: <title>"))}, "--tolerant"},
		{"article", ConversionResult{Err: n2t.ErrMissingElement}, "Notion HTML export"},
		{"asset", ConversionResult{Err: n2t.ErrAssetRead, assetDir: "/no/such/dir"}, "does not exist"},
		{"archive asset", ConversionResult{Err: n2t.ErrAssetRead}, ""},
		{"other", ConversionResult{Err: errors.New("x")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.r)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(3); got != 3 {
		t.Errorf("resolveWorkers(3) = %d", got)
	}
	if got := resolveWorkers(0); got < 1 || got > 8 {
		t.Errorf("resolveWorkers(0) = %d, want 1..8", got)
	}
}
