package main

// Notes:
// - Shared fixtures for the CLI tests: an injectable Environment with
//   captured output and a fixed clock, and a minimal Notion page writer.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is 2023-03-07 09:05 local time.
var fixedNow = time.Date(2023, 3, 7, 9, 5, 0, 0, time.Local)

const notionPage = `<html><head><meta charset="utf-8"><title>T</title><style></style></head><body>` +
	`<article><header><h1>T</h1></header><div class="page-body">%s</div></article></body></html>`

// testEnv returns an Environment with captured output and an empty process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// writeFile writes content to dir/name, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// noEnvFile returns an --env-file argument pointing at a missing file.
func noEnvFile(t *testing.T) string {
	t.Helper()
	return "--env-file=" + filepath.Join(t.TempDir(), "none.env")
}
