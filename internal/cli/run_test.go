package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func fixtureConfig(t *testing.T) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	content := `{
		"root": {
			"dist-tags": {"latest": "1.0.0"},
			"versions": {"1.0.0": {"dependencies": {"leaf": "*"}}}
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return &Config{
		PackageName:        "root",
		RepositoryURL:      path,
		Version:            "latest",
		TestRepositoryMode: true,
	}
}

func TestBuildGraphLogsOnceAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, charmlog.InfoLevel))

	result, err := buildGraph(ctx, fixtureConfig(t), &buildOpts{maxDepth: 4, maxPackages: 300})
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}
	if result.PackageCount() != 2 {
		t.Errorf("PackageCount() = %d, want 2", result.PackageCount())
	}

	// The spinner owns the status line at info level; the log carries only
	// the completion summary, not a second "resolving" message.
	out := buf.String()
	if strings.Contains(strings.ToLower(out), "resolving") {
		t.Errorf("info-level log duplicates the spinner message:\n%s", out)
	}
	if !strings.Contains(out, "Resolved 2 packages") {
		t.Errorf("completion summary missing from log:\n%s", out)
	}
}

func TestBuildGraphReportsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx = withLogger(ctx, newLogger(&bytes.Buffer{}, charmlog.DebugLevel))

	result, err := buildGraph(ctx, fixtureConfig(t), &buildOpts{maxDepth: 4, maxPackages: 300})
	if err == nil {
		t.Fatal("buildGraph should fail when the context is already cancelled")
	}
	if result != nil {
		t.Errorf("result = %v, want nil on cancellation", result)
	}
}

func TestBuildGraphUnreachableRootFails(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.RepositoryURL = filepath.Join(t.TempDir(), "absent.json")

	ctx := withLogger(context.Background(), newLogger(&bytes.Buffer{}, charmlog.DebugLevel))
	if _, err := buildGraph(ctx, cfg, &buildOpts{maxDepth: 4, maxPackages: 300}); err == nil {
		t.Fatal("buildGraph should fail fast when the root cannot be fetched")
	}
}
