package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"svfront/internal/cache"
	"svfront/internal/compilation"
	"svfront/internal/pipeline"
	"svfront/internal/sourcemap"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestRunParsesIndependentFilesAndElaboratesOnce(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.sv", "module a; endmodule\n")
	b := writeFile(t, dir, "b.sv", "module b; endmodule\n")

	sm := sourcemap.New()
	c := compilation.New(sm)

	results, err := pipeline.Run(context.Background(), c, sm, []string{a, b}, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Tree == nil {
			t.Fatalf("%s: expected a non-nil tree", r.Path)
		}
	}

	names := c.TopLevelInstances()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("got top-level instances %v, want [a b]", names)
	}
}

func TestRunSurfacesMissingFileAsDiagnosticNotError(t *testing.T) {
	dir := t.TempDir()
	sm := sourcemap.New()
	c := compilation.New(sm)

	_, err := pipeline.Run(context.Background(), c, sm, []string{filepath.Join(dir, "missing.sv")}, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run should not fail the whole batch on one missing file: %v", err)
	}
	if !c.Bag().HasErrors() {
		t.Error("expected an IOLoadFileError diagnostic for the missing file")
	}
}

func TestRunPopulatesCacheWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.sv", "module a; endmodule\n")

	disk, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}

	sm := sourcemap.New()
	c := compilation.New(sm)
	if _, err := pipeline.Run(context.Background(), c, sm, []string{a}, pipeline.Options{Cache: disk}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	content, err := os.ReadFile(a)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	key := cache.HashContent(content)
	payload, ok, err := disk.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected the cache to hold a status entry for the compiled file")
	}
	if payload.HasErrors {
		t.Error("a clean module should not be cached as having errors")
	}
}

func TestRunReportsProgress(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.sv", "module a; endmodule\n")
	b := writeFile(t, dir, "b.sv", "module b; endmodule\n")

	sm := sourcemap.New()
	c := compilation.New(sm)

	var calls int
	var lastDone, lastTotal int
	opts := pipeline.Options{
		OnProgress: func(done, total int, path string) {
			calls++
			lastDone, lastTotal = done, total
		},
	}
	if _, err := pipeline.Run(context.Background(), c, sm, []string{a, b}, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 progress callbacks, got %d", calls)
	}
	if lastDone != 2 || lastTotal != 2 {
		t.Fatalf("expected final callback to report 2/2, got %d/%d", lastDone, lastTotal)
	}
}
