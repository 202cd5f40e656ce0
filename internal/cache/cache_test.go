package cache_test

import (
	"testing"

	"svfront/internal/cache"
)

func TestDiskPutGetRoundTrip(t *testing.T) {
	d, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := cache.HashContent([]byte("module m; endmodule"))
	payload := &cache.Payload{
		Path:        "m.sv",
		ContentHash: key,
		Diagnostics: []cache.DiagnosticSummary{{Severity: 2, Code: 2001, Line: 1, Column: 5}},
		HasErrors:   true,
	}
	if err := d.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := d.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if got.Path != "m.sv" || !got.HasErrors || len(got.Diagnostics) != 1 {
		t.Fatalf("unexpected payload round-trip: %+v", got)
	}
}

func TestDiskGetMissOnUnknownKey(t *testing.T) {
	d, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, ok, err := d.Get(cache.HashContent([]byte("never written")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for a key never Put")
	}
}

func TestDiskGetMissOnContentHashMismatch(t *testing.T) {
	d, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	oldKey := cache.HashContent([]byte("old content"))
	d.Put(oldKey, &cache.Payload{Path: "m.sv", ContentHash: oldKey})

	// Simulate the same file changing: a caller re-hashing the new
	// content and looking that up finds nothing, even though the old
	// entry is still on disk under its own (different) key.
	newKey := cache.HashContent([]byte("new content"))
	_, ok, err := d.Get(newKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for unrelated content")
	}
}

func TestNilDiskIsANoOp(t *testing.T) {
	var d *cache.Disk
	if err := d.Put(cache.Digest{}, &cache.Payload{}); err != nil {
		t.Fatalf("Put on nil Disk should be a no-op, got: %v", err)
	}
	_, ok, err := d.Get(cache.Digest{})
	if err != nil || ok {
		t.Fatalf("Get on nil Disk should miss cleanly, got ok=%v err=%v", ok, err)
	}
}
