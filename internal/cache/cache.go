// Package cache persists a lightweight per-file status record keyed by
// content hash. Not a cache of the syntax tree itself (an arena of
// in-memory node indices does not outlive one process, and §4's own
// per-Compilation ownership model gives no reuse opportunity across runs),
// but a cache of the result of having compiled a file before, so a
// repeated run over an unchanged tree of files can report "still clean" or
// "still broken" without re-reading and re-lexing the ones nothing has
// touched.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion is bumped whenever Payload's shape changes, so an older
// cache on disk is invalidated wholesale rather than decoded incorrectly.
const schemaVersion uint16 = 1

// Digest is a SHA-256 content hash, used both as the cache key and as the
// freshness check: a Payload whose ContentHash no longer matches the
// file's current content is treated as absent.
type Digest [32]byte

// HashContent returns the SHA-256 digest of content.
func HashContent(content []byte) Digest {
	return Digest(sha256.Sum256(content))
}

// DiagnosticSummary records one cached diagnostic without its full
// message text, enough to report "this file had 2 errors last time"
// without re-running the phase that found them.
type DiagnosticSummary struct {
	Severity uint8
	Code     uint16
	Line     uint32
	Column   uint32
}

// Payload is what gets persisted for one source file.
type Payload struct {
	Schema      uint16
	Path        string
	ContentHash Digest
	Diagnostics []DiagnosticSummary
	HasErrors   bool
}

// Disk is a thread-safe, content-hash-keyed store of Payload values under
// one directory: msgpack-encoded, atomic temp-file-then-rename writes, one
// file per key.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a Disk cache rooted at dir, creating it if necessary. A
// caller not wanting a project-local cache can pass a directory under
// os.UserCacheDir() instead.
func Open(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

// DefaultDir returns $XDG_CACHE_HOME/svfront, or ~/.cache/svfront when
// XDG_CACHE_HOME is unset, the usual XDG base-directory convention.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "svfront"), nil
}

func (d *Disk) pathFor(key Digest) string {
	return filepath.Join(d.dir, hex.EncodeToString(key[:])+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (d *Disk) Put(key Digest, payload *Payload) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	payload.Schema = schemaVersion
	p := d.pathFor(key)
	f, err := os.CreateTemp(d.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads the payload stored under key, reporting false (with no error)
// if the cache has no entry, a stale schema, or the content hash no
// longer matches key itself.
func (d *Disk) Get(key Digest) (*Payload, bool, error) {
	if d == nil {
		return nil, false, nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	f, err := os.Open(d.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != schemaVersion || payload.ContentHash != key {
		return nil, false, nil
	}
	return &payload, true, nil
}
