// Package pipeline orchestrates a whole-project compilation run: resolving
// `include operands against a real filesystem, lexing/preprocessing/
// parsing every top-level source file, and feeding the resulting syntax
// trees into one shared compilation.Compilation for the single-threaded
// elaboration phase §5 requires. Independent files are preprocessed and
// parsed concurrently — nothing is shared between them until they are
// added to the Compilation — the same per-file independence that makes
// directory-wide tokenize/parse parallelism safe.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"svfront/internal/cache"
	"svfront/internal/compilation"
	"svfront/internal/diag"
	"svfront/internal/parser"
	"svfront/internal/preprocess"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// Options configures a Run.
type Options struct {
	// IncludeDirs is searched, in order, after the including file's own
	// directory, for every `include operand not found there.
	IncludeDirs []string
	// Predefine installs text macros before the first token of every
	// file is pulled, as if by a `+define+NAME=VALUE` command-line
	// switch; PredefineFiles parallels preprocess.Options.PredefineFiles.
	Predefine      map[string]string
	PredefineFiles map[string]string
	KeywordVersion token.KeywordVersion
	MaxIncludeDepth int
	// Jobs bounds concurrent preprocess+parse workers; zero uses
	// runtime.GOMAXPROCS(0).
	Jobs int
	// MaxDiagnostics bounds the per-file diagnostics bag before a file's
	// own phase falls silent.
	MaxDiagnostics int
	// Cache, if non-nil, is updated after every file this run compiles
	// with a content-hash-keyed status summary (see package cache) that
	// a separate status-reporting command can read back without running
	// the pipeline at all; a syntax tree's node arena does not survive a
	// process boundary, so a Run always re-lexes and re-parses every
	// path regardless of what Cache already holds.
	Cache *cache.Disk
	// OnProgress, if non-nil, is called from whichever goroutine finishes
	// each file's preprocess+parse, reporting how many of the total have
	// completed so far. Callers with more than a couple of files can feed
	// this into diagfmt.Progress for a live counter.
	OnProgress func(done, total int, path string)
}

// FileResult is one source file's outcome.
type FileResult struct {
	Path   string
	Buffer sourcemap.BufferID
	Tree   *syntax.Tree
	Bag    *diag.Bag
}

// Run preprocesses and parses every path concurrently, then adds every
// resulting tree to c in a fixed (sorted-by-path) order so elaboration
// diagnostics are reproducible across runs regardless of goroutine
// scheduling, and returns one FileResult per input path in that same
// order.
func Run(ctx context.Context, c *compilation.Compilation, sm *sourcemap.SourceMap, paths []string, opts Options) ([]FileResult, error) {
	var timer Timer
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	results := make([]FileResult, len(sorted))
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var runErr error
	var completed int
	var progressMu sync.Mutex
	timer.Phase("preprocess+parse", func() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(sorted)))

		for i, path := range sorted {
			i, path := i, path
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				res, err := compileOne(sm, path, opts)
				if err != nil {
					return err
				}
				results[i] = res
				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(sorted), path)
					progressMu.Unlock()
				}
				return nil
			})
		}
		runErr = g.Wait()
	})
	if runErr != nil {
		return results, runErr
	}

	timer.Phase("elaborate", func() {
		for i := range results {
			// A file that failed to load has no tree but still carries its
			// IOLoadFileError bag, so merge before skipping it.
			if results[i].Bag != nil {
				c.Bag().Merge(results[i].Bag)
			}
			if results[i].Tree == nil {
				continue
			}
			if err := c.AddSyntaxTree(results[i].Tree, results[i].Buffer); err != nil {
				runErr = fmt.Errorf("pipeline: %s: %w", results[i].Path, err)
				return
			}
		}
		c.GetRoot()
	})
	timer.AppendDiagnostic(c.Bag())
	return results, runErr
}

func compileOne(sm *sourcemap.SourceMap, path string, opts Options) (FileResult, error) {
	id, err := sm.Load(path)
	if err != nil {
		bag := diag.NewBag(1)
		bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "failed to load file: " + err.Error()})
		return FileResult{Path: path, Bag: bag}, nil
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 200
	}
	bag := diag.NewBag(maxDiag)
	reporter := &diag.BagReporter{Bag: bag}

	pp := preprocess.New(sm, id, preprocess.Options{
		Reporter:        reporter,
		IncludeResolver: &osIncludeResolver{includeDirs: opts.IncludeDirs, fromDir: filepath.Dir(path)},
		KeywordVersion:  opts.KeywordVersion,
		MaxIncludeDepth: opts.MaxIncludeDepth,
		Predefine:       opts.Predefine,
		PredefineFiles:  opts.PredefineFiles,
	})
	p := parser.New(pp, nil, parser.Options{Reporter: reporter})
	tree := p.ParseCompilationUnit()

	if opts.Cache != nil {
		summaries := make([]cache.DiagnosticSummary, 0, len(bag.Items()))
		for _, d := range bag.Items() {
			summaries = append(summaries, cache.DiagnosticSummary{Severity: uint8(d.Severity), Code: uint16(d.Code)})
		}
		key := cache.HashContent(sm.Get(id).Content)
		_ = opts.Cache.Put(key, &cache.Payload{
			Path:        path,
			ContentHash: key,
			Diagnostics: summaries,
			HasErrors:   bag.HasErrors(),
		})
	}

	return FileResult{Path: path, Buffer: id, Tree: tree, Bag: bag}, nil
}

// osIncludeResolver resolves `` `include `` operands against the real
// filesystem: the including file's own directory first, then each of
// IncludeDirs in order, mirroring how a real toolchain's `-I` search path
// behaves.
type osIncludeResolver struct {
	includeDirs []string
	fromDir     string
}

func (r *osIncludeResolver) Resolve(spec preprocess.IncludeSpec) (string, []byte, bool) {
	candidates := append([]string{r.fromDir}, r.includeDirs...)
	for _, dir := range candidates {
		full := filepath.Join(dir, spec.Name)
		content, err := os.ReadFile(full) // #nosec G304 -- operand is source text, search path is caller-configured
		if err == nil {
			return full, content, true
		}
	}
	return "", nil, false
}
