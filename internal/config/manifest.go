// Package config reads a project's svfront.toml manifest: the source file
// list, include search path, predefined macros, keyword version, and
// include-depth limit a pipeline run should use (§4.E's
// PreprocessorOptions.predefineSource supplement).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"svfront/internal/token"
)

// ErrPackageSectionMissing indicates a manifest has no [package] table.
var ErrPackageSectionMissing = errors.New("missing [package]")

// Predefine names a command-line-style text macro and, optionally, the
// synthetic file name diagnostics raised while lexing its body should
// report, mirroring the original implementation's
// PreprocessorOptions.predefineSource.
type Predefine struct {
	Name           string `toml:"name"`
	Text           string `toml:"text"`
	DiagnosticFile string `toml:"diagnostic_file"`
}

// Manifest is the parsed form of a project's svfront.toml.
type Manifest struct {
	Path string
	Root string

	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`

	Build struct {
		// Sources lists source files/globs relative to Root; empty means
		// "every *.sv/*.v/*.svh under Root".
		Sources []string `toml:"sources"`
		// IncludeDirs is searched, in order, for `include operands not
		// resolved relative to the including file.
		IncludeDirs []string `toml:"include_dirs"`
		// KeywordVersion names a §4.D keyword set: "1995", "2001",
		// "2001-noconfig", "2005", "2009", "2012", or "2017" (default).
		KeywordVersion string `toml:"keyword_version"`
		// MaxIncludeDepth overrides preprocess.DefaultMaxIncludeDepth.
		MaxIncludeDepth int `toml:"max_include_depth"`
	} `toml:"build"`

	Defines []Predefine `toml:"defines"`
}

// FindManifest walks up from startDir looking for svfront.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "svfront.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// LoadFromDir locates and parses the nearest ancestor svfront.toml.
func LoadFromDir(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

var keywordVersions = map[string]token.KeywordVersion{
	"":              token.KeywordsDefault,
	"1995":          token.KeywordsVerilog1995,
	"2001":          token.KeywordsVerilog2001,
	"2001-noconfig": token.KeywordsVerilog2001NoConfig,
	"2005":          token.KeywordsSystemVerilog2005,
	"2009":          token.KeywordsSystemVerilog2009,
	"2012":          token.KeywordsSystemVerilog2012,
	"2017":          token.KeywordsSystemVerilog2017,
}

// ResolveKeywordVersion translates the manifest's keyword_version string to
// a token.KeywordVersion, reporting false for an unrecognized spelling.
func (m *Manifest) ResolveKeywordVersion() (token.KeywordVersion, bool) {
	v, ok := keywordVersions[strings.ToLower(strings.TrimSpace(m.Build.KeywordVersion))]
	return v, ok
}

// PredefineMap returns the plain name->text map preprocess.Options.Predefine
// expects, plus the parallel diagnostic-file override map.
func (m *Manifest) PredefineMap() (map[string]string, map[string]string) {
	text := make(map[string]string, len(m.Defines))
	files := make(map[string]string, len(m.Defines))
	for _, d := range m.Defines {
		text[d.Name] = d.Text
		if d.DiagnosticFile != "" {
			files[d.Name] = d.DiagnosticFile
		}
	}
	return text, files
}

// ResolveSources expands Build.Sources (literal paths or filepath.Glob
// patterns) relative to Root; an empty list walks Root for every
// *.sv/*.svh/*.v file, mirroring how a project with no [build].sources
// entry still has something to compile.
func (m *Manifest) ResolveSources() ([]string, error) {
	if len(m.Build.Sources) == 0 {
		return walkDefaultSources(m.Root)
	}
	var out []string
	for _, pattern := range m.Build.Sources {
		full := filepath.Join(m.Root, filepath.FromSlash(pattern))
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid source pattern %q: %w", m.Path, pattern, err)
		}
		if matches == nil {
			return nil, fmt.Errorf("%s: source pattern %q matched no files", m.Path, pattern)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func walkDefaultSources(root string) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".sv", ".svh", ".v":
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to walk for sources: %w", root, err)
	}
	return out, nil
}

// IncludeDirs resolves Build.IncludeDirs relative to Root.
func (m *Manifest) IncludeDirs() []string {
	out := make([]string, 0, len(m.Build.IncludeDirs))
	for _, d := range m.Build.IncludeDirs {
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(d)))
	}
	return out
}
