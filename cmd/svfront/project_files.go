package main

import (
	"os"
	"path/filepath"
)

// resolveInputs expands a single CLI operand into the list of source files
// a command should run over: the path itself if it names a file, or every
// *.sv/*.svh/*.v file beneath it if it names a directory.
func resolveInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var out []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(p) {
		case ".sv", ".svh", ".v":
			out = append(out, p)
		}
		return nil
	})
	return out, err
}
