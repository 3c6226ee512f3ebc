// Package core has the scan pipeline and the analyses built on top of it.
package core

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/schema"
)

// noValueToken guards against file walkers that render a missing name as
// the language's no-value placeholder.
const noValueToken = "<nil>"

// ScanLocations walks the repository tree and lazily yields a
// LocationContext for every surviving file. Files under an ignored
// directory name (at any depth) are pruned, files with an ignored
// extension are skipped, and enumeration stops once the configured file
// limit of surviving files has been reached. Traversal errors are yielded
// to the caller and end the sequence.
func ScanLocations(cfg *contract.Config) iter.Seq2[schema.LocationContext, error] {
	return func(yield func(schema.LocationContext, error) bool) {
		count := 0
		err := filepath.WalkDir(cfg.RepoPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != cfg.RepoPath && slices.Contains(cfg.IgnoreDirs, name) {
					return fs.SkipDir
				}
				return nil
			}
			if name == noValueToken {
				return nil
			}
			if slices.Contains(cfg.IgnoreFileTypes, strings.ToLower(filepath.Ext(name))) {
				return nil
			}

			rel, relErr := filepath.Rel(cfg.RepoPath, filepath.Dir(path))
			if relErr != nil {
				return relErr
			}
			if rel == "." {
				rel = ""
			}
			loc := schema.LocationContext{
				Repository:     cfg.RepoPath,
				RepositoryPath: rel,
				FileName:       name,
			}
			if !yield(loc, nil) {
				return fs.SkipAll
			}
			count++
			if cfg.FileLimit > 0 && count >= cfg.FileLimit {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			yield(schema.LocationContext{}, err)
		}
	}
}
