// Package reconcile converges a filesystem tree onto a computed set of
// expected files. Both synchronizers run the same engine: compute what should
// exist, diff it against what does, remove orphans, create what's missing.
package reconcile

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pinsync/pinsync/pkg/util/console"
	"github.com/pinsync/pinsync/pkg/util/files"
)

// Result reports what a reconciliation run changed. Both slices are sorted;
// an idempotent re-run yields two empty slices.
type Result struct {
	Created []string
	Removed []string
}

// Changed reports whether the run modified the tree at all.
func (r *Result) Changed() bool {
	return len(r.Created) > 0 || len(r.Removed) > 0
}

// Tree converges the files under root onto expected, a map of absolute file
// path to content.
//
// Orphans (existing but not expected) are removed first, each followed by an
// upward prune of now-empty parent directories that stops at root, so a
// retired entry's stale directories never shadow a freshly created one.
// Files that are both expected and present are left untouched whatever their
// content; an external actor advances tags and appends digests in place, and
// that information must never be clobbered. Per-file filesystem races are
// warned about and skipped, never fatal: an interrupted or raced run leaves a
// tree the next run converges.
func Tree(root string, expected map[string]string, existing []string) (*Result, error) {
	result := &Result{}
	root = filepath.Clean(root)

	existingSet := make(map[string]bool, len(existing))
	for _, path := range existing {
		existingSet[filepath.Clean(path)] = true
	}

	var orphaned []string
	for path := range existingSet {
		if _, ok := expected[path]; !ok {
			orphaned = append(orphaned, path)
		}
	}
	sort.Strings(orphaned)

	for _, path := range orphaned {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				console.Warnf("Skipping removal of %s: already gone", path)
				continue
			}
			return nil, err
		}
		result.Removed = append(result.Removed, path)
		pruneEmptyDirs(filepath.Dir(path), root)
	}

	var missing []string
	for path := range expected {
		if !existingSet[path] {
			missing = append(missing, path)
		}
	}
	sort.Strings(missing)

	for _, path := range missing {
		// The walk may be stale: the file can appear between listing and
		// write. Whatever is there wins.
		exists, err := files.Exists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			console.Warnf("Skipping creation of %s: already exists", path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(expected[path]), 0o644); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, path)
	}

	return result, nil
}

// pruneEmptyDirs removes empty directories upward from dir, stopping at root
// or at the first non-empty directory.
func pruneEmptyDirs(dir, root string) {
	for dir != root {
		empty, err := files.IsEmpty(dir)
		if err != nil || !empty {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		console.Debugf("Removed empty directory %s", dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
