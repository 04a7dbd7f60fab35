// Package digest builds the pinned digest index from the pins tree.
package digest

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/pinsync/pinsync/pkg/dockerfile"
	"github.com/pinsync/pinsync/pkg/layout"
	"github.com/pinsync/pinsync/pkg/util/console"
	"github.com/pinsync/pinsync/pkg/util/files"
)

// Index is the canonical digest index: image -> tag -> platform ->
// fully-qualified reference. Only pins that already carry a digest appear.
type Index map[string]map[string]map[string]string

// Stats reports what a harvest saw: entries included in the index and
// entries skipped because no digest has been filled in yet.
type Stats struct {
	Included int
	Skipped  int
}

// Images returns how many distinct images the index covers.
func (idx Index) Images() int {
	return len(idx)
}

// Harvest walks every pin Dockerfile under projectDir and rebuilds the index
// from scratch. Pins without a digest, files without a FROM line, and
// references that fail validation are skipped with the walk continuing; the
// external actor fills digests in on its own schedule and a later run picks
// them up.
func Harvest(projectDir string) (Index, *Stats, error) {
	pinFiles, err := layout.WalkDockerfiles(layout.PinsRoot(projectDir))
	if err != nil {
		return nil, nil, err
	}

	index := Index{}
	stats := &Stats{}

	for _, path := range pinFiles {
		ref, ok, err := dockerfile.ParseFile(path)
		if err != nil {
			console.Warnf("Skipping unreadable pin file: %s", err)
			stats.Skipped++
			continue
		}
		if !ok || ref.Digest == "" {
			console.Debugf("Skipping %s: no digest yet", path)
			stats.Skipped++
			continue
		}

		ref = ref.WithDefaults()
		reference := ref.String()
		if _, err := name.ParseReference(reference); err != nil {
			console.Warnf("Skipping %s: %s", path, err)
			stats.Skipped++
			continue
		}

		if index[ref.Image] == nil {
			index[ref.Image] = map[string]map[string]string{}
		}
		if index[ref.Image][ref.Tag] == nil {
			index[ref.Image][ref.Tag] = map[string]string{}
		}
		index[ref.Image][ref.Tag][ref.Platform] = reference
		stats.Included++
	}

	return index, stats, nil
}

// WriteFile serializes the index to path with sorted keys and stable
// indentation, so identical tree state always produces byte-identical
// output. The file is only touched when its content would change.
func (idx Index) WriteFile(path string) error {
	contents, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize digest index: %w", err)
	}
	return files.WriteIfDifferent(path, string(contents)+"\n")
}
