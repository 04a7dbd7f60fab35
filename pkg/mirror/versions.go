// Package mirror implements the two synchronizers that keep the versions and
// pins trees converged with the image catalog.
package mirror

import (
	"github.com/pinsync/pinsync/pkg/catalog"
	"github.com/pinsync/pinsync/pkg/dockerfile"
	"github.com/pinsync/pinsync/pkg/layout"
	"github.com/pinsync/pinsync/pkg/reconcile"
)

// Versions reconciles the versions tree against the catalog: one Dockerfile
// per (strategy, image, platform) for every strategy with at least one
// declared initial tag, seeded with the first tag of that strategy. Existing
// files are never rewritten, so a tag advanced in place by the update bot
// survives every run.
func Versions(cat catalog.Catalog, projectDir string) (*reconcile.Result, error) {
	root := layout.VersionsRoot(projectDir)

	expected := make(map[string]string)
	for _, spec := range cat {
		for _, strategy := range catalog.Strategies() {
			tags := spec.InitialTags(strategy)
			if len(tags) == 0 {
				continue
			}
			for _, platform := range spec.Platforms {
				key := layout.VersionKey{Strategy: string(strategy), Image: spec.Image, Platform: platform}
				ref := dockerfile.Reference{Platform: platform, Image: spec.Image, Tag: tags[0]}
				expected[key.Path(root)] = ref.Directive()
			}
		}
	}

	existing, err := layout.WalkDockerfiles(root)
	if err != nil {
		return nil, err
	}

	return reconcile.Tree(root, expected, existing)
}
