package mirror

import (
	"github.com/pinsync/pinsync/pkg/catalog"
	"github.com/pinsync/pinsync/pkg/dockerfile"
	"github.com/pinsync/pinsync/pkg/layout"
	"github.com/pinsync/pinsync/pkg/reconcile"
	"github.com/pinsync/pinsync/pkg/util/console"
)

// Pins reconciles the pins tree: one Dockerfile per (image, platform, tag)
// referenced either by the catalog's initial tags (all strategies, all tags)
// or by the tag currently named in any version Dockerfile. A version file
// whose tag has not been filled in yet contributes nothing. New pins are
// written tag-only; the digest an external actor appends later is preserved
// because expected files are never rewritten. A pin no longer referenced by
// either source is an orphan and is removed together with any directories
// the removal leaves empty.
func Pins(cat catalog.Catalog, projectDir string) (*reconcile.Result, error) {
	root := layout.PinsRoot(projectDir)

	expected := make(map[string]string)
	add := func(ref dockerfile.Reference) {
		key := layout.PinKey{Image: ref.Image, Platform: ref.Platform, Tag: ref.Tag}
		path := key.Path(root)
		if _, ok := expected[path]; !ok {
			expected[path] = ref.Directive()
		}
	}

	for _, spec := range cat {
		for _, tag := range spec.AllInitialTags() {
			for _, platform := range spec.Platforms {
				add(dockerfile.Reference{Platform: platform, Image: spec.Image, Tag: tag})
			}
		}
	}

	versionFiles, err := layout.WalkDockerfiles(layout.VersionsRoot(projectDir))
	if err != nil {
		return nil, err
	}
	for _, path := range versionFiles {
		ref, ok, err := dockerfile.ParseFile(path)
		if err != nil {
			console.Warnf("Skipping unreadable version file: %s", err)
			continue
		}
		if !ok || ref.Tag == "" {
			// No tag yet; the update bot hasn't filled it in.
			console.Debugf("Version file %s has no tagged reference yet", path)
			continue
		}
		add(ref.WithDefaults())
	}

	existing, err := layout.WalkDockerfiles(root)
	if err != nil {
		return nil, err
	}

	return reconcile.Tree(root, expected, existing)
}
