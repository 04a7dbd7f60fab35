// Package layout maps catalog keys onto the filesystem tree shared by the
// synchronizers and the digest harvester. All three must agree on tree shape,
// so the encoding lives here and nowhere else.
package layout

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pinsync/pinsync/pkg/global"
)

// DockerfileName is the leaf filename of every managed directive file.
const DockerfileName = "Dockerfile"

// sanitizer substitutes every filesystem-unsafe character with an underscore.
// The substitution is applied uniformly to images, platforms and tags so two
// distinct keys can never sanitize to the same path.
var sanitizer = strings.NewReplacer("/", "_", ":", "_", ".", "_")

// Sanitize converts an image name, platform or tag to a filesystem-safe path
// segment. Deterministic and total: same input, same output, no failure path.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// VersionsRoot returns the root of the versions tree for a project.
func VersionsRoot(projectDir string) string {
	return filepath.Join(projectDir, global.DockerfilesDir, "versions")
}

// PinsRoot returns the root of the pins tree for a project.
func PinsRoot(projectDir string) string {
	return filepath.Join(projectDir, global.DockerfilesDir, "pins")
}

// VersionKey identifies one version Dockerfile: a tracked (strategy, image,
// platform) triple.
type VersionKey struct {
	Strategy string
	Image    string
	Platform string
}

// Path returns the canonical location of the key's Dockerfile under root.
func (k VersionKey) Path(root string) string {
	return filepath.Join(root, k.Strategy, Sanitize(k.Image), Sanitize(k.Platform), DockerfileName)
}

// PinKey identifies one pin Dockerfile: a concrete (image, platform, tag)
// triple.
type PinKey struct {
	Image    string
	Platform string
	Tag      string
}

// Path returns the canonical location of the key's Dockerfile under root.
func (k PinKey) Path(root string) string {
	return filepath.Join(root, Sanitize(k.Image), Sanitize(k.Platform), Sanitize(k.Tag), DockerfileName)
}

// WalkDockerfiles lists every Dockerfile under root, in lexical walk order.
// A missing root is an empty tree, not an error.
func WalkDockerfiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() && d.Name() == DockerfileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
