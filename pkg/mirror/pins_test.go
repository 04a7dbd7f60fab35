package mirror

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pinsync/pinsync/pkg/catalog"
)

const testDigest = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func writeVersionFile(t *testing.T, dir, strategy, image, platform, content string) string {
	t.Helper()
	path := filepath.Join(dir, "_dockerfiles", "versions", strategy, image, platform, "Dockerfile")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func pinPath(dir, image, platform, tag string) string {
	return filepath.Join(dir, "_dockerfiles", "pins", image, platform, tag, "Dockerfile")
}

func TestPinsSeedsFromCatalogInitialTags(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.Catalog{
		{
			Image:             "busybox",
			Platforms:         []string{"linux/amd64"},
			InitialMajor:      []string{"1"},
			InitialMajorMinor: []string{"1.36"},
		},
	}

	result, err := Pins(cat, dir)
	require.NoError(t, err)
	require.Len(t, result.Created, 2)

	require.Equal(t, "FROM --platform=linux/amd64 busybox:1\n", readFile(t, pinPath(dir, "busybox", "linux_amd64", "1")))
	require.Equal(t, "FROM --platform=linux/amd64 busybox:1.36\n", readFile(t, pinPath(dir, "busybox", "linux_amd64", "1_36")))
}

func TestPinsSeedsFromVersionsTree(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.Catalog{
		{Image: "busybox", Platforms: []string{"linux/amd64"}, InitialMajor: []string{"1"}},
	}

	// The update bot has advanced the version file past the initial tag.
	writeVersionFile(t, dir, "major", "busybox", "linux_amd64",
		"FROM --platform=linux/amd64 busybox:2\n")

	result, err := Pins(cat, dir)
	require.NoError(t, err)
	require.Len(t, result.Created, 2)

	// Union of catalog-declared and version-observed tags.
	require.FileExists(t, pinPath(dir, "busybox", "linux_amd64", "1"))
	require.FileExists(t, pinPath(dir, "busybox", "linux_amd64", "2"))
}

func TestPinsIgnoresUntaggedVersionFiles(t *testing.T) {
	dir := t.TempDir()

	// Not yet bumped by the update bot: no tag, nothing to pin.
	writeVersionFile(t, dir, "major", "busybox", "linux_amd64", "FROM busybox\n")

	result, err := Pins(catalog.Catalog{}, dir)
	require.NoError(t, err)
	require.False(t, result.Changed())
}

func TestPinsToleratesVersionFileWithoutFROM(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.Catalog{
		{Image: "busybox", Platforms: []string{"linux/amd64"}, InitialMajor: []string{"1"}},
	}
	writeVersionFile(t, dir, "major", "alpine", "linux_amd64", "# placeholder\n")

	result, err := Pins(cat, dir)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
}

func TestPinsDefaultsPlatformFromVersionFile(t *testing.T) {
	dir := t.TempDir()
	writeVersionFile(t, dir, "major", "busybox", "linux_amd64", "FROM busybox:3\n")

	_, err := Pins(catalog.Catalog{}, dir)
	require.NoError(t, err)

	require.Equal(t, "FROM --platform=linux/amd64 busybox:3\n", readFile(t, pinPath(dir, "busybox", "linux_amd64", "3")))
}

func TestPinsNeverRewritesPinnedDigests(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.Catalog{
		{Image: "busybox", Platforms: []string{"linux/amd64"}, InitialMajor: []string{"1"}},
	}

	_, err := Pins(cat, dir)
	require.NoError(t, err)

	// The external bot pins the digest in place.
	path := pinPath(dir, "busybox", "linux_amd64", "1")
	pinned := "FROM --platform=linux/amd64 busybox:1@sha256:" + testDigest + "\n"
	require.NoError(t, os.WriteFile(path, []byte(pinned), 0o644))

	result, err := Pins(cat, dir)
	require.NoError(t, err)
	require.False(t, result.Changed())
	require.Equal(t, pinned, readFile(t, path))
}

func TestPinsRemovesAllPinsOfRetiredImage(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.Catalog{
		{
			Image:             "busybox",
			Platforms:         []string{"linux/amd64", "linux/arm64"},
			InitialMajor:      []string{"1"},
			InitialMajorMinor: []string{"1.36"},
		},
		{Image: "alpine", Platforms: []string{"linux/amd64"}, InitialMajor: []string{"3"}},
	}

	_, err := Pins(cat, dir)
	require.NoError(t, err)

	// Remove busybox from the catalog entirely: every one of its pins is
	// orphaned transitively, digest or not.
	result, err := Pins(cat[1:], dir)
	require.NoError(t, err)
	require.Len(t, result.Removed, 4)

	_, err = os.Stat(filepath.Join(dir, "_dockerfiles", "pins", "busybox"))
	require.True(t, os.IsNotExist(err), "retired image's pin directories must be pruned")
	require.FileExists(t, pinPath(dir, "alpine", "linux_amd64", "3"))
}

func TestPinsIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.Catalog{
		{Image: "busybox", Platforms: []string{"linux/amd64"}, InitialMajor: []string{"1"}},
	}
	writeVersionFile(t, dir, "major", "busybox", "linux_amd64",
		"FROM --platform=linux/amd64 busybox:2\n")

	first, err := Pins(cat, dir)
	require.NoError(t, err)
	require.True(t, first.Changed())

	second, err := Pins(cat, dir)
	require.NoError(t, err)
	require.False(t, second.Changed())
}
