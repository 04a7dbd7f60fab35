package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	require.Equal(t, "busybox", Sanitize("busybox"))
	require.Equal(t, "registry_example_com_team_app", Sanitize("registry.example.com/team/app"))
	require.Equal(t, "linux_amd64", Sanitize("linux/amd64"))
	require.Equal(t, "1_36_1", Sanitize("1.36.1"))
	require.Equal(t, "localhost_5000_app", Sanitize("localhost:5000/app"))
}

func TestDistinctKeysGetDistinctPaths(t *testing.T) {
	keys := []PinKey{
		{Image: "busybox", Platform: "linux/amd64", Tag: "1"},
		{Image: "busybox", Platform: "linux/amd64", Tag: "1.36"},
		{Image: "busybox", Platform: "linux/arm64", Tag: "1"},
		{Image: "library/busybox", Platform: "linux/amd64", Tag: "1"},
		{Image: "registry.example.com/busybox", Platform: "linux/amd64", Tag: "1"},
	}
	seen := map[string]bool{}
	for _, key := range keys {
		path := key.Path("root")
		require.False(t, seen[path], "collision on %s", path)
		seen[path] = true
	}
}

func TestVersionKeyPath(t *testing.T) {
	key := VersionKey{Strategy: "major", Image: "busybox", Platform: "linux/amd64"}
	require.Equal(t, filepath.Join("root", "major", "busybox", "linux_amd64", "Dockerfile"), key.Path("root"))

	key = VersionKey{Strategy: "major-minor", Image: "registry.example.com/team/app", Platform: "linux/arm64"}
	require.Equal(t, filepath.Join("root", "major-minor", "registry_example_com_team_app", "linux_arm64", "Dockerfile"), key.Path("root"))
}

func TestPinKeyPath(t *testing.T) {
	key := PinKey{Image: "busybox", Platform: "linux/amd64", Tag: "1.36"}
	require.Equal(t, filepath.Join("root", "busybox", "linux_amd64", "1_36", "Dockerfile"), key.Path("root"))
}

func TestRoots(t *testing.T) {
	require.Equal(t, filepath.Join("proj", "_dockerfiles", "versions"), VersionsRoot("proj"))
	require.Equal(t, filepath.Join("proj", "_dockerfiles", "pins"), PinsRoot("proj"))
}

func TestWalkDockerfiles(t *testing.T) {
	root := t.TempDir()

	a := filepath.Join(root, "major", "busybox", "linux_amd64", "Dockerfile")
	b := filepath.Join(root, "major", "alpine", "linux_amd64", "Dockerfile")
	for _, path := range []string{a, b} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("FROM busybox:1\n"), 0o644))
	}
	// Files not named Dockerfile are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "major", "README.md"), []byte("x"), 0o644))

	paths, err := WalkDockerfiles(root)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a, b}, paths)
}

func TestWalkDockerfilesMissingRoot(t *testing.T) {
	paths, err := WalkDockerfiles(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, paths)
}
