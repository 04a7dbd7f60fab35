package global

var (
	Version   = "0.0.1"
	BuildTime = "none"
	Verbose   = false

	// CatalogFilename is the declarative source of truth listing images,
	// platforms and initial tags per version strategy.
	CatalogFilename = "images.json"
	// CatalogYAMLFilename is accepted as a fallback when no JSON catalog exists.
	CatalogYAMLFilename = "images.yaml"
	// DigestsFilename is where the harvested digest index is written.
	DigestsFilename = "digests.json"

	// DockerfilesDir is the root of the managed mirror, relative to the project dir.
	DockerfilesDir = "_dockerfiles"

	// DefaultPlatform and DefaultTag fill in directives that omit them.
	DefaultPlatform = "linux/amd64"
	DefaultTag      = "latest"
)
