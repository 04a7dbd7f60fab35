package catalog

import (
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/hashicorp/go-version"

	"github.com/pinsync/pinsync/pkg/util/slices"
)

// knownOS is the set of operating systems that appear in OCI platform
// strings. Anything else in a catalog is a typo until proven otherwise.
var knownOS = []string{"linux", "windows", "darwin", "freebsd"}

// segmentsPerStrategy is how many dotted version segments a tag must carry to
// match its strategy's granularity.
var segmentsPerStrategy = map[Strategy]int{
	StrategyMajor:           1,
	StrategyMajorMinor:      2,
	StrategyMajorMinorPatch: 3,
}

// Validate checks the catalog for the mistakes humans make when editing it by
// hand: unparsable image names, malformed platforms, duplicate images, empty
// platform lists, and tags whose granularity does not match their strategy.
// It returns one finding per problem; an empty slice means the catalog is
// clean.
func (c Catalog) Validate() []string {
	var findings []string
	seen := map[string]bool{}

	for i, spec := range c {
		where := fmt.Sprintf("images[%d] (%s)", i, spec.Image)

		if spec.Image == "" {
			findings = append(findings, fmt.Sprintf("%s: image must not be empty", where))
			continue
		}
		if _, err := name.NewRepository(spec.Image); err != nil {
			findings = append(findings, fmt.Sprintf("%s: not a valid repository reference: %s", where, err))
		}
		if seen[spec.Image] {
			findings = append(findings, fmt.Sprintf("%s: duplicate catalog entry", where))
		}
		seen[spec.Image] = true

		if len(spec.Platforms) == 0 {
			findings = append(findings, fmt.Sprintf("%s: at least one platform is required", where))
		}
		for _, platform := range spec.Platforms {
			if err := validatePlatform(platform); err != nil {
				findings = append(findings, fmt.Sprintf("%s: %s", where, err))
			}
		}

		hasTags := false
		for _, strategy := range Strategies() {
			for _, tag := range spec.InitialTags(strategy) {
				hasTags = true
				if err := validateTag(tag, strategy); err != nil {
					findings = append(findings, fmt.Sprintf("%s: %s", where, err))
				}
			}
		}
		if !hasTags {
			findings = append(findings, fmt.Sprintf("%s: no initial tags declared for any strategy", where))
		}
	}

	return findings
}

func validatePlatform(platform string) error {
	parts := strings.Split(platform, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("platform %q is not of the form os/arch", platform)
	}
	if !slices.ContainsString(knownOS, parts[0]) {
		return fmt.Errorf("platform %q has unknown os %q", platform, parts[0])
	}
	return nil
}

func validateTag(tag string, strategy Strategy) error {
	if _, err := version.NewVersion(tag); err != nil {
		return fmt.Errorf("tag %q is not a parsable version: %s", tag, err)
	}
	if got, want := coreSegments(tag), segmentsPerStrategy[strategy]; got != want {
		return fmt.Errorf("tag %q has %d version segment(s), strategy %s wants %d", tag, got, strategy, want)
	}
	return nil
}

// coreSegments counts the dotted segments of the version core, ignoring any
// prerelease or build suffix ("1.27-alpine" has two).
func coreSegments(tag string) int {
	core := tag
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") + 1
}
