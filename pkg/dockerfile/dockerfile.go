// Package dockerfile parses and renders the single-FROM directive files that
// make up the managed mirror tree.
package dockerfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pinsync/pinsync/pkg/global"
)

// fromPattern matches a FROM directive with optional platform, tag, digest and
// build-stage name. The keyword is case-insensitive; the digest is not, a
// sha256 hex string is lowercase by definition.
var fromPattern = regexp.MustCompile(`^(?i:FROM)\s+(?:--platform=(\S+)\s+)?([^\s@]+?)(?::([^\s@]+))?(?:@sha256:([a-f0-9]{64}))?\s*(?:(?i:AS)\s+.*)?$`)

// Reference is the structured form of one FROM directive. Platform and Tag
// are empty when the directive omits them; Digest is empty until an external
// actor has pinned the image, and never includes the "sha256:" prefix.
type Reference struct {
	Platform string
	Image    string
	Tag      string
	Digest   string
}

// Parse scans content line by line and returns the Reference described by the
// first matching FROM directive. ok is false when no line matches; that is
// not an error, the file simply carries no actionable reference yet.
func Parse(content string) (Reference, bool) {
	for _, line := range strings.Split(content, "\n") {
		m := fromPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return Reference{
			Platform: m[1],
			Image:    m[2],
			Tag:      m[3],
			Digest:   m[4],
		}, true
	}
	return Reference{}, false
}

// ParseFile reads path and parses it. The returned error is a read error
// only; a readable file with no FROM line yields ok == false and a nil error.
func ParseFile(path string) (Reference, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Reference{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	ref, ok := Parse(string(content))
	return ref, ok, nil
}

// WithDefaults returns a copy with absent platform and tag filled in. Callers
// that need to distinguish "not yet specified" must not use this.
func (r Reference) WithDefaults() Reference {
	if r.Platform == "" {
		r.Platform = global.DefaultPlatform
	}
	if r.Tag == "" {
		r.Tag = global.DefaultTag
	}
	return r
}

// Directive renders the FROM line written into generated Dockerfiles. The
// digest is never rendered; digests are appended in place by an external bot
// and generated files must start without one.
func (r Reference) Directive() string {
	var b strings.Builder
	b.WriteString("FROM ")
	if r.Platform != "" {
		fmt.Fprintf(&b, "--platform=%s ", r.Platform)
	}
	b.WriteString(r.Image)
	if r.Tag != "" {
		b.WriteString(":" + r.Tag)
	}
	b.WriteString("\n")
	return b.String()
}

// String renders the fully-qualified reference, e.g.
// "busybox:1@sha256:ab...". Tag and digest are omitted when absent.
func (r Reference) String() string {
	s := r.Image
	if r.Tag != "" {
		s += ":" + r.Tag
	}
	if r.Digest != "" {
		s += "@sha256:" + r.Digest
	}
	return s
}
