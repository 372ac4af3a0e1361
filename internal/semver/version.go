package semver

import (
	"regexp"
	"strconv"

	modsemver "golang.org/x/mod/semver"
)

var versionRegex = regexp.MustCompile(
	`^(0|[1-9]\d*)(?:\.(0|[1-9]\d*))?(?:\.(0|[1-9]\d*))?(?:-([^+]*))?(?:\+(.*))?$`,
)

// SemanticVersion is an immutable SemVer 2.0 value. Use With() to derive
// a modified copy.
type SemanticVersion struct {
	major         int64
	minor         int64
	patch         int64
	preRelease    string
	buildMetadata string
}

// Zero is the 0.0.0 version.
var Zero = SemanticVersion{}

// New returns a release version without pre-release or build metadata.
// Negative parts are clamped to zero.
func New(major, minor, patch int64) SemanticVersion {
	return SemanticVersion{major: max(major, 0), minor: max(minor, 0), patch: max(patch, 0)}
}

func (v SemanticVersion) Major() int64          { return v.major }
func (v SemanticVersion) Minor() int64          { return v.minor }
func (v SemanticVersion) Patch() int64          { return v.patch }
func (v SemanticVersion) PreRelease() string    { return v.preRelease }
func (v SemanticVersion) BuildMetadata() string { return v.buildMetadata }

// HasPreRelease reports whether the version carries a pre-release label.
func (v SemanticVersion) HasPreRelease() bool { return v.preRelease != "" }

// HasBuildMetadata reports whether the version carries build metadata.
func (v SemanticVersion) HasBuildMetadata() bool { return v.buildMetadata != "" }

// TryParse attempts to parse a version string with an optional tag prefix regex.
func TryParse(s, tagPrefix string) (SemanticVersion, bool) {
	v, err := Parse(s, tagPrefix)
	if err != nil {
		return SemanticVersion{}, false
	}
	return v, true
}

// Parse parses a version string with an optional tag prefix regex.
// If tagPrefix is non-empty, the string must start with a match for the prefix.
// Missing minor and patch parts are treated as zero.
func Parse(s, tagPrefix string) (SemanticVersion, error) {
	remaining := s

	if tagPrefix != "" {
		prefixRegex, err := regexp.Compile("^(?:" + tagPrefix + ")")
		if err != nil {
			return SemanticVersion{}, &ParseError{Input: s, Reason: "invalid tag prefix regex: " + err.Error()}
		}
		loc := prefixRegex.FindStringIndex(remaining)
		if loc == nil {
			return SemanticVersion{}, &ParseError{Input: s, Reason: "does not match tag prefix " + strconv.Quote(tagPrefix)}
		}
		remaining = remaining[loc[1]:]
	}

	loc := versionRegex.FindStringSubmatchIndex(remaining)
	if loc == nil {
		return SemanticVersion{}, &ParseError{Input: s, Reason: "invalid version format"}
	}
	group := func(i int) (string, bool) {
		if loc[2*i] < 0 {
			return "", false
		}
		return remaining[loc[2*i]:loc[2*i+1]], true
	}

	var v SemanticVersion
	parts := []*int64{&v.major, &v.minor, &v.patch}
	for i, p := range parts {
		raw, ok := group(i + 1)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return SemanticVersion{}, &ParseError{Input: s, Reason: "number out of range: " + raw}
		}
		*p = n
	}

	if pre, ok := group(4); ok {
		if !validPreRelease(pre) {
			return SemanticVersion{}, &ParseError{Input: s, Reason: "invalid pre-release " + strconv.Quote(pre)}
		}
		v.preRelease = pre
	}
	if build, ok := group(5); ok {
		if !validBuildMetadata(build) {
			return SemanticVersion{}, &ParseError{Input: s, Reason: "invalid build metadata " + strconv.Quote(build)}
		}
		v.buildMetadata = build
	}

	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) SemanticVersion {
	v, err := Parse(s, "")
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or +1 following SemVer 2.0 precedence.
// Build metadata is ignored.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	if c := compareInt(v.major, other.major); c != 0 {
		return c
	}
	if c := compareInt(v.minor, other.minor); c != 0 {
		return c
	}
	if c := compareInt(v.patch, other.patch); c != 0 {
		return c
	}
	return modsemver.Compare(preReleaseProbe(v.preRelease), preReleaseProbe(other.preRelease))
}

// Equal reports whether both versions have the same precedence.
func (v SemanticVersion) Equal(other SemanticVersion) bool {
	return v.Compare(other) == 0
}

// Core returns "major.minor.patch".
func (v SemanticVersion) Core() string {
	return strconv.FormatInt(v.major, 10) + "." +
		strconv.FormatInt(v.minor, 10) + "." +
		strconv.FormatInt(v.patch, 10)
}

// SemVer returns the version without build metadata (e.g. "1.2.3-beta.4").
func (v SemanticVersion) SemVer() string {
	if v.preRelease != "" {
		return v.Core() + "-" + v.preRelease
	}
	return v.Core()
}

// String returns the full SemVer string including build metadata.
func (v SemanticVersion) String() string {
	if v.buildMetadata != "" {
		return v.SemVer() + "+" + v.buildMetadata
	}
	return v.SemVer()
}

// CoreVersion returns a copy of v without pre-release and build metadata.
func (v SemanticVersion) CoreVersion() SemanticVersion {
	return SemanticVersion{major: v.major, minor: v.minor, patch: v.patch}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// preReleaseProbe builds a version string that x/mod/semver can order by
// pre-release alone.
func preReleaseProbe(pre string) string {
	if pre == "" {
		return "v0.0.0"
	}
	return "v0.0.0-" + pre
}

func validPreRelease(pre string) bool {
	return pre != "" && modsemver.IsValid("v0.0.0-"+pre)
}

func validBuildMetadata(build string) bool {
	return build != "" && modsemver.IsValid("v0.0.0+"+build)
}
