package semver

// Builder derives a new SemanticVersion from an existing one.
// Setters chain; ToVersion validates and produces the value.
//
// Changing any of major, minor or patch drops the pre-release and build
// metadata of the seed unless they are set again on the same builder.
type Builder struct {
	major, minor, patch int64
	preRelease          string
	buildMetadata       string

	coreChanged   bool
	preReleaseSet bool
	buildSet      bool
}

// With returns a builder seeded with the fields of v.
func (v SemanticVersion) With() *Builder {
	return &Builder{
		major:         v.major,
		minor:         v.minor,
		patch:         v.patch,
		preRelease:    v.preRelease,
		buildMetadata: v.buildMetadata,
	}
}

func (b *Builder) Major(n int64) *Builder {
	b.major = n
	b.coreChanged = true
	return b
}

func (b *Builder) Minor(n int64) *Builder {
	b.minor = n
	b.coreChanged = true
	return b
}

func (b *Builder) Patch(n int64) *Builder {
	b.patch = n
	b.coreChanged = true
	return b
}

// PreRelease sets the pre-release label. An empty string removes it.
func (b *Builder) PreRelease(s string) *Builder {
	b.preRelease = s
	b.preReleaseSet = true
	return b
}

// BuildMetadata sets the build metadata. An empty string removes it.
func (b *Builder) BuildMetadata(s string) *Builder {
	b.buildMetadata = s
	b.buildSet = true
	return b
}

// ToVersion validates the builder state and returns the new version.
func (b *Builder) ToVersion() (SemanticVersion, error) {
	for _, f := range []struct {
		name  string
		value int64
	}{{"major", b.major}, {"minor", b.minor}, {"patch", b.patch}} {
		if f.value < 0 {
			return SemanticVersion{}, &ValidationError{Field: f.name, Value: f.value, Reason: "must not be negative"}
		}
	}

	v := SemanticVersion{major: b.major, minor: b.minor, patch: b.patch}

	if !b.coreChanged || b.preReleaseSet {
		v.preRelease = b.preRelease
	}
	if !b.coreChanged || b.buildSet {
		v.buildMetadata = b.buildMetadata
	}

	if v.preRelease != "" && !validPreRelease(v.preRelease) {
		return SemanticVersion{}, &ValidationError{Field: "pre-release", Value: v.preRelease, Reason: "not a valid SemVer pre-release"}
	}
	if v.buildMetadata != "" && !validBuildMetadata(v.buildMetadata) {
		return SemanticVersion{}, &ValidationError{Field: "build metadata", Value: v.buildMetadata, Reason: "not valid SemVer build metadata"}
	}
	return v, nil
}
