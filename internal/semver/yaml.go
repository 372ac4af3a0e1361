package semver

import "gopkg.in/yaml.v3"

// UnmarshalYAML implements yaml.Unmarshaler for IncrementMode.
func (m *IncrementMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML and JSON loaders.
func (m *IncrementMode) UnmarshalText(text []byte) error {
	parsed, err := ParseIncrementMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m IncrementMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalYAML implements yaml.Unmarshaler for CommitMessageConvention.
func (c *CommitMessageConvention) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CommitMessageConvention) UnmarshalText(text []byte) error {
	parsed, err := ParseCommitMessageConvention(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c CommitMessageConvention) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalYAML implements yaml.Unmarshaler for VersionField.
func (f *VersionField) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return f.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *VersionField) UnmarshalText(text []byte) error {
	parsed, err := ParseVersionField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f VersionField) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
