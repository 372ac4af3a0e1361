package label

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConstructors(t *testing.T) {
	require.True(t, Unset().IsUnset())
	require.True(t, Cleared().IsCleared())
	require.True(t, Of("").IsCleared())
	require.True(t, Of("beta").HasValue())
	require.Equal(t, "beta", Of("beta").Value())

	require.True(t, FromPtr(nil).IsUnset())
	empty, beta := "", "beta"
	require.True(t, FromPtr(&empty).IsCleared())
	v, ok := FromPtr(&beta).Get()
	require.True(t, ok)
	require.Equal(t, "beta", v)

	var zero Label
	require.Equal(t, StateUnset, zero.State())
}

func TestOr(t *testing.T) {
	require.Equal(t, Of("a"), Unset().Or(Of("a")))
	require.Equal(t, Cleared(), Cleared().Or(Of("a")))
	require.Equal(t, Of("b"), Of("b").Or(Of("a")))
}

func TestMap(t *testing.T) {
	upper := Of("x").Map(strings.ToUpper)
	require.Equal(t, "X", upper.Value())
	require.True(t, Of("x").Map(func(string) string { return "" }).IsCleared())
	require.True(t, Unset().Map(strings.ToUpper).IsUnset())
	require.True(t, Cleared().Map(strings.ToUpper).IsCleared())
}

func TestYAML(t *testing.T) {
	var doc struct {
		Missing Label `yaml:"missing"`
		Null    Label `yaml:"nothing"`
		Empty   Label `yaml:"empty"`
		Value   Label `yaml:"value"`
	}
	err := yaml.Unmarshal([]byte("nothing: ~\nempty: ''\nvalue: rc\n"), &doc)
	require.NoError(t, err)
	require.True(t, doc.Missing.IsUnset())
	require.True(t, doc.Null.IsUnset())
	require.True(t, doc.Empty.IsCleared())
	require.Equal(t, Of("rc"), doc.Value)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(out), `empty: ""`)
	require.Contains(t, string(out), "value: rc")
}

func TestJSON(t *testing.T) {
	var doc struct {
		Missing Label `json:"missing"`
		Null    Label `json:"null"`
		Empty   Label `json:"empty"`
		Value   Label `json:"value"`
	}
	err := json.Unmarshal([]byte(`{"null":null,"empty":"","value":"alpha"}`), &doc)
	require.NoError(t, err)
	require.True(t, doc.Missing.IsUnset())
	require.True(t, doc.Null.IsUnset())
	require.True(t, doc.Empty.IsCleared())
	require.Equal(t, "alpha", doc.Value.Value())

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"missing":null,"null":null,"empty":"","value":"alpha"}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"value":3}`), &doc))
}

func TestTOML(t *testing.T) {
	var doc struct {
		Missing Label `toml:"missing"`
		Empty   Label `toml:"empty"`
		Value   Label `toml:"value"`
	}
	_, err := toml.Decode("empty = ''\nvalue = 'develop'\n", &doc)
	require.NoError(t, err)
	require.True(t, doc.Missing.IsUnset())
	require.True(t, doc.Empty.IsCleared())
	require.Equal(t, "develop", doc.Value.Value())
}
