// Package output renders a calculated version as text, JSON or YAML.
package output

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-nextver/internal/calculator"
)

// View selects the output format.
type View int

const (
	ViewText View = iota
	ViewJSON
	ViewYAML
)

func (v View) String() string {
	switch v {
	case ViewJSON:
		return "json"
	case ViewYAML:
		return "yaml"
	default:
		return "text"
	}
}

// ParseView parses a case-insensitive view name.
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return ViewText, nil
	case "json":
		return ViewJSON, nil
	case "yaml", "yml":
		return ViewYAML, nil
	default:
		return ViewText, fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Output part names.
const (
	PartMajor         = "Major"
	PartMinor         = "Minor"
	PartPatch         = "Patch"
	PartVersionCore   = "VersionCore"
	PartPreRelease    = "PreRelease"
	PartBuildMetadata = "BuildMetadata"
	PartSemVer        = "SemVer"
	PartBranch        = "Branch"
	PartSinceCommit   = "SinceCommit"
	PartCommitsSince  = "CommitsSince"
)

// Parts lists every part in display order.
var Parts = []string{
	PartMajor,
	PartMinor,
	PartPatch,
	PartVersionCore,
	PartPreRelease,
	PartBuildMetadata,
	PartSemVer,
	PartBranch,
	PartSinceCommit,
	PartCommitsSince,
}

// GetVariables computes all output parts for a calculation result.
// SinceCommit is the commit the message window started after.
func GetVariables(result calculator.VersionResult) map[string]string {
	ver := result.Version

	since := result.Settings.SinceCommit
	if since == "" && result.Found.Found() {
		since = result.Found.CommitVersion.CommitSha
	}

	return map[string]string{
		PartMajor:         strconv.FormatInt(ver.Major(), 10),
		PartMinor:         strconv.FormatInt(ver.Minor(), 10),
		PartPatch:         strconv.FormatInt(ver.Patch(), 10),
		PartVersionCore:   ver.Core(),
		PartPreRelease:    ver.PreRelease(),
		PartBuildMetadata: ver.BuildMetadata(),
		PartSemVer:        ver.String(),
		PartBranch:        result.BranchName,
		PartSinceCommit:   since,
		PartCommitsSince:  strconv.Itoa(result.CommitsSince),
	}
}

// ResolveParts validates requested part names case-insensitively and
// returns their canonical spelling. No request selects every part.
func ResolveParts(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return Parts, nil
	}
	out := make([]string, 0, len(requested))
	for _, r := range requested {
		i := slices.IndexFunc(Parts, func(p string) bool { return strings.EqualFold(p, r) })
		if i < 0 {
			return nil, fmt.Errorf("unknown part %q", r)
		}
		out = append(out, Parts[i])
	}
	return out, nil
}
