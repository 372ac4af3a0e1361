package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-nextver/internal/calculator"
)

// WriteExplanation writes a structured report of how the version was
// calculated: the branch case, the version found, each reasoning step and
// the final result.
func WriteExplanation(w io.Writer, result calculator.VersionResult) error {
	s := result.Settings
	fmt.Fprintf(w, "Branch: %s (case: %s)\n", result.BranchName, s.CaseName)
	fmt.Fprintf(w, "  %s pre-release: %s\n", arrowPrefix, s.PreRelease)
	fmt.Fprintf(w, "  %s search-pre-release: %s\n", arrowPrefix, s.SearchPreRelease)
	if s.SinceCommit != "" {
		fmt.Fprintf(w, "  %s since-commit: %s\n", arrowPrefix, s.SinceCommit)
	}

	fmt.Fprintln(w)
	if cv := result.Found.CommitVersion; cv != nil {
		fmt.Fprintf(w, "Found: %s (tag: %s, commit: %s, released: %t)\n",
			cv.Version, cv.TagName, shortSha(cv.CommitSha), result.Found.IsCommitVersionCoreAlreadyReleased)
	} else {
		fmt.Fprintf(w, "Found: (none, start version %s)\n", result.Options.StartVersion)
	}

	if len(result.Options.Transformers) > 0 {
		names := make([]string, 0, len(result.Options.Transformers))
		for _, t := range result.Options.Transformers {
			names = append(names, fmt.Sprint(t))
		}
		fmt.Fprintf(w, "Transformers: %s\n", strings.Join(names, ", "))
	}

	if result.Explanation != nil && len(result.Explanation.Steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Steps:")
		for _, step := range result.Explanation.Steps {
			fmt.Fprintf(w, "  %s %s\n", arrowPrefix, step)
		}
	}

	fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "Result: %s\n", result.Version)
	return err
}

const arrowPrefix = "→"

// FormatExplanation returns the explain output as a string.
func FormatExplanation(result calculator.VersionResult) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, result)
	return sb.String()
}

func shortSha(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
