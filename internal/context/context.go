// Package context provides the CalculationContext, the snapshot of repository
// state and configuration that one version calculation runs against.
package context

import (
	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
)

// CalculationContext holds the resolved state needed for version calculation.
// It is created once per run and is not modified afterwards.
type CalculationContext struct {
	// CurrentBranch is the branch being versioned.
	CurrentBranch git.Branch

	// BranchName is matched against branch cases. It never carries a remote prefix.
	BranchName string

	// CurrentCommit is the commit being versioned (branch tip or explicit revision).
	CurrentCommit git.Commit

	// Configuration is the layered configuration (defaults + file + overrides).
	Configuration *config.Config

	// Override is merged onto the matched branch case. May be nil.
	Override *config.BranchCase
}

// EffectiveConfiguration resolves the global settings of the context's configuration.
func (ctx *CalculationContext) EffectiveConfiguration() config.EffectiveConfiguration {
	return config.NewEffectiveConfiguration(ctx.Configuration)
}
