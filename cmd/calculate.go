package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/output"
	"github.com/MyCarrier-DevOps/go-nextver/pkg/sdk"
)

func calculateRunE(cmd *cobra.Command, _ []string) error {
	view, err := output.ParseView(flagOutput)
	if err != nil {
		return err
	}
	parts, err := output.ResolveParts(flagShowParts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	if flagShowConfig {
		repo, err := git.Open(flagPath)
		if err != nil {
			return fmt.Errorf("opening repository: %w", err)
		}
		cfg, err := sdk.LoadLocalConfig(flagConfig, repo.WorkingDirectory(), logger)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return showConfig(cmd.OutOrStdout(), cfg, view)
	}

	result, err := sdk.Calculate(sdk.LocalOptions{
		Path:       flagPath,
		Branch:     flagBranch,
		Commit:     flagCommit,
		ConfigPath: flagConfig,
		Override:   overrideFromFlags(cmd),
		Explain:    flagExplain,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	return writeResult(cmd, result, view, parts)
}

// writeResult writes the explanation to stderr and the parts to stdout.
func writeResult(cmd *cobra.Command, result *sdk.Result, view output.View, parts []string) error {
	if result.Explanation != nil {
		if _, err := io.WriteString(cmd.ErrOrStderr(), result.Explanation.FormattedOutput); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}
	return output.Write(cmd.OutOrStdout(), view, result.Variables, parts)
}

// showConfig prints the effective configuration as YAML, or JSON for the json view.
func showConfig(w io.Writer, cfg *sdk.Config, view output.View) error {
	if view == output.ViewJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return enc.Close()
}
