package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/salary-predictor/internal/features"
	"github.com/jonathan/salary-predictor/internal/observability"
	"github.com/jonathan/salary-predictor/internal/pipeline"
	"github.com/jonathan/salary-predictor/internal/types"
)

// inspectOutput is the JSON printed by the inspect command.
type inspectOutput struct {
	Model      *types.ModelSummary `json:"model"`
	ZeroFilled []string            `json:"zero_filled,omitempty"`
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Describe the model artifact and feature schema",
		Long:  "Loads the model artifact and feature schema and prints the model type, ensemble size and the ordered feature list, plus any schema names the employee record cannot supply.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.resolve(cmd)
			if err != nil {
				return err
			}
			p, err := pipeline.Load(pipeline.LoadOptions{
				ModelPath:        cfg.ModelPath,
				FeatureNamesPath: cfg.FeatureNamesPath,
			})
			if err != nil {
				return fmt.Errorf("failed to load model: %w", err)
			}
			return runInspect(cmd, p, cfg.Verbose)
		},
	}
}

func runInspect(cmd *cobra.Command, p *pipeline.Pipeline, verbose bool) error {
	summary, err := p.Summary()
	if err != nil {
		return err
	}

	schema, err := features.NewSchema(summary.Features)
	if err != nil {
		return err
	}
	example := types.ExampleEmployee()
	drift := features.Drift(&example, schema)

	out := cmd.OutOrStdout()
	if verbose {
		observability.NewPrinter(out).PrintModelSummary(summary)
		for _, name := range drift.ZeroFilled {
			_, _ = fmt.Fprintf(out, "warning: feature %q is not produced by employee records and will be zero-filled\n", name)
		}
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inspectOutput{Model: summary, ZeroFilled: drift.ZeroFilled}); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
