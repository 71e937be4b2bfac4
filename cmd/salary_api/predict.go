package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/salary-predictor/internal/observability"
	"github.com/jonathan/salary-predictor/internal/pipeline"
	"github.com/jonathan/salary-predictor/internal/types"
)

type predictOptions struct {
	inputs      []string
	concurrency int
}

// predictOutput is one entry of the JSON printed by the predict command.
type predictOutput struct {
	Input  string                  `json:"input"`
	Result *types.PredictionResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func newPredictCmd(root *rootOptions) *cobra.Command {
	opts := &predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict salaries for employee records stored in JSON files",
		Long:  "Runs the same validation and inference as POST /predict over one or more JSON files, evaluating them concurrently.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.resolve(cmd)
			if err != nil {
				return err
			}
			p, err := pipeline.Load(pipeline.LoadOptions{
				ModelPath:        cfg.ModelPath,
				FeatureNamesPath: cfg.FeatureNamesPath,
				Verbose:          cfg.Verbose,
			})
			if err != nil {
				return fmt.Errorf("failed to load model: %w", err)
			}
			return runPredict(cmd, p, opts, cfg.Verbose)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "Path to an employee record JSON file (repeatable, required)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Maximum number of predictions evaluated at once")

	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	return cmd
}

func runPredict(cmd *cobra.Command, p *pipeline.Pipeline, opts *predictOptions, verbose bool) error {
	payloads := make([]any, len(opts.inputs))
	for i, path := range opts.inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &payloads[i]); err != nil {
			return fmt.Errorf("failed to parse input file %s: %w", path, err)
		}
	}

	items, err := p.PredictBatch(cmd.Context(), payloads, opts.concurrency)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	outputs := make([]predictOutput, len(items))
	for i, item := range items {
		outputs[i] = predictOutput{Input: opts.inputs[i], Result: item.Result}
		if item.Err != nil {
			failed++
			outputs[i].Error = item.Err.Error()
		}
	}

	if verbose {
		printer := observability.NewPrinter(out)
		for _, o := range outputs {
			if o.Error != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", o.Input, o.Error)
				continue
			}
			printer.PrintPrediction(o.Input, o.Result)
		}
	} else {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outputs); err != nil {
			return fmt.Errorf("failed to write predictions: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d predictions failed", failed, len(items))
	}
	return nil
}
