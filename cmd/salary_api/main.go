// Package main provides the entry point for the Employee Salary Prediction API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/salary-predictor/internal/config"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath       string
	modelPath        string
	featureNamesPath string
	verbose          bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "salary_api",
		Short:         "Employee Salary Prediction API",
		Long:          "Predicts monthly employee salaries from work-pattern data using a pre-trained regression model, with a 95% confidence interval for ensemble models.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	flags.StringVar(&opts.modelPath, "model", "", "Path to the model artifact (default "+config.DefaultModelPath+")")
	flags.StringVar(&opts.featureNamesPath, "features", "", "Path to the feature name list (default "+config.DefaultFeatureNamesPath+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newPredictCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	return cmd
}

// resolve builds the effective configuration. Flags win over the config file,
// which wins over the environment, which wins over the defaults.
func (o *rootOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	file := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		file = loaded
	}

	cfg := file.MergeWithDefaults(config.FromEnv(config.Defaults()))

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.ModelPath = o.modelPath
	}
	if flags.Changed("features") {
		cfg.FeatureNamesPath = o.featureNamesPath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		port, err := flags.GetInt("port")
		if err != nil {
			return config.Config{}, err
		}
		cfg.Port = port
	}
	if flags.Lookup("read-timeout") != nil && flags.Changed("read-timeout") {
		d, err := flags.GetDuration("read-timeout")
		if err != nil {
			return config.Config{}, err
		}
		cfg.ReadTimeout = config.Duration(d)
	}
	if flags.Lookup("write-timeout") != nil && flags.Changed("write-timeout") {
		d, err := flags.GetDuration("write-timeout")
		if err != nil {
			return config.Config{}, err
		}
		cfg.WriteTimeout = config.Duration(d)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func durationOf(d config.Duration) time.Duration {
	return time.Duration(d)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
