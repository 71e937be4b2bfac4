package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/salary-predictor/internal/config"
	"github.com/jonathan/salary-predictor/internal/pipeline"
	"github.com/jonathan/salary-predictor/internal/server"
	"github.com/jonathan/salary-predictor/internal/server/ratelimit"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Load the model artifact and feature schema once, then serve predictions over HTTP.
If the artifacts cannot be loaded the server still starts and reports the model as unavailable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.resolve(cmd)
			if err != nil {
				return err
			}
			srv, err := buildServer(cfg)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().Int("port", config.DefaultPort, "Port to listen on")
	cmd.Flags().Duration("read-timeout", config.DefaultReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", config.DefaultWriteTimeout, "HTTP write timeout")
	return cmd
}

// buildServer loads the pipeline and wires it into an HTTP server. Artifact
// load failures are logged and leave the server in degraded mode.
func buildServer(cfg config.Config) (*server.Server, error) {
	p, err := pipeline.Load(pipeline.LoadOptions{
		ModelPath:        cfg.ModelPath,
		FeatureNamesPath: cfg.FeatureNamesPath,
		Verbose:          cfg.Verbose,
	})
	if err != nil {
		log.Printf("[startup] error loading model: %v", err)
		log.Printf("[startup] serving in degraded mode; /predict will answer 500 until artifacts are available")
	} else {
		log.Printf("[startup] model loaded from %s", cfg.ModelPath)
	}

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		ReadTimeout:  durationOf(cfg.ReadTimeout),
		WriteTimeout: durationOf(cfg.WriteTimeout),
		RateLimit:    ratelimit.LoadConfig(),
	}, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}
