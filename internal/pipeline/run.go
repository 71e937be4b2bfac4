// Package pipeline composes validation, feature assembly and inference into a
// single prediction request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/salary-predictor/internal/features"
	"github.com/jonathan/salary-predictor/internal/inference"
	"github.com/jonathan/salary-predictor/internal/model"
	"github.com/jonathan/salary-predictor/internal/observability"
	"github.com/jonathan/salary-predictor/internal/schemas"
	"github.com/jonathan/salary-predictor/internal/types"
)

// Config holds the process-wide, read-only artifacts a pipeline runs against.
// Leaving either field nil puts the pipeline in degraded mode.
type Config struct {
	Artifact *model.Artifact
	Schema   *features.Schema
	Verbose  bool
}

// Pipeline runs Validator → Assembler → Inference Engine for each request.
// It keeps no per-request state and is safe for concurrent use.
type Pipeline struct {
	schema  *features.Schema
	engine  *inference.Engine
	verbose bool
}

// New creates a pipeline from already-loaded artifacts.
func New(cfg Config) *Pipeline {
	artifact := cfg.Artifact
	if cfg.Schema == nil {
		artifact = nil
	}
	p := &Pipeline{
		schema:  cfg.Schema,
		engine:  inference.NewEngine(artifact),
		verbose: cfg.Verbose,
	}
	observability.SetModelLoaded(p.Available())
	return p
}

// LoadOptions names the artifact files read at startup.
type LoadOptions struct {
	ModelPath        string
	FeatureNamesPath string
	Verbose          bool
}

// Load reads the model artifact and feature schema once. On failure it still
// returns a usable pipeline in degraded mode, together with the load error so
// the caller can report it.
func Load(opts LoadOptions) (*Pipeline, error) {
	artifact, modelErr := model.Load(opts.ModelPath)
	schema, schemaErr := features.LoadSchema(opts.FeatureNamesPath)
	if err := errors.Join(modelErr, schemaErr); err != nil {
		return New(Config{Verbose: opts.Verbose}), err
	}

	if n := artifact.NumFeatures(); n > 0 && n != schema.Len() {
		log.Printf("[startup] warning: model %s expects %d features but feature schema has %d",
			artifact.Name(), n, schema.Len())
	}
	return New(Config{Artifact: artifact, Schema: schema, Verbose: opts.Verbose}), nil
}

// Available reports whether the pipeline can serve predictions.
func (p *Pipeline) Available() bool {
	return p.schema != nil && p.engine.Available()
}

// Predict validates an untyped payload and predicts a salary for it.
func (p *Pipeline) Predict(ctx context.Context, payload any) (*types.PredictionResult, error) {
	start := time.Now()

	rec, err := schemas.ValidateEmployee(payload)
	if err != nil {
		observability.ObservePrediction(observability.OutcomeInvalid, start)
		return nil, err
	}
	return p.predict(ctx, rec, start)
}

// PredictRecord predicts a salary for a record built in code. The record is
// validated first; invalid records fail with *schemas.ValidationError.
func (p *Pipeline) PredictRecord(ctx context.Context, rec types.EmployeeRecord) (*types.PredictionResult, error) {
	return p.Predict(ctx, recordPayload(rec))
}

func (p *Pipeline) predict(ctx context.Context, rec *types.EmployeeRecord, start time.Time) (*types.PredictionResult, error) {
	if !p.Available() {
		observability.ObservePrediction(observability.OutcomeUnavailable, start)
		return nil, inference.ErrModelUnavailable
	}

	vec := features.Assemble(rec, p.schema)
	if drift := features.Drift(rec, p.schema); !drift.Empty() {
		observability.ObserveDrift(drift.ZeroFilled)
		log.Printf("[drift] zero-filled features not provided by the record: %v", drift.ZeroFilled)
	}

	res, err := p.engine.Predict(ctx, vec)
	if err != nil {
		outcome := observability.OutcomeError
		if errors.Is(err, inference.ErrModelUnavailable) {
			outcome = observability.OutcomeUnavailable
		}
		observability.ObservePrediction(outcome, start)
		return nil, err
	}
	observability.ObservePrediction(observability.OutcomeOK, start)

	if p.verbose {
		log.Printf("[predict] model=%s salary=%.2f interval=%v in %v",
			res.ModelName, res.Salary, res.Interval, time.Since(start))
	}

	return &types.PredictionResult{
		Salary:             res.Salary,
		ConfidenceInterval: res.Interval,
		ModelUsed:          res.ModelName,
		InputSummary:       *rec,
	}, nil
}

// Summary describes the loaded artifact, or returns ErrModelUnavailable.
func (p *Pipeline) Summary() (*types.ModelSummary, error) {
	if !p.Available() {
		return nil, inference.ErrModelUnavailable
	}
	artifact := p.engine.Artifact()
	return &types.ModelSummary{
		Name:     artifact.Name(),
		Kind:     string(artifact.Kind()),
		Members:  len(artifact.Members()),
		Features: p.schema.Names(),
	}, nil
}

// BatchItem is the outcome of one payload in a batch.
type BatchItem struct {
	Index  int
	Result *types.PredictionResult
	Err    error
}

// PredictBatch predicts every payload with at most concurrency requests in flight.
// Per-item failures are reported in the returned items; the batch itself only fails
// when ctx is cancelled.
func (p *Pipeline) PredictBatch(ctx context.Context, payloads []any, concurrency int) ([]BatchItem, error) {
	items := make([]BatchItem, len(payloads))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, payload := range payloads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.Predict(gctx, payload)
			items[i] = BatchItem{Index: i, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, fmt.Errorf("batch prediction interrupted: %w", err)
	}
	return items, nil
}

func recordPayload(rec types.EmployeeRecord) map[string]any {
	return map[string]any{
		types.FieldAge:              rec.Age,
		types.FieldJobTitle:         rec.JobTitle,
		types.FieldEducationLevel:   rec.EducationLevel,
		types.FieldPerformanceScore: rec.PerformanceScore,
		types.FieldWorkHoursPerWeek: rec.WorkHoursPerWeek,
		types.FieldProjectsHandled:  rec.ProjectsHandled,
		types.FieldOvertimeHours:    rec.OvertimeHours,
		types.FieldSickDays:         rec.SickDays,
		types.FieldTeamSize:         rec.TeamSize,
		types.FieldPromotions:       rec.Promotions,
	}
}
