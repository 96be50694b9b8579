package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"tariff-dashboard/internal/calculator"
	"tariff-dashboard/internal/models"
	"tariff-dashboard/internal/observability"
)

const defaultMaxWorkers = 10

// ErrPresetNotFound is returned when a preset name is unknown.
var ErrPresetNotFound = errors.New("preset not found")

type Advisor struct {
	mu          sync.RWMutex
	presets     []models.Scenario
	presetsPath string
	loadedAt    time.Time
	maxWorkers  int
	evaluations atomic.Int64
	rejected    atomic.Int64
	logger      *slog.Logger
}

func NewAdvisor(logger *slog.Logger, maxWorkers int) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &Advisor{
		presets:    []models.Scenario{},
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (a *Advisor) Analyze(ctx context.Context, req models.AnalysisRequest) (models.TradeAnalysis, error) {
	ctx, span := observability.StartSpan(ctx, "advisor.analyze")
	defer span.End(a.logger)
	return evaluate(ctx, a, span,
		calculator.ValidateInputs(req.TradeVolume, req.TariffRate, req.DiversificationScore, req.AlternativeMarkets),
		func() models.TradeAnalysis {
			return calculator.CalculateDisruptionImpact(req.TradeVolume, req.TariffRate, req.AlternativeMarkets, req.DiversificationScore)
		},
		calculator.CheckAnalysis,
	)
}

func (a *Advisor) Offsets(ctx context.Context, req models.OffsetRequest) (models.OffsetResult, error) {
	invalid := errors.Join(
		calculator.ValidateVolume(req.TradeVolume),
		calculator.ValidateTariff(req.TariffRate),
	)

	ctx, span := observability.StartSpan(ctx, "advisor.offsets")
	defer span.End(a.logger)
	return evaluate(ctx, a, span, invalid,
		func() models.OffsetResult {
			return calculator.CalculateTariffOffsets(req.TariffRate, req.TradeVolume, req.Origin, req.Target)
		},
		calculator.CheckOffsets,
	)
}

func (a *Advisor) Project(ctx context.Context, req models.ProjectionRequest) (models.ScenarioProjection, error) {
	invalid := errors.Join(
		calculator.ValidateVolume(req.BaseVolume),
		calculator.ValidateProjection(req.DisruptionProbability, req.Horizon),
	)

	ctx, span := observability.StartSpan(ctx, "advisor.project")
	defer span.End(a.logger)
	return evaluate(ctx, a, span, invalid,
		func() models.ScenarioProjection {
			return calculator.ProjectScenarios(req.BaseVolume, req.DisruptionProbability, req.Horizon)
		},
		calculator.CheckProjection,
	)
}

// Evaluate runs every calculator over one scenario.
func (a *Advisor) Evaluate(ctx context.Context, s models.Scenario) (models.Report, error) {
	ctx, span := observability.StartSpan(ctx, "advisor.evaluate")
	defer span.End(a.logger)
	span.SetTag("scenario", s.Name)

	return evaluate(ctx, a, span, calculator.ValidateScenario(s),
		func() models.Report {
			return models.Report{
				Scenario:   s,
				Analysis:   calculator.CalculateDisruptionImpact(s.TradeVolume, s.TariffRate, s.AlternativeMarkets, s.DiversificationScore),
				Offsets:    calculator.CalculateTariffOffsets(s.TariffRate, s.TradeVolume, s.Origin, s.Target),
				Projection: calculator.ProjectScenarios(s.TradeVolume, s.DisruptionProbability, s.Horizon),
			}
		},
		calculator.CheckReport,
	)
}

// evaluate counts and records the outcome of one calculation on span. Invalid
// inputs and results that overflow are both rejections.
func evaluate[T any](ctx context.Context, a *Advisor, span *observability.Span, invalid error, compute func() T, check func(T) error) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		span.SetError(err)
		return zero, err
	}
	if invalid != nil {
		a.rejected.Add(1)
		span.SetError(invalid)
		return zero, invalid
	}

	result := compute()
	if err := check(result); err != nil {
		a.rejected.Add(1)
		span.SetError(err)
		return zero, err
	}

	a.evaluations.Add(1)
	return result, nil
}

// EvaluateBatch evaluates scenarios concurrently and keeps input order.
// The first invalid scenario cancels the rest.
func (a *Advisor) EvaluateBatch(ctx context.Context, scenarios []models.Scenario) (models.BatchSummary, error) {
	if len(scenarios) == 0 {
		return models.BatchSummary{Reports: []models.Report{}}, nil
	}

	reports := make([]models.Report, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxWorkers)

	for i, s := range scenarios {
		g.Go(func() error {
			report, err := a.Evaluate(gctx, s)
			if err != nil {
				return fmt.Errorf("scenario %d (%s): %w", i, s.Name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.BatchSummary{}, err
	}

	summary := summarize(reports)
	if err := calculator.CheckSummary(summary); err != nil {
		return models.BatchSummary{}, err
	}
	return summary, nil
}

func summarize(reports []models.Report) models.BatchSummary {
	impacts := make([]float64, len(reports))
	offsets := make([]float64, len(reports))
	risks := make([]float64, len(reports))
	opportunities := make([]float64, len(reports))

	for i, r := range reports {
		impacts[i] = r.Analysis.Metrics.TariffImpact
		offsets[i] = r.Offsets.TotalPotentialOffset
		risks[i] = r.Analysis.Metrics.RiskScore
		opportunities[i] = r.Analysis.OpportunityScore
	}

	return models.BatchSummary{
		Reports:           reports,
		TotalTariffImpact: floats.Sum(impacts),
		TotalOffset:       floats.Sum(offsets),
		MaxRiskScore:      floats.Max(risks),
		MeanOpportunity:   stat.Mean(opportunities, nil),
	}
}

func (a *Advisor) FTAGroups() []models.FTAGroup {
	return calculator.FTAGroups()
}

// SetPresets replaces the preset list after validating every entry.
func (a *Advisor) SetPresets(presets []models.Scenario) error {
	for i, p := range presets {
		if p.Name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
		if err := calculator.ValidateScenario(p); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.presets = slices.Clone(presets)
	a.loadedAt = time.Now()
	return nil
}

func (a *Advisor) Presets() []models.Scenario {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.presets)
}

func (a *Advisor) Preset(name string) (models.Scenario, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	idx := slices.IndexFunc(a.presets, func(s models.Scenario) bool { return s.Name == name })
	if idx < 0 {
		return models.Scenario{}, fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	return a.presets[idx], nil
}

func (a *Advisor) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"evaluations":  a.evaluations.Load(),
		"rejected":     a.rejected.Load(),
		"presets":      len(a.presets),
		"presets_file": a.presetsPath,
		"loaded_at":    a.loadedAt,
		"fta_groups":   len(calculator.FTAGroups()),
	}
}
