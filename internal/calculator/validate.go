package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"tariff-dashboard/internal/models"
)

var (
	ErrNonPositiveVolume = errors.New("trade volume must be positive")
	ErrNegativeTariff    = errors.New("tariff rate must not be negative")
	ErrNegativeScore     = errors.New("diversification score must not be negative")
	ErrProbabilityRange  = errors.New("disruption probability must be between 0 and 1")
	ErrNegativeHorizon   = errors.New("horizon must not be negative")
	ErrNotFinite         = errors.New("value must be a finite number")
	ErrHorizonTooLong    = errors.New("horizon is too long")
	ErrBlankMarket       = errors.New("market name must not be blank")
	ErrResultOverflow    = errors.New("inputs are too large to evaluate")
)

const maxHorizon = 600

func ValidateVolume(volume float64) error {
	if err := finite("trade_volume", volume); err != nil {
		return err
	}
	if volume <= 0 {
		return fmt.Errorf("trade_volume %v: %w", volume, ErrNonPositiveVolume)
	}
	return nil
}

func ValidateTariff(rate float64) error {
	if err := finite("tariff_rate", rate); err != nil {
		return err
	}
	if rate < 0 {
		return fmt.Errorf("tariff_rate %v: %w", rate, ErrNegativeTariff)
	}
	return nil
}

func ValidateProjection(probability float64, horizon int) error {
	if err := finite("disruption_probability", probability); err != nil {
		return err
	}
	if probability < 0 || probability > 1 {
		return fmt.Errorf("disruption_probability %v: %w", probability, ErrProbabilityRange)
	}
	if horizon < 0 {
		return fmt.Errorf("horizon %d: %w", horizon, ErrNegativeHorizon)
	}
	if horizon > maxHorizon {
		return fmt.Errorf("horizon %d exceeds %d periods: %w", horizon, maxHorizon, ErrHorizonTooLong)
	}
	return nil
}

// ValidateInputs checks the inputs shared by the impact analysis and a full
// scenario, and reports all problems at once.
func ValidateInputs(volume, tariff, diversification float64, markets []string) error {
	var errs []error

	if err := ValidateVolume(volume); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTariff(tariff); err != nil {
		errs = append(errs, err)
	}
	if err := finite("diversification_score", diversification); err != nil {
		errs = append(errs, err)
	} else if diversification < 0 {
		errs = append(errs, fmt.Errorf("diversification_score %v: %w", diversification, ErrNegativeScore))
	}
	for i, m := range markets {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, fmt.Errorf("alternative_markets[%d]: %w", i, ErrBlankMarket))
		}
	}

	return errors.Join(errs...)
}

// ValidateScenario checks every input the formulas divide by or raise to a
// power, and reports all problems at once.
func ValidateScenario(s models.Scenario) error {
	return errors.Join(
		ValidateInputs(s.TradeVolume, s.TariffRate, s.DiversificationScore, s.AlternativeMarkets),
		ValidateProjection(s.DisruptionProbability, s.Horizon),
	)
}

// CheckAnalysis, CheckOffsets and CheckProjection reject results that overflowed
// to ±Inf or NaN. Valid inputs can still be large enough to overflow.
func CheckAnalysis(a models.TradeAnalysis) error {
	m := a.Metrics
	return finiteResult("analysis",
		m.TariffImpact, m.AlternativeMarketPotential, m.DiversificationIndex, m.RiskScore, a.OpportunityScore)
}

func CheckOffsets(r models.OffsetResult) error {
	values := []float64{r.TotalPotentialOffset, r.NetEffectiveRate}
	for _, m := range r.Mechanisms {
		values = append(values, m.PotentialSavings)
	}
	return finiteResult("offsets", values...)
}

func CheckProjection(p models.ScenarioProjection) error {
	return finiteResult("projection", p.Optimistic, p.Expected, p.Pessimistic)
}

func CheckReport(r models.Report) error {
	return errors.Join(CheckAnalysis(r.Analysis), CheckOffsets(r.Offsets), CheckProjection(r.Projection))
}

// CheckSummary catches batch totals that overflow even when every report is
// finite on its own.
func CheckSummary(b models.BatchSummary) error {
	return finiteResult("batch totals", b.TotalTariffImpact, b.TotalOffset, b.MaxRiskScore, b.MeanOpportunity)
}

func finiteResult(what string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w", what, ErrResultOverflow)
		}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", field, ErrNotFinite)
	}
	return nil
}

// IsValidation reports whether err came from one of the input checks above.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNonPositiveVolume,
		ErrNegativeTariff,
		ErrNegativeScore,
		ErrProbabilityRange,
		ErrNegativeHorizon,
		ErrNotFinite,
		ErrHorizonTooLong,
		ErrBlankMarket,
		ErrResultOverflow,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
