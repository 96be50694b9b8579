// Package calculator holds the trade disruption formulas. Every function is a
// pure transform over its arguments; input checks live in validate.go and are
// applied by callers, so the formulas here keep their raw float behaviour
// (a zero volume yields NaN or +Inf rather than an error).
package calculator

import (
	"math"
	"slices"

	"tariff-dashboard/internal/models"
)

const (
	tariffImpactMultiplier    = 1.5
	diversificationScale      = 10.0
	riskTariffWeight          = 2.0
	marketPotentialMultiplier = 0.8
	maxScore                  = 100.0
)

// CalculateDisruptionImpact scores a tariff disruption for the given trade
// volume, tariff rate in percent, candidate markets and raw diversification input.
func CalculateDisruptionImpact(tradeVolume, tariffRate float64, alternativeMarkets []string, diversificationInput float64) models.TradeAnalysis {
	tariffImpact := tradeVolume * (tariffRate / 100) * tariffImpactMultiplier
	diversificationIndex := clampScore(diversificationInput * diversificationScale)
	riskScore := clampScore(tariffRate*riskTariffWeight + (maxScore - diversificationIndex))
	marketPotential := tradeVolume * (diversificationIndex / 100) * marketPotentialMultiplier
	opportunityScore := math.Min(maxScore, marketPotential/tradeVolume*100)

	markets := slices.Clone(alternativeMarkets)
	if markets == nil {
		markets = []string{}
	}

	return models.TradeAnalysis{
		DisruptionType:  models.DisruptionTariff,
		AffectedMarkets: markets,
		Metrics: models.TradeMetrics{
			TradeVolume:                tradeVolume,
			TariffImpact:               tariffImpact,
			AlternativeMarketPotential: marketPotential,
			DiversificationIndex:       diversificationIndex,
			RiskScore:                  riskScore,
		},
		Recommendations:  GenerateRecommendations(tariffRate, diversificationIndex, markets),
		OpportunityScore: opportunityScore,
	}
}

// clampScore bounds v to [0, 100].
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}
