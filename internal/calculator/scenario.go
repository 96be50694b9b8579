package calculator

import (
	"math"

	"tariff-dashboard/internal/models"
)

const (
	baseGrowthRate          = 0.03
	scenarioSpread          = 0.05
	pessimisticDisruption   = 0.5
	expectedDisruptionShare = 0.3
)

// ProjectScenarios compounds baseVolume over horizon periods under three
// growth assumptions. disruptionProbability is expected in [0, 1].
func ProjectScenarios(baseVolume, disruptionProbability float64, horizon int) models.ScenarioProjection {
	periods := float64(horizon)

	optimistic := baseVolume * math.Pow(1+baseGrowthRate+scenarioSpread, periods)
	pessimistic := baseVolume * math.Pow(1+baseGrowthRate-scenarioSpread, periods) *
		(1 - disruptionProbability*pessimisticDisruption)
	expected := baseVolume * math.Pow(1+baseGrowthRate, periods) *
		(1 - disruptionProbability*expectedDisruptionShare)

	return models.ScenarioProjection{
		BaseVolume:            baseVolume,
		DisruptionProbability: disruptionProbability,
		Horizon:               horizon,
		Optimistic:            optimistic,
		Pessimistic:           pessimistic,
		Expected:              expected,
	}
}
