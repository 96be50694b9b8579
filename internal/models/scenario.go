package models

// Scenario is a named set of calculator inputs. Presets are loaded from CSV
// and the dashboard form submits the same shape.
type Scenario struct {
	Name                  string   `json:"name"`
	TradeVolume           float64  `json:"trade_volume"`
	TariffRate            float64  `json:"tariff_rate"`
	AlternativeMarkets    []string `json:"alternative_markets"`
	DiversificationScore  float64  `json:"diversification_score"`
	Origin                string   `json:"origin"`
	Target                string   `json:"target"`
	DisruptionProbability float64  `json:"disruption_probability"`
	Horizon               int      `json:"horizon"`
}

type Report struct {
	Scenario   Scenario           `json:"scenario"`
	Analysis   TradeAnalysis      `json:"analysis"`
	Offsets    OffsetResult       `json:"offsets"`
	Projection ScenarioProjection `json:"projection"`
}

type BatchSummary struct {
	Reports           []Report `json:"reports"`
	TotalTariffImpact float64  `json:"total_tariff_impact"`
	TotalOffset       float64  `json:"total_offset"`
	MaxRiskScore      float64  `json:"max_risk_score"`
	MeanOpportunity   float64  `json:"mean_opportunity"`
}
