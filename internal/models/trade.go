package models

type DisruptionType string

const (
	DisruptionTariff       DisruptionType = "tariff"
	DisruptionGeopolitical DisruptionType = "geopolitical"
	DisruptionSupplyChain  DisruptionType = "supply_chain"
	DisruptionEconomic     DisruptionType = "economic"
)

type Feasibility string

const (
	FeasibilityHigh   Feasibility = "High"
	FeasibilityMedium Feasibility = "Medium"
	FeasibilityLow    Feasibility = "Low"
)

type TradeMetrics struct {
	TradeVolume                float64 `json:"trade_volume"`
	TariffImpact               float64 `json:"tariff_impact"`
	AlternativeMarketPotential float64 `json:"alternative_market_potential"`
	DiversificationIndex       float64 `json:"diversification_index"`
	RiskScore                  float64 `json:"risk_score"`
}

type TradeAnalysis struct {
	DisruptionType   DisruptionType `json:"disruption_type"`
	AffectedMarkets  []string       `json:"affected_markets"`
	Metrics          TradeMetrics   `json:"metrics"`
	Recommendations  []string       `json:"recommendations"`
	OpportunityScore float64        `json:"opportunity_score"`
}

type OffsetMechanism struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	PotentialSavings float64     `json:"potential_savings"`
	Feasibility      Feasibility `json:"feasibility"`
	Requirements     []string    `json:"requirements"`
}

type OffsetResult struct {
	Mechanisms           []OffsetMechanism `json:"mechanisms"`
	TotalPotentialOffset float64           `json:"total_potential_offset"`
	NetEffectiveRate     float64           `json:"net_effective_rate"`
}

type FTAGroup struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

type ScenarioProjection struct {
	BaseVolume            float64 `json:"base_volume"`
	DisruptionProbability float64 `json:"disruption_probability"`
	Horizon               int     `json:"horizon"`
	Optimistic            float64 `json:"optimistic"`
	Pessimistic           float64 `json:"pessimistic"`
	Expected              float64 `json:"expected"`
}
