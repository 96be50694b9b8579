package models

type AnalysisRequest struct {
	TradeVolume          float64  `json:"trade_volume"`
	TariffRate           float64  `json:"tariff_rate"`
	AlternativeMarkets   []string `json:"alternative_markets"`
	DiversificationScore float64  `json:"diversification_score"`
}

type OffsetRequest struct {
	TariffRate  float64 `json:"tariff_rate"`
	TradeVolume float64 `json:"trade_volume"`
	Origin      string  `json:"origin"`
	Target      string  `json:"target"`
}

type ProjectionRequest struct {
	BaseVolume            float64 `json:"base_volume"`
	DisruptionProbability float64 `json:"disruption_probability"`
	Horizon               int     `json:"horizon"`
}
