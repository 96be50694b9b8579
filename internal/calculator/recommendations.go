package calculator

import (
	"fmt"
	"strings"
)

const (
	urgentTariffRate       = 15.0
	lowDiversificationMark = 30.0
	maxNamedMarkets        = 3
)

// GenerateRecommendations applies each rule independently. The order of the
// returned messages is stable and the last two are always present.
func GenerateRecommendations(tariffRate, diversificationIndex float64, alternativeMarkets []string) []string {
	recs := make([]string, 0, 5)

	if tariffRate > urgentTariffRate {
		recs = append(recs, "Tariff exposure is high: diversify supply and sales markets urgently")
	}

	if diversificationIndex < lowDiversificationMark {
		recs = append(recs, "Trade is concentrated in few markets: reduce dependence on any single partner")
	}

	if len(alternativeMarkets) > 0 {
		named := alternativeMarkets
		if len(named) > maxNamedMarkets {
			named = named[:maxNamedMarkets]
		}
		recs = append(recs, fmt.Sprintf("Explore alternative markets: %s", strings.Join(named, ", ")))
	}

	recs = append(recs,
		"Hedge currency and commodity exposure to stabilise landed costs",
		"Review regional trade agreements for preferential tariff access",
	)

	return recs
}
