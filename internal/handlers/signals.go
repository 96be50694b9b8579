package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tariff-dashboard/internal/models"
	"tariff-dashboard/internal/ui/templates"
)

// number accepts JSON numbers as well as the quoted strings a bound text input
// produces. An empty string reads as zero.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = number(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = number(v)
	return nil
}

// formSignals mirrors templates.FormSignals on the way in.
type formSignals struct {
	TradeVolume           number `json:"tradeVolume"`
	TariffRate            number `json:"tariffRate"`
	AlternativeMarkets    string `json:"alternativeMarkets"`
	DiversificationScore  number `json:"diversificationScore"`
	Origin                string `json:"origin"`
	Target                string `json:"target"`
	DisruptionProbability number `json:"disruptionProbability"`
	Horizon               number `json:"horizon"`
}

func (f formSignals) scenario() models.Scenario {
	return models.Scenario{
		Name:                  "dashboard",
		TradeVolume:           float64(f.TradeVolume),
		TariffRate:            float64(f.TariffRate),
		AlternativeMarkets:    splitList(f.AlternativeMarkets),
		DiversificationScore:  float64(f.DiversificationScore),
		Origin:                strings.TrimSpace(f.Origin),
		Target:                strings.TrimSpace(f.Target),
		DisruptionProbability: float64(f.DisruptionProbability),
		Horizon:               int(math.Round(float64(f.Horizon))),
	}
}

// signalsFor is the inverse of scenario, used to fill the form from a preset.
func signalsFor(s models.Scenario) templates.FormSignals {
	return templates.FormSignals{
		TradeVolume:           s.TradeVolume,
		TariffRate:            s.TariffRate,
		AlternativeMarkets:    strings.Join(s.AlternativeMarkets, ", "),
		DiversificationScore:  s.DiversificationScore,
		Origin:                s.Origin,
		Target:                s.Target,
		DisruptionProbability: s.DisruptionProbability,
		Horizon:               s.Horizon,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
