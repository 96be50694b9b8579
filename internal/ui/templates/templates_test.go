package templates

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-dashboard/internal/calculator"
	"tariff-dashboard/internal/models"
)

func render(t *testing.T, v AnalysisView) string {
	t.Helper()
	html, err := RenderString(context.Background(), AnalysisPanel(v))
	require.NoError(t, err)
	return html
}

func TestAnalysisPanel_Layout(t *testing.T) {
	analysis := calculator.CalculateDisruptionImpact(1_000_000, 20, []string{"India", "Vietnam"}, 2)
	offsets := calculator.CalculateTariffOffsets(20, 1_000_000, "Canada", "Mexico")

	html := render(t, AnalysisView{Analysis: analysis, Offsets: &offsets})

	assert.Contains(t, html, `id="analysis-panel"`)
	assert.Equal(t, 4, strings.Count(html, `class="metric-card`), "four metric cards")
	for _, title := range []string{"Tariff Impact", "Alternative Market Potential", "Diversification Index", "Risk Score"} {
		assert.Contains(t, html, title)
	}

	assert.Contains(t, html, "$300,000.00", "tariff impact formatted as money")
	assert.Contains(t, html, "Tariff Offset Mechanisms")
	assert.Contains(t, html, "Free Trade Agreement")
	assert.Contains(t, html, `class="badge feasibility-high"`)
	assert.Contains(t, html, "Opportunity Score")
	assert.Contains(t, html, `style="width: 16.0%"`)

	assert.Equal(t, len(analysis.Recommendations), strings.Count(html, "<li>")-countRequirements(offsets))
}

func countRequirements(r models.OffsetResult) int {
	n := 0
	for _, m := range r.Mechanisms {
		n += len(m.Requirements)
	}
	return n
}

func TestAnalysisPanel_WithoutOffsets(t *testing.T) {
	analysis := calculator.CalculateDisruptionImpact(500_000, 5, nil, 8)
	html := render(t, AnalysisView{Analysis: analysis})

	assert.NotContains(t, html, "Tariff Offset Mechanisms")
	assert.Contains(t, html, "Recommendations")
}

func TestAnalysisPanel_RiskStyling(t *testing.T) {
	tests := []struct {
		name            string
		tariff          float64
		diversification float64
		wantClass       string
	}{
		{"high risk", 30, 2, `metric-card metric-danger"><h3 class="metric-title">Risk Score`},
		{"medium risk", 10, 7, `metric-card metric-warning"><h3 class="metric-title">Risk Score`},
		{"low risk", 2, 10, `metric-card metric-success"><h3 class="metric-title">Risk Score`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := calculator.CalculateDisruptionImpact(100_000, tt.tariff, nil, tt.diversification)
			assert.Contains(t, render(t, AnalysisView{Analysis: analysis}), tt.wantClass)
		})
	}
}

func TestAnalysisPanel_EscapesText(t *testing.T) {
	analysis := calculator.CalculateDisruptionImpact(100_000, 5, []string{"<script>alert(1)</script>"}, 5)
	html := render(t, AnalysisView{Analysis: analysis})

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", formatMoney(1234567.891))
	assert.Equal(t, "-$12.50", formatMoney(-12.5))
	assert.Equal(t, "n/a", formatMoney(math.Inf(1)))
	assert.Equal(t, "12.5%", formatPercent(12.5))
	assert.Equal(t, "n/a", formatScore(math.NaN()))
	assert.Equal(t, "0.0%", barWidth(math.NaN()))
	assert.Equal(t, "100.0%", barWidth(140))
	assert.Equal(t, "0.0%", barWidth(-3))
	assert.Equal(t, "feasibility-medium", feasibilityClass(models.FeasibilityMedium))
}

func TestScenarioPanel(t *testing.T) {
	p := calculator.ProjectScenarios(1_000_000, 0, 0)
	html, err := RenderString(context.Background(), ScenarioPanel(p))
	require.NoError(t, err)

	assert.Contains(t, html, `id="scenario-panel"`)
	assert.Equal(t, 4, strings.Count(html, "$1,000,000.00"), "base volume caption plus three rows")
	for _, name := range []string{"Optimistic", "Expected", "Pessimistic"} {
		assert.Contains(t, html, name)
	}
}

func TestPresetTable(t *testing.T) {
	empty, err := RenderString(context.Background(), PresetTable(nil))
	require.NoError(t, err)
	assert.Contains(t, empty, "No saved scenarios")

	html, err := RenderString(context.Background(), PresetTable([]models.Scenario{
		{Name: "Steel exports", TradeVolume: 2_500_000, TariffRate: 25, Origin: "Germany", Target: "United States"},
	}))
	require.NoError(t, err)
	assert.Contains(t, html, "Steel exports")
	assert.Contains(t, html, "/sse/presets/Steel%20exports")
	assert.Contains(t, html, "$2,500,000.00")
}

func TestPresetPath(t *testing.T) {
	assert.Equal(t, "/sse/presets/a%2Fb", PresetPath("a/b"))
	assert.Equal(t, "/sse/presets/O%27Hare", PresetPath("O'Hare"))
}

func TestDashboard(t *testing.T) {
	html, err := RenderString(context.Background(), Dashboard(DashboardView{
		Form:      DefaultFormSignals(),
		FTAGroups: calculator.FTAGroups(),
	}))
	require.NoError(t, err)

	expected := []string{
		"<!DOCTYPE html>",
		"Trade Disruption Dashboard",
		"Scenario Inputs",
		`data-bind="tradeVolume"`,
		`data-on-submit="@get('/sse/analysis')"`,
		`id="analysis-panel"`,
		`id="scenario-panel"`,
		"USMCA",
		"&#34;tradeVolume&#34;:1000000",
	}
	for _, s := range expected {
		assert.Contains(t, html, s)
	}
}
