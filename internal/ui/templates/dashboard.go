package templates

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"tariff-dashboard/internal/models"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// FormSignals are the Datastar signals bound to the dashboard form. The SSE
// handlers read and patch the same keys.
type FormSignals struct {
	TradeVolume           float64 `json:"tradeVolume"`
	TariffRate            float64 `json:"tariffRate"`
	AlternativeMarkets    string  `json:"alternativeMarkets"`
	DiversificationScore  float64 `json:"diversificationScore"`
	Origin                string  `json:"origin"`
	Target                string  `json:"target"`
	DisruptionProbability float64 `json:"disruptionProbability"`
	Horizon               int     `json:"horizon"`
}

func DefaultFormSignals() FormSignals {
	return FormSignals{
		TradeVolume:           1_000_000,
		TariffRate:            10,
		AlternativeMarkets:    "Vietnam, India, Mexico",
		DiversificationScore:  4,
		Origin:                "Canada",
		Target:                "Mexico",
		DisruptionProbability: 0.3,
		Horizon:               5,
	}
}

type DashboardView struct {
	Form      FormSignals
	Presets   []models.Scenario
	FTAGroups []models.FTAGroup
}

type formField struct {
	label, signal, kind, step string
}

var formFields = []formField{
	{"Trade volume ($)", "tradeVolume", "number", "1000"},
	{"Tariff rate (%)", "tariffRate", "number", "0.1"},
	{"Alternative markets (comma separated)", "alternativeMarkets", "text", ""},
	{"Diversification score", "diversificationScore", "number", "0.1"},
	{"Origin country", "origin", "text", ""},
	{"Target country", "target", "text", ""},
	{"Disruption probability (0-1)", "disruptionProbability", "number", "0.05"},
	{"Horizon (periods)", "horizon", "number", "1"},
}

func Dashboard(v DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(v.Form)
		if err != nil {
			return err
		}

		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Trade Disruption Dashboard</title>`)
		h.raw(`<script type="module" src="`, datastarScript, `"></script>`)
		h.raw(`<style>`, dashboardCSS, `</style></head>`)

		h.raw(`<body data-signals="`)
		h.text(string(signals))
		h.raw(`"><header class="header"><h1>Trade Disruption Dashboard</h1>`)
		h.raw(`<p class="subtitle">Tariff impact, offset strategies and volume scenarios</p></header><main class="container">`)

		h.raw(`<section class="card"><h2>Scenario Inputs</h2><form class="input-form" data-on-submit="@get('/sse/analysis')">`)
		for _, f := range formFields {
			h.raw(`<label><span>`)
			h.text(f.label)
			h.raw(`</span><input type="`, f.kind, `" name="`, f.signal, `" data-bind="`, f.signal, `"`)
			if f.step != "" {
				h.raw(` step="`, f.step, `"`)
			}
			h.raw(`></label>`)
		}
		h.raw(`<button type="submit" class="btn">Analyze</button></form></section>`)

		h.raw(`<section class="card"><h2>Disruption Analysis</h2>`)
		h.raw(`<div id="`, AnalysisPanelID, `" class="placeholder">Submit the form to analyze a scenario</div></section>`)

		h.raw(`<section class="card"><h2>Scenario Projection</h2>`)
		h.raw(`<div id="`, ScenarioPanelID, `" class="placeholder">Projection appears after analysis</div></section>`)

		h.raw(`<section class="card"><h2>Saved Scenarios</h2>`)
		h.render(PresetTable(v.Presets))
		h.raw(`</section>`)

		h.raw(`<section class="card"><h2>Free Trade Agreements</h2>`)
		h.render(FTAList(v.FTAGroups))
		h.raw(`</section>`)

		h.raw(`</main></body></html>`)
		return h.err
	})
}

const dashboardCSS = `
body{font-family:system-ui,sans-serif;margin:0;background:#f4f6fa;color:#1f2933}
.header{background:#1f3a5f;color:#fff;padding:1.5rem 2rem}
.subtitle{margin:.25rem 0 0;opacity:.8}
.container{display:grid;gap:1.5rem;padding:1.5rem 2rem;max-width:1200px;margin:0 auto}
.card{background:#fff;border-radius:8px;padding:1.25rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.input-form{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:.75rem;align-items:end}
.input-form label{display:flex;flex-direction:column;font-size:.85rem;gap:.25rem}
.input-form input{padding:.4rem;border:1px solid #cbd2d9;border-radius:4px}
.btn{background:#1f3a5f;color:#fff;border:0;border-radius:4px;padding:.5rem 1rem;cursor:pointer}
.btn-small{padding:.25rem .6rem;font-size:.8rem}
.metric-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(200px,1fr));gap:1rem}
.metric-card{border-left:4px solid #9aa5b1;padding:.75rem 1rem;background:#f9fafb;border-radius:4px}
.metric-value{font-size:1.5rem;font-weight:600;margin:.25rem 0}
.metric-caption{font-size:.8rem;color:#616e7c;margin:0}
.metric-danger{border-color:#d64545}.metric-warning{border-color:#e9b949}
.metric-success{border-color:#3ebd93}.metric-info{border-color:#2680c2}
.offset-panel{margin-top:1.25rem}
.offset-summary{display:flex;gap:2rem;margin-bottom:.75rem}
.offset-list{list-style:none;padding:0;display:grid;gap:.75rem}
.offset-item{border:1px solid #e4e7eb;border-radius:4px;padding:.75rem}
.offset-header{display:flex;justify-content:space-between}
.badge{border-radius:999px;padding:.1rem .6rem;font-size:.75rem}
.feasibility-high{background:#c6f7e2}.feasibility-medium{background:#fcefc7}.feasibility-low{background:#ffe3e3}
.opportunity{margin-top:1.25rem}
.opportunity-label{display:flex;justify-content:space-between}
.progress{background:#e4e7eb;border-radius:4px;height:12px;overflow:hidden}
.progress-fill{height:100%}
.progress-success{background:#3ebd93}.progress-warning{background:#e9b949}.progress-danger{background:#d64545}
.modern-table{width:100%;border-collapse:collapse}
.modern-table th,.modern-table td{text-align:left;padding:.5rem;border-bottom:1px solid #e4e7eb}
.placeholder,.empty{color:#7b8794}
.error-panel{color:#a61b1b;background:#ffeeee;border-radius:4px;padding:.75rem}
`
