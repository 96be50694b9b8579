package templates

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"tariff-dashboard/internal/models"
)

const ScenarioPanelID = "scenario-panel"

func ScenarioPanel(p models.ScenarioProjection) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section id="`, ScenarioPanelID, `" class="scenario-panel"><h3>Volume Projection over `)
		h.text(humanize.Comma(int64(p.Horizon)))
		h.raw(` periods</h3><p class="scenario-caption">Disruption probability `)
		h.text(formatPercent(p.DisruptionProbability * 100))
		h.raw(` from `)
		h.text(formatMoney(p.BaseVolume))
		h.raw(`</p><table class="modern-table"><thead><tr><th>Scenario</th><th>Projected volume</th></tr></thead><tbody>`)

		rows := []struct {
			name, class string
			value       float64
		}{
			{"Optimistic", "success", p.Optimistic},
			{"Expected", "info", p.Expected},
			{"Pessimistic", "danger", p.Pessimistic},
		}
		for _, r := range rows {
			h.raw(`<tr class="scenario-`, r.class, `"><td>`, r.name, `</td><td><strong>`)
			h.text(formatMoney(r.value))
			h.raw(`</strong></td></tr>`)
		}

		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

// PresetPath is the SSE route that loads the named preset.
func PresetPath(name string) string {
	return "/sse/presets/" + strings.ReplaceAll(url.PathEscape(name), "'", "%27")
}

func PresetTable(presets []models.Scenario) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div id="presets-content">`)
		if len(presets) == 0 {
			h.raw(`<p class="empty">No saved scenarios</p></div>`)
			return h.err
		}

		h.raw(`<table class="modern-table"><thead><tr><th>Scenario</th><th>Route</th><th>Volume</th><th>Tariff</th><th>Markets</th><th></th></tr></thead><tbody>`)
		for _, s := range presets {
			h.raw(`<tr><td>`)
			h.text(s.Name)
			h.raw(`</td><td>`)
			h.text(s.Origin + " → " + s.Target)
			h.raw(`</td><td>`)
			h.text(formatMoney(s.TradeVolume))
			h.raw(`</td><td>`)
			h.text(formatPercent(s.TariffRate))
			h.raw(`</td><td>`)
			h.text(strings.Join(s.AlternativeMarkets, ", "))
			h.raw(`</td><td><button class="btn btn-small" data-on-click="`)
			h.text("@get('" + PresetPath(s.Name) + "')")
			h.raw(`">Load</button></td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
		return h.err
	})
}

func FTAList(groups []models.FTAGroup) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<ul class="fta-list">`)
		for _, g := range groups {
			h.raw(`<li><strong>`)
			h.text(g.Name)
			h.raw(`</strong>: `)
			h.text(strings.Join(g.Members, ", "))
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
}
