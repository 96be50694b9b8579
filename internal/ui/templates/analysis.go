package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"tariff-dashboard/internal/models"
)

const AnalysisPanelID = "analysis-panel"

// AnalysisView is what the analysis panel renders. Offsets is optional.
type AnalysisView struct {
	Analysis models.TradeAnalysis
	Offsets  *models.OffsetResult
}

// AnalysisPanel lays out the metric cards, the optional offset panel, the
// opportunity bar and the recommendations.
func AnalysisPanel(v AnalysisView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		m := v.Analysis.Metrics

		h.raw(`<section id="`, AnalysisPanelID, `" class="analysis-panel" data-disruption="`)
		h.text(string(v.Analysis.DisruptionType))
		h.raw(`">`)

		h.raw(`<div class="metric-grid">`)
		h.render(metricCard("Tariff Impact", formatMoney(m.TariffImpact),
			"Cost at "+formatMoney(m.TradeVolume)+" trade volume", "danger"))
		h.render(metricCard("Alternative Market Potential", formatMoney(m.AlternativeMarketPotential),
			"Redirectable volume", "info"))
		h.render(metricCard("Diversification Index", formatScore(m.DiversificationIndex),
			"Out of 100", diversificationClass(m.DiversificationIndex)))
		h.render(metricCard("Risk Score", formatScore(m.RiskScore),
			"Out of 100", riskClass(m.RiskScore)))
		h.raw(`</div>`)

		if v.Offsets != nil {
			h.render(offsetPanel(*v.Offsets))
		}

		h.render(opportunityBar(v.Analysis.OpportunityScore))
		h.render(recommendationList(v.Analysis.Recommendations))

		h.raw(`</section>`)
		return h.err
	})
}

func metricCard(title, value, caption, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="metric-card metric-`, class, `">`)
		h.raw(`<h3 class="metric-title">`)
		h.text(title)
		h.raw(`</h3><p class="metric-value">`)
		h.text(value)
		h.raw(`</p><p class="metric-caption">`)
		h.text(caption)
		h.raw(`</p></div>`)
		return h.err
	})
}

func offsetPanel(r models.OffsetResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="offset-panel"><h3>Tariff Offset Mechanisms</h3>`)

		h.raw(`<div class="offset-summary"><span>Total potential offset: <strong>`)
		h.text(formatMoney(r.TotalPotentialOffset))
		h.raw(`</strong></span><span>Net effective rate: <strong>`)
		h.text(formatPercent(r.NetEffectiveRate))
		h.raw(`</strong></span></div>`)

		if len(r.Mechanisms) == 0 {
			h.raw(`<p class="empty">No offset mechanisms available</p></div>`)
			return h.err
		}

		h.raw(`<ul class="offset-list">`)
		for _, m := range r.Mechanisms {
			h.raw(`<li class="offset-item"><div class="offset-header"><span class="offset-name">`)
			h.text(m.Name)
			h.raw(`</span><span class="badge `, feasibilityClass(m.Feasibility), `">`)
			h.text(string(m.Feasibility))
			h.raw(`</span></div><p class="offset-description">`)
			h.text(m.Description)
			h.raw(`</p><p class="offset-savings">Potential savings: <strong>`)
			h.text(formatMoney(m.PotentialSavings))
			h.raw(`</strong></p>`)
			if len(m.Requirements) > 0 {
				h.raw(`<ul class="requirements">`)
				for _, req := range m.Requirements {
					h.raw(`<li>`)
					h.text(req)
					h.raw(`</li>`)
				}
				h.raw(`</ul>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul></div>`)
		return h.err
	})
}

func opportunityBar(score float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="opportunity"><div class="opportunity-label"><span>Opportunity Score</span><strong>`)
		h.text(formatScore(score))
		h.raw(`/100</strong></div>`)
		h.raw(`<div class="progress" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="`, formatScore(score), `">`)
		h.raw(`<div class="progress-fill progress-`, opportunityClass(score), `" style="width: `, barWidth(score), `"></div>`)
		h.raw(`</div></div>`)
		return h.err
	})
}

func recommendationList(recs []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="recommendations"><h3>Recommendations</h3><ol>`)
		for _, r := range recs {
			h.raw(`<li>`)
			h.text(r)
			h.raw(`</li>`)
		}
		h.raw(`</ol></div>`)
		return h.err
	})
}

// ErrorPanel replaces the panel with the given id by a message. It keeps the id
// so a later patch can morph it back.
func ErrorPanel(id, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section id="`)
		h.text(id)
		h.raw(`" class="error-panel" role="alert"><p>`)
		h.text(message)
		h.raw(`</p></section>`)
		return h.err
	})
}
