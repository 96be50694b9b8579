package templates

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"tariff-dashboard/internal/models"
)

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// RenderString renders c to a string, for SSE patches.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v)
}

func formatScore(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", v)
}

// barWidth turns a score into a CSS width in [0, 100].
func barWidth(score float64) string {
	if math.IsNaN(score) {
		score = 0
	}
	return fmt.Sprintf("%.1f%%", math.Max(0, math.Min(100, score)))
}

func riskClass(score float64) string {
	switch {
	case score >= 70:
		return "danger"
	case score >= 40:
		return "warning"
	default:
		return "success"
	}
}

func diversificationClass(index float64) string {
	switch {
	case index < 30:
		return "danger"
	case index < 60:
		return "warning"
	default:
		return "success"
	}
}

func opportunityClass(score float64) string {
	switch {
	case score >= 60:
		return "success"
	case score >= 30:
		return "warning"
	default:
		return "danger"
	}
}

func feasibilityClass(f models.Feasibility) string {
	return "feasibility-" + strings.ToLower(string(f))
}
