package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"tariff-dashboard/internal/calculator"
	"tariff-dashboard/internal/errors"
	"tariff-dashboard/internal/models"
	"tariff-dashboard/internal/observability"
	"tariff-dashboard/internal/services"
	"tariff-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	advisor *services.Advisor
	logger  *slog.Logger
}

func NewSSEHandlers(advisor *services.Advisor, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		advisor: advisor,
		logger:  logger,
	}
}

// reportSignals is the compact result published as the lastReport signal.
type reportSignals struct {
	Name                 string  `json:"name"`
	DisruptionType       string  `json:"disruptionType"`
	TariffImpact         float64 `json:"tariffImpact"`
	RiskScore            float64 `json:"riskScore"`
	OpportunityScore     float64 `json:"opportunityScore"`
	TotalPotentialOffset float64 `json:"totalPotentialOffset"`
	NetEffectiveRate     float64 `json:"netEffectiveRate"`
	ExpectedVolume       float64 `json:"expectedVolume"`
}

func newReportSignals(rep models.Report) reportSignals {
	return reportSignals{
		Name:                 rep.Scenario.Name,
		DisruptionType:       string(rep.Analysis.DisruptionType),
		TariffImpact:         rep.Analysis.Metrics.TariffImpact,
		RiskScore:            rep.Analysis.Metrics.RiskScore,
		OpportunityScore:     rep.Analysis.OpportunityScore,
		TotalPotentialOffset: rep.Offsets.TotalPotentialOffset,
		NetEffectiveRate:     rep.Offsets.NetEffectiveRate,
		ExpectedVolume:       rep.Projection.Expected,
	}
}

// HandleAnalysis evaluates the scenario held in the form signals and patches
// both result panels.
func (h *SSEHandlers) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	var signals formSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "Invalid signals"),
			observability.GetRequestID(r.Context()))
		return
	}

	sse := datastar.NewSSE(w, r)

	report, err := h.advisor.Evaluate(r.Context(), signals.scenario())
	if err != nil {
		h.patchError(r.Context(), sse, err)
		return
	}
	h.patchReport(r.Context(), sse, report)
}

// HandlePreset loads a named preset into the form and shows its report.
func (h *SSEHandlers) HandlePreset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	preset, err := h.advisor.Preset(name)
	if err != nil {
		errors.WriteError(w, h.logger, errors.Wrap(err, errors.CodeNotFound, "Preset not found"),
			observability.GetRequestID(r.Context()))
		return
	}

	sse := datastar.NewSSE(w, r)

	form, err := json.Marshal(signalsFor(preset))
	if err != nil {
		h.logger.Error("marshal preset signals", "preset", name, "error", err)
		return
	}
	if err := sse.PatchSignals(form); err != nil {
		h.logger.Warn("patch preset signals", "preset", name, "error", err)
		return
	}

	report, err := h.advisor.Evaluate(r.Context(), preset)
	if err != nil {
		h.patchError(r.Context(), sse, err)
		return
	}
	h.patchReport(r.Context(), sse, report)
}

func (h *SSEHandlers) patchReport(ctx context.Context, sse *datastar.ServerSentEventGenerator, report models.Report) {
	analysis, err := templates.RenderString(ctx, templates.AnalysisPanel(templates.AnalysisView{
		Analysis: report.Analysis,
		Offsets:  &report.Offsets,
	}))
	if err != nil {
		h.logger.Error("render analysis panel", "error", err)
		return
	}
	scenario, err := templates.RenderString(ctx, templates.ScenarioPanel(report.Projection))
	if err != nil {
		h.logger.Error("render scenario panel", "error", err)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"lastReport": newReportSignals(report),
	})
	if err != nil {
		h.logger.Error("marshal report signals", "error", err)
		return
	}

	for _, patch := range []func() error{
		func() error { return sse.PatchElements(analysis) },
		func() error { return sse.PatchElements(scenario) },
		func() error { return sse.PatchSignals(signals) },
	} {
		if err := patch(); err != nil {
			// The client went away; nothing left to send to.
			h.logger.Debug("sse patch aborted", "error", err)
			return
		}
	}
}

// patchError shows validation problems in place of the panels. Other failures
// are logged and reported with a generic message.
func (h *SSEHandlers) patchError(ctx context.Context, sse *datastar.ServerSentEventGenerator, err error) {
	message := "The scenario could not be evaluated"
	if calculator.IsValidation(err) {
		message = "Check the inputs: " + err.Error()
		h.logger.Warn("invalid dashboard scenario", "error", err)
	} else if !stderrors.Is(err, context.Canceled) {
		h.logger.Error("evaluate dashboard scenario", "error", err)
	}

	html, renderErr := templates.RenderString(ctx, templates.ErrorPanel(templates.AnalysisPanelID, message))
	if renderErr != nil {
		h.logger.Error("render error panel", "error", renderErr)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.Debug("sse patch aborted", "error", err)
	}
}
