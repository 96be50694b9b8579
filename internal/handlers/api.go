package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tariff-dashboard/internal/calculator"
	"tariff-dashboard/internal/config"
	"tariff-dashboard/internal/errors"
	"tariff-dashboard/internal/models"
	"tariff-dashboard/internal/observability"
	"tariff-dashboard/internal/services"
)

const (
	defaultMaxBody  = 1 << 20
	defaultMaxBatch = 100
)

type APIHandlers struct {
	advisor  *services.Advisor
	logger   *slog.Logger
	maxBody  int64
	maxBatch int
}

func NewAPIHandlers(advisor *services.Advisor, logger *slog.Logger, cfg config.AdvisorConfig) *APIHandlers {
	h := &APIHandlers{
		advisor:  advisor,
		logger:   logger,
		maxBody:  cfg.RequestMaxBody,
		maxBatch: cfg.MaxBatchSize,
	}
	if h.maxBody <= 0 {
		h.maxBody = defaultMaxBody
	}
	if h.maxBatch <= 0 {
		h.maxBatch = defaultMaxBatch
	}
	return h
}

type batchRequest struct {
	Scenarios []models.Scenario `json:"scenarios"`
}

func (h *APIHandlers) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	analysis, err := h.advisor.Analyze(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, analysis)
}

func (h *APIHandlers) HandleOffsets(w http.ResponseWriter, r *http.Request) {
	var req models.OffsetRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.advisor.Offsets(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, result)
}

func (h *APIHandlers) HandleProjection(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	projection, err := h.advisor.Project(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, projection)
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	var s models.Scenario
	if err := h.decode(w, r, &s); err != nil {
		h.fail(w, r, err)
		return
	}

	report, err := h.advisor.Evaluate(r.Context(), s)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, report)
}

func (h *APIHandlers) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if len(req.Scenarios) > h.maxBatch {
		h.fail(w, r, errors.New(errors.CodeValidation,
			fmt.Sprintf("batch holds %d scenarios, the limit is %d", len(req.Scenarios), h.maxBatch)))
		return
	}

	summary, err := h.advisor.EvaluateBatch(r.Context(), req.Scenarios)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, summary)
}

func (h *APIHandlers) HandleFTAGroups(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": "public, max-age=3600",
	}

	if err := errors.WriteSuccessWithHeaders(w, h.advisor.FTAGroups(), headers); err != nil {
		h.logger.Error("write fta groups", "error", err)
	}
}

func (h *APIHandlers) HandlePresets(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": "public, max-age=300",
	}

	if err := errors.WriteSuccessWithHeaders(w, h.advisor.Presets(), headers); err != nil {
		h.logger.Error("write presets", "error", err)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	h.respond(w, r, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.advisor.Stats())
}

// decode reads exactly one JSON object of at most maxBody bytes. Unknown fields
// are rejected.
func (h *APIHandlers) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.PayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return errors.BadRequestWrap(err, "Invalid JSON request body")
	}
	if dec.More() {
		return errors.New(errors.CodeBadRequest, "Request body must hold a single JSON object")
	}
	return nil
}

func (h *APIHandlers) respond(w http.ResponseWriter, r *http.Request, data any) {
	if err := errors.WriteSuccess(w, data); err != nil {
		h.logger.Error("write response",
			"error", err,
			"path", r.URL.Path,
			"request_id", observability.GetRequestID(r.Context()),
		)
	}
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, classify(err), observability.GetRequestID(r.Context()))
}

// classify maps service errors onto the API error codes. AppErrors pass
// through unchanged.
func classify(err error) error {
	var appErr *errors.AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case calculator.IsValidation(err):
		return errors.ValidationWrap(err, "Invalid scenario input")
	case stderrors.Is(err, services.ErrPresetNotFound):
		return errors.Wrap(err, errors.CodeNotFound, "Preset not found")
	default:
		return errors.InternalWrap(err, "Failed to evaluate scenario")
	}
}
