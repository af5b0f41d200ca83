package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/internal/reports"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// ReportsHandler serves the report aggregates and narrative generation.
type ReportsHandler struct {
	service   *reports.Service
	generator contracts.NarrativeGenerator
	logger    *logger.Logger
}

func NewReportsHandler(
	service *reports.Service,
	generator contracts.NarrativeGenerator,
	log *logger.Logger,
) *ReportsHandler {
	return &ReportsHandler{
		service:   service,
		generator: generator,
		logger:    log,
	}
}

// Summary returns the dashboard aggregate.
// GET /api/reports/summary
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build summary report")
		respondError(w, http.StatusInternalServerError, "Failed to build summary report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Gaps returns the per-question and per-division gap analysis.
// GET /api/reports/gaps
func (h *ReportsHandler) Gaps(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Gaps(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build gap report")
		respondError(w, http.StatusInternalServerError, "Failed to build gap report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Misalignment lists officers whose appraisal and self-assessment disagree.
// GET /api/reports/misalignment
func (h *ReportsHandler) Misalignment(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.service.Misalignment(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build misalignment report")
		respondError(w, http.StatusInternalServerError, "Failed to build misalignment report")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(flagged),
		"officers": flagged,
	})
}

// Training returns the reported-needs tallies.
// GET /api/reports/training
func (h *ReportsHandler) Training(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Training(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build training report")
		respondError(w, http.StatusInternalServerError, "Failed to build training report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Coverage compares questionnaire returns against the establishment register.
// GET /api/reports/coverage
func (h *ReportsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Coverage(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build coverage report")
		respondError(w, http.StatusInternalServerError, "Failed to build coverage report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// NarrativeRequest selects the report section to write about.
type NarrativeRequest struct {
	Section string `json:"section"`
}

// Narrative generates prose commentary for one report section.
// POST /api/reports/narrative
func (h *ReportsHandler) Narrative(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respondError(w, http.StatusServiceUnavailable, "Narrative generation is not configured")
		return
	}

	var req NarrativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Section == "" {
		req.Section = reports.SectionSummary
	}

	text, err := h.service.Narrative(r.Context(), h.generator, req.Section)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate narrative")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"section":   req.Section,
		"narrative": text,
	})
}
