package handlers

import (
	"net/http"
	"strings"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// RecordsHandler serves the stored officer and establishment registers.
type RecordsHandler struct {
	officers      contracts.OfficerStore
	establishment contracts.EstablishmentStore
	logger        *logger.Logger
}

func NewRecordsHandler(
	officers contracts.OfficerStore,
	establishment contracts.EstablishmentStore,
	log *logger.Logger,
) *RecordsHandler {
	return &RecordsHandler{
		officers:      officers,
		establishment: establishment,
		logger:        log,
	}
}

// ListOfficers returns all stored officers, optionally filtered by division.
// GET /api/officers?division=Finance
func (h *RecordsHandler) ListOfficers(w http.ResponseWriter, r *http.Request) {
	officers, err := h.officers.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list officers")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve officers")
		return
	}

	if division := r.URL.Query().Get("division"); division != "" {
		filtered := officers[:0]
		for _, o := range officers {
			if strings.EqualFold(o.Division, division) {
				filtered = append(filtered, o)
			}
		}
		officers = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(officers),
		"officers": officers,
	})
}

// ListEstablishment returns the establishment register, optionally only
// vacant positions.
// GET /api/establishment?vacant=true
func (h *RecordsHandler) ListEstablishment(w http.ResponseWriter, r *http.Request) {
	positions, err := h.establishment.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list establishment positions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve establishment positions")
		return
	}

	if queryBool(r, "vacant") {
		filtered := positions[:0]
		for _, p := range positions {
			if p.IsVacant() {
				filtered = append(filtered, p)
			}
		}
		positions = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(positions),
		"positions": positions,
	})
}
