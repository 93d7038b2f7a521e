package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/persona"
	"github.com/evida/coach-api/internal/service"
	"github.com/evida/coach-api/pkg/problem"
	"github.com/go-chi/chi/v5"
)

// PersonaHandler serves the demo persona catalog.
type PersonaHandler struct {
	store          persona.Store
	summaryService service.SummaryService
}

// NewPersonaHandler creates a new PersonaHandler.
func NewPersonaHandler(store persona.Store, summaryService service.SummaryService) *PersonaHandler {
	return &PersonaHandler{store: store, summaryService: summaryService}
}

// ListPersonas handles GET /personas
// @Summary List demo personas
// @Tags personas
// @Produce json
// @Success 200 {object} map[string][]domain.Persona "Persona catalog"
// @Router /personas [get]
func (h *PersonaHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]domain.Persona{
		"personas": h.store.List(),
	})
}

// GetPersonaData handles GET /persona/{personaId}/data
// @Summary Get persona metric series
// @Description Return the persona's full day series with computed summary statistics.
// @Tags personas
// @Produce json
// @Param personaId path string true "Persona ID" example(active-alex)
// @Success 200 {object} domain.PersonaDataResponse "Persona data with summary"
// @Failure 404 {object} problem.Problem "Unknown persona"
// @Router /persona/{personaId}/data [get]
func (h *PersonaHandler) GetPersonaData(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaId")

	data, err := h.store.Data(personaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Unknown persona: " + personaID).Write(w)
			return
		}
		problem.InternalError("Failed to load persona data").Write(w)
		return
	}

	resp := domain.PersonaDataResponse{
		PersonaData: *data,
		Summary:     h.summaryService.Summarize(data.Data),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
