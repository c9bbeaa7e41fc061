package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/peterw/leadreach/internal/infra/http/middleware"
	"github.com/peterw/leadreach/internal/infra/integration/apollo"
)

type EnrichHandler struct {
	Apollo        *apollo.Client
	DefaultAPIKey string
}

func NewEnrichHandler(client *apollo.Client, defaultAPIKey string) *EnrichHandler {
	return &EnrichHandler{Apollo: client, DefaultAPIKey: defaultAPIKey}
}

func (h *EnrichHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	result, err := h.Apollo.Enrich(r.Context(), req.Email, h.DefaultAPIKey)
	if err != nil {
		middleware.RecordIntegrationError("apollo")
		writeErrorDetails(w, http.StatusInternalServerError, "Enrichment failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
