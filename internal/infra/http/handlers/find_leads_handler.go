package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/peterw/leadreach/internal/infra/http/middleware"
	"github.com/peterw/leadreach/internal/infra/integration/apollo"
)

const maxFindLimit = 50

type FindLeadsHandler struct {
	Apollo        *apollo.Client
	DefaultAPIKey string
}

func NewFindLeadsHandler(client *apollo.Client, defaultAPIKey string) *FindLeadsHandler {
	return &FindLeadsHandler{Apollo: client, DefaultAPIKey: defaultAPIKey}
}

func (h *FindLeadsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Domain    string `json:"domain"`
		Limit     int    `json:"limit,omitempty"`
		ApolloKey string `json:"apolloKey,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Domain == "" {
		writeError(w, http.StatusBadRequest, "Domain is required")
		return
	}

	if req.Limit > maxFindLimit {
		writeError(w, http.StatusBadRequest, "Limit cannot exceed 50")
		return
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	key := req.ApolloKey
	if key == "" {
		key = h.DefaultAPIKey
	}

	leads, err := h.Apollo.FindPeople(r.Context(), req.Domain, req.Limit, key)
	if err != nil {
		middleware.RecordIntegrationError("apollo")
		writeErrorDetails(w, http.StatusInternalServerError, "Lead search failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"count": len(leads),
	})
}
