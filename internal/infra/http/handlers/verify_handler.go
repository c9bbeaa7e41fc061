package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/peterw/leadreach/internal/infra/http/middleware"
	"github.com/peterw/leadreach/internal/infra/integration/hunter"
)

type VerifyHandler struct {
	Hunter        *hunter.Client
	DefaultAPIKey string
}

func NewVerifyHandler(client *hunter.Client, defaultAPIKey string) *VerifyHandler {
	return &VerifyHandler{Hunter: client, DefaultAPIKey: defaultAPIKey}
}

func (h *VerifyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		HunterKey string `json:"hunterKey,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	key := req.HunterKey
	if key == "" {
		key = h.DefaultAPIKey
	}

	result, err := h.Hunter.Verify(r.Context(), req.Email, key)
	if err != nil {
		middleware.RecordIntegrationError("hunter")
		writeErrorDetails(w, http.StatusInternalServerError, "Verification failed", err.Error())
		return
	}

	middleware.RecordVerification(result.Provider)
	writeJSON(w, http.StatusOK, result)
}
