package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/peterw/leadreach/internal/entity"
	"github.com/peterw/leadreach/internal/infra/integration/supaauth"
)

type CredentialsHandler struct {
	Auth  *supaauth.Client
	Creds entity.CredentialsRepositoryInterface
}

func NewCredentialsHandler(auth *supaauth.Client, creds entity.CredentialsRepositoryInterface) *CredentialsHandler {
	return &CredentialsHandler{Auth: auth, Creds: creds}
}

type credentialsResponse struct {
	HasCredentials bool               `json:"hasCredentials"`
	Message        string             `json:"message,omitempty"`
	Credentials    *storedCredentials `json:"credentials,omitempty"`
}

type storedCredentials struct {
	Provider     string `json:"provider"`
	SendFrom     string `json:"sendFrom"`
	AppPassword  string `json:"appPassword,omitempty"`
	SendgridKey  string `json:"sendgridKey,omitempty"`
	SendgridFrom string `json:"sendgridFrom,omitempty"`
	HunterKey    string `json:"hunterKey,omitempty"`
	ApolloKey    string `json:"apolloKey,omitempty"`
}

func (h *CredentialsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	user, err := h.Auth.GetUser(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	creds, err := h.Creds.FindByUserID(r.Context(), user.ID)
	if errors.Is(err, entity.ErrCredentialsNotFound) {
		writeJSON(w, http.StatusOK, credentialsResponse{
			HasCredentials: false,
			Message:        "No credentials configured. Please visit Settings to add your email credentials.",
		})
		return
	}
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to fetch credentials", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, credentialsResponse{
		HasCredentials: true,
		Credentials: &storedCredentials{
			Provider:     creds.Provider,
			SendFrom:     creds.SendFrom,
			AppPassword:  creds.AppPassword,
			SendgridKey:  creds.SendgridKey,
			SendgridFrom: creds.SendgridFrom,
			HunterKey:    creds.HunterKey,
			ApolloKey:    creds.ApolloKey,
		},
	})
}
