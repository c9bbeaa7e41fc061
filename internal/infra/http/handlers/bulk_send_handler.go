package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/peterw/leadreach/internal/infra/http/middleware"
	"github.com/peterw/leadreach/internal/infra/ratelimit"
	"github.com/peterw/leadreach/internal/usecase"
)

type BulkSendHandler struct {
	Dispatch    *usecase.BulkDispatchUseCase
	RateLimiter ratelimit.Limiter
}

func NewBulkSendHandler(dispatch *usecase.BulkDispatchUseCase, limiter ratelimit.Limiter) *BulkSendHandler {
	return &BulkSendHandler{
		Dispatch:    dispatch,
		RateLimiter: limiter,
	}
}

// BulkLeadInput accepts both the CSV-import shape (business) and the
// finder shape (name/role) the frontend produces.
type BulkLeadInput struct {
	Email    string `json:"email"`
	Business string `json:"business,omitempty"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Role     string `json:"role,omitempty"`
}

type BulkSendRequest struct {
	Leads       []BulkLeadInput             `json:"leads"`
	Credentials *usecase.RequestCredentials `json:"credentials,omitempty"`
}

func (h *BulkSendHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ip := getClientIP(r)
	if !h.RateLimiter.Allow(ip) {
		middleware.RecordRateLimitRejection()
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Max 10 bulk sends per hour.")
		return
	}

	var req BulkSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	input := usecase.BulkDispatchInput{
		Credentials: req.Credentials,
		Leads:       make([]usecase.LeadInput, 0, len(req.Leads)),
	}
	for _, lead := range req.Leads {
		business := lead.Business
		if business == "" {
			business = lead.Name
		}
		displayName := lead.Name
		if displayName == "" {
			displayName = lead.Business
		}
		input.Leads = append(input.Leads, usecase.LeadInput{
			Email:        lead.Email,
			BusinessName: business,
			DisplayName:  displayName,
			Location:     lead.Location,
			Notes:        lead.Role,
		})
	}

	output, err := h.Dispatch.Execute(r.Context(), input)
	if err != nil {
		switch usecase.DomainErrorCode(err) {
		case usecase.CodeNoLeads:
			writeError(w, http.StatusBadRequest, "No leads provided")
		case usecase.CodeTooManyLeads:
			writeError(w, http.StatusBadRequest, "Maximum 30 leads per request")
		case usecase.CodeMissingCredentials:
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	for _, result := range output.Results {
		switch result.Status {
		case usecase.StatusSent:
			middleware.RecordEmailSent(output.Provider)
		case usecase.StatusError:
			middleware.RecordEmailFailed(output.Provider)
		}
	}

	writeJSON(w, http.StatusOK, output)
}
