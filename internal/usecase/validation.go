package usecase

import (
	"net/mail"
	"strings"

	"github.com/peterw/leadreach/internal/entity"
)

const maxEmailLength = 254

type EmailCheck struct {
	Valid bool
	Email string // trimmed, lowercased
	Error string
}

// ValidateEmail normalizes and checks a single address. The syntax check
// runs before the length check so garbage input reports as malformed, not
// merely too long.
func ValidateEmail(raw string) EmailCheck {
	if strings.TrimSpace(raw) == "" {
		return EmailCheck{Error: "Email is required"}
	}

	trimmed := strings.ToLower(strings.TrimSpace(raw))

	if !validEmailSyntax(trimmed) {
		return EmailCheck{Error: "Invalid email format"}
	}

	if len(trimmed) > maxEmailLength {
		return EmailCheck{Error: "Email too long"}
	}

	return EmailCheck{Valid: true, Email: trimmed}
}

func validEmailSyntax(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	// ParseAddress accepts bare "user@host"; outreach needs a real domain.
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

type LeadInput struct {
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	DisplayName  string `json:"display_name,omitempty"`
	Location     string `json:"location,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status,omitempty"`
}

type SanitizedLead struct {
	Email        string
	BusinessName string
	DisplayName  string
	Location     string
	Notes        string
	Status       string
}

type LeadValidation struct {
	Valid     bool
	Errors    []string
	Sanitized SanitizedLead
}

// ValidateLead checks one raw lead record and produces a sanitized copy
// with defaults applied. Pure function, never touches the store.
func ValidateLead(input LeadInput) LeadValidation {
	var errs []string

	emailCheck := ValidateEmail(input.Email)
	if !emailCheck.Valid {
		errs = append(errs, emailCheck.Error)
	}

	if strings.TrimSpace(input.BusinessName) == "" {
		errs = append(errs, "Business name is required")
	} else if len(input.BusinessName) > 200 {
		errs = append(errs, "Business name too long (max 200 characters)")
	}

	if len(input.Location) > 200 {
		errs = append(errs, "Location too long (max 200 characters)")
	}

	if len(input.Notes) > 1000 {
		errs = append(errs, "Notes too long (max 1000 characters)")
	}

	if input.Status != "" && !entity.ValidLeadStatus(input.Status) {
		errs = append(errs, "Invalid status value")
	}

	status := input.Status
	if status == "" {
		status = entity.LeadStatusNew
	}

	return LeadValidation{
		Valid:  len(errs) == 0,
		Errors: errs,
		Sanitized: SanitizedLead{
			Email:        emailCheck.Email,
			BusinessName: strings.TrimSpace(input.BusinessName),
			DisplayName:  strings.TrimSpace(input.DisplayName),
			Location:     strings.TrimSpace(input.Location),
			Notes:        strings.TrimSpace(input.Notes),
			Status:       status,
		},
	}
}
