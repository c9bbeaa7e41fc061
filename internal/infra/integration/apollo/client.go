package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.apollo.io/v1"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Enrich looks up a person by email. Like verification, enrichment is a
// nice-to-have: missing key or provider failure degrade to "not enriched"
// instead of an error.
func (c *Client) Enrich(ctx context.Context, email, apiKey string) (*EnrichmentResult, error) {
	if apiKey == "" {
		log.Println("apollo: no API key configured, skipping enrichment")
		return &EnrichmentResult{Enriched: false, Provider: "skipped"}, nil
	}

	var response matchResponse
	if err := c.post(ctx, "/people/match", apiKey, matchRequest{Email: email}, &response); err != nil {
		log.Printf("apollo: enrichment failed for %s: %v", email, err)
		return &EnrichmentResult{Enriched: false, Provider: "error"}, nil
	}

	if response.Person == nil {
		return &EnrichmentResult{Enriched: false, Provider: "apollo"}, nil
	}

	p := response.Person
	data := &PersonData{
		Name:        p.Name,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Title:       p.Title,
		Location:    p.location(),
		LinkedIn:    p.LinkedinURL,
		EmailStatus: p.EmailStatus,
	}
	if p.Organization != nil {
		data.Company = p.Organization.Name
		data.CompanyDomain = p.Organization.WebsiteURL
	}
	if len(p.PhoneNumbers) > 0 {
		data.Phone = p.PhoneNumbers[0]
	}

	return &EnrichmentResult{Enriched: true, Provider: "apollo", Data: data}, nil
}

// FindPeople searches contacts at a company domain. Unlike Enrich this is
// the primary purpose of its endpoint, so a missing key is an error here.
func (c *Client) FindPeople(ctx context.Context, domain string, limit int, apiKey string) ([]Candidate, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apollo API key not set")
	}

	payload := searchRequest{
		OrganizationDomains: []string{domain},
		Page:                1,
		PerPage:             limit,
	}

	var response searchResponse
	if err := c.post(ctx, "/mixed_people/search", apiKey, payload, &response); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(response.People))
	for i := range response.People {
		p := &response.People[i]
		candidate := Candidate{
			Name:     p.Name,
			Email:    p.Email,
			Title:    p.Title,
			Location: p.location(),
			LinkedIn: p.LinkedinURL,
		}
		if p.Organization != nil {
			candidate.Company = p.Organization.Name
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (c *Client) post(ctx context.Context, path, apiKey string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("apollo marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apollo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("apollo returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apollo decode: %w", err)
	}

	return nil
}
