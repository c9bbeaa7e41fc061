package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.hunter.io/v2"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify asks Hunter whether an address is deliverable. This call fails
// open: a missing key or an unreachable provider both report valid, so a
// verification outage never blocks sending.
func (c *Client) Verify(ctx context.Context, email, apiKey string) (*VerificationResult, error) {
	if apiKey == "" {
		log.Println("hunter: no API key configured, skipping verification")
		return &VerificationResult{Valid: true, Provider: "skipped"}, nil
	}

	endpoint := fmt.Sprintf("%s/email-verifier?email=%s&api_key=%s",
		c.baseURL, url.QueryEscape(email), url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &VerificationResult{Valid: true, Provider: "error"}, nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("hunter: verification request failed: %v", err)
		return &VerificationResult{Valid: true, Provider: "error"}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("hunter: verifier returned status %d for %s", resp.StatusCode, email)
		return &VerificationResult{Valid: true, Provider: "error"}, nil
	}

	var response verifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Printf("hunter: decode failed: %v", err)
		return &VerificationResult{Valid: true, Provider: "error"}, nil
	}

	score := response.Data.Score
	return &VerificationResult{
		Valid:      response.Data.Status == "valid",
		Score:      &score,
		Result:     response.Data.Result,
		AcceptAll:  response.Data.AcceptAll,
		Disposable: response.Data.Disposable,
		Provider:   "hunter",
	}, nil
}
