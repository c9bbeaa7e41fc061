package hunter

// VerificationResult is what the rest of the app sees. Provider tells the
// caller how the answer was produced: "hunter" for a real verdict,
// "skipped" when no key was configured, "error" when the provider could
// not be reached. The latter two always report valid.
type VerificationResult struct {
	Valid      bool   `json:"valid"`
	Score      *int   `json:"score"`
	Result     string `json:"result,omitempty"` // deliverable, undeliverable, risky, unknown
	AcceptAll  bool   `json:"acceptAll,omitempty"`
	Disposable bool   `json:"disposable,omitempty"`
	Provider   string `json:"provider"`
}

const ResultUndeliverable = "undeliverable"

type verifierResponse struct {
	Data struct {
		Status     string `json:"status"`
		Result     string `json:"result"`
		Score      int    `json:"score"`
		AcceptAll  bool   `json:"accept_all"`
		Disposable bool   `json:"disposable"`
	} `json:"data"`
}
