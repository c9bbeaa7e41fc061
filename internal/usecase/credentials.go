package usecase

const (
	ProviderSendGrid = "sendgrid"
	ProviderGmail    = "gmail"
)

// RequestCredentials is the optional credentials object a caller may ship
// with a bulk-send body. The frontend fills it from the user's stored
// settings; anything present here wins over the environment.
type RequestCredentials struct {
	SendFrom     string `json:"sendFrom,omitempty"`
	AppPassword  string `json:"appPassword,omitempty"`
	SendgridKey  string `json:"sendgridKey,omitempty"`
	SendgridFrom string `json:"sendgridFrom,omitempty"`
	HunterKey    string `json:"hunterKey,omitempty"`
	ApolloKey    string `json:"apolloKey,omitempty"`
}

// EnvCredentials carries the process-wide defaults, read once in main.
type EnvCredentials struct {
	SendFrom     string
	AppPassword  string
	SendgridKey  string
	SendgridFrom string
	HunterKey    string
	ApolloKey    string
}

// ResolvedCredentials is the per-request outcome: which provider sends,
// from which address, and which optional keys are in play.
type ResolvedCredentials struct {
	Provider    string
	SendFrom    string
	AppPassword string
	SendgridKey string
	HunterKey   string
	ApolloKey   string
}

// ResolveCredentials applies the precedence cascade field by field:
// request-supplied value first, environment default second. Provider
// selection follows from whatever key resolves: SendGrid when an API key
// is present, otherwise the Gmail SMTP relay.
func ResolveCredentials(req *RequestCredentials, env EnvCredentials) (*ResolvedCredentials, error) {
	if req == nil {
		req = &RequestCredentials{}
	}

	resolved := &ResolvedCredentials{
		SendFrom:    firstNonEmpty(req.SendFrom, env.SendFrom, req.SendgridFrom, env.SendgridFrom),
		AppPassword: firstNonEmpty(req.AppPassword, env.AppPassword),
		SendgridKey: firstNonEmpty(req.SendgridKey, env.SendgridKey),
		HunterKey:   firstNonEmpty(req.HunterKey, env.HunterKey),
		ApolloKey:   firstNonEmpty(req.ApolloKey, env.ApolloKey),
	}

	if resolved.SendgridKey != "" {
		if resolved.SendFrom == "" {
			return nil, &DomainError{
				Code:    CodeMissingCredentials,
				Message: "SendGrid requires a verified sender address",
			}
		}
		resolved.Provider = ProviderSendGrid
		return resolved, nil
	}

	if resolved.SendFrom == "" || resolved.AppPassword == "" {
		return nil, &DomainError{
			Code:    CodeMissingCredentials,
			Message: "Missing email credentials. Set SENDGRID_API_KEY or SEND_EMAIL_FROM+APP_PASSWORD",
		}
	}

	resolved.Provider = ProviderGmail
	return resolved, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
