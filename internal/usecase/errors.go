package usecase

// Error codes the HTTP layer maps to status codes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNoLeads            = "NO_LEADS"
	CodeTooManyLeads       = "TOO_MANY_LEADS"
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeDatabase           = "DATABASE_ERROR"
)

// DomainError: the caller sent something we refuse to process.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: a dependency failed underneath us.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func DomainErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}
