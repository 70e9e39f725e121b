package llm

import (
	"context"
)

// defines the interface for LLM providers backing the grading oracle
type Provider interface {
	// CompleteJSON sends a system+user prompt pair and returns the raw text
	// of a completion that was requested in JSON mode.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"

	// the provider answered, but the payload failed schema validation;
	// callers must treat this as an error, never as a zero-valued verdict
	ErrCodeMalformed = "malformed_response"
)
