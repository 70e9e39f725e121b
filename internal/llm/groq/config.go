package groq

import (
	"errors"
	"os"
)

// holds Groq-specific configuration
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GROQ_API_KEY environment variable is required")
	}

	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile" // default model
	}

	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	return &Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	}, nil
}
