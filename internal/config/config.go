package config

import (
	"errors"
	"os"
	"strconv"
)

// app config, assembled from environment variables at boot
type Config struct {
	Provider string // LLM provider backing the grading oracle

	Port        string
	JWTSecret   string
	AdminSecret string

	RedisAddr string

	DailyAPIKey  string
	DailyBaseURL string

	RoundSeconds int

	// when enabled, the interrogation loop gates progression on the
	// answer validator and terminates on SPAM ratings
	StrictInterrogation bool
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:            getEnvOrDefault("AI_PROVIDER", "groq"),
		Port:                getEnvOrDefault("PORT", "8080"),
		JWTSecret:           getEnvOrDefault("JWT_SECRET", ""),
		AdminSecret:         getEnvOrDefault("ADMIN_SECRET", ""),
		RedisAddr:           getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		DailyAPIKey:         getEnvOrDefault("DAILY_API_KEY", ""),
		DailyBaseURL:        getEnvOrDefault("DAILY_BASE_URL", "https://api.daily.co/v1"),
		RoundSeconds:        getEnvIntOrDefault("ROUND_SECONDS", 1200),
		StrictInterrogation: getEnvOrDefault("INTERROGATION_STRICT", "false") == "true",
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "groq" && config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: groq, gemini")
	}
	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if config.AdminSecret == "" {
		return errors.New("ADMIN_SECRET environment variable is required")
	}
	if config.RoundSeconds <= 0 {
		return errors.New("ROUND_SECONDS must be positive")
	}
	// provider credentials are validated by the provider's own NewConfig
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
