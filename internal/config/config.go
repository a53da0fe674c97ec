// Package config provides centralized configuration management for the
// application. Everything is environment-first so the same binary works in
// local and hosted setups.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	UserID      string
	Language    string
	DatabaseURL string
	GitHub      GitHubConfig
	AI          AIConfig
}

// GitHubConfig holds GitHub client tuning knobs.
type GitHubConfig struct {
	Token          string
	RequestTimeout time.Duration
	MaxRetries     int
}

// AIConfig holds per-backend credentials and model names. An empty APIKey
// means the backend is skipped without a network call.
type AIConfig struct {
	Backends map[string]BackendConfig
	// Order is the fixed backend preference order.
	Order []string
}

// BackendConfig configures one text-generation backend.
type BackendConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("codula.user", "")
	v.SetDefault("codula.language", "en")
	v.SetDefault("github.timeout_seconds", 15)
	v.SetDefault("github.max_retries", 2)
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("ai.timeout_seconds", 8)

	_ = v.BindEnv("codula.user", "CODULA_USER")
	_ = v.BindEnv("codula.language", "CODULA_LANGUAGE")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("gemini.model", "GEMINI_MODEL")
	_ = v.BindEnv("groq.api_key", "GROQ_API_KEY")
	_ = v.BindEnv("groq.model", "GROQ_MODEL")

	aiTimeout := time.Duration(v.GetInt("ai.timeout_seconds")) * time.Second

	config := &Config{
		UserID:      v.GetString("codula.user"),
		Language:    v.GetString("codula.language"),
		DatabaseURL: v.GetString("database.url"),
		GitHub: GitHubConfig{
			Token:          v.GetString("github.token"),
			RequestTimeout: time.Duration(v.GetInt("github.timeout_seconds")) * time.Second,
			MaxRetries:     v.GetInt("github.max_retries"),
		},
		AI: AIConfig{
			Backends: map[string]BackendConfig{
				"gemini": {
					APIKey:  v.GetString("gemini.api_key"),
					Model:   v.GetString("gemini.model"),
					Timeout: aiTimeout,
				},
				"groq": {
					APIKey:  v.GetString("groq.api_key"),
					Model:   v.GetString("groq.model"),
					Timeout: aiTimeout,
				},
			},
			Order: []string{"gemini", "groq"},
		},
	}

	return config, nil
}
