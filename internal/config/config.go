package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from environment variables
// or an optional .env file.
type Config struct {
	AppPort       int    `mapstructure:"APP_PORT"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	CORSOrigins   string `mapstructure:"CORS_ORIGINS"`

	// Generator settings. Provider is a configuration-time choice; every
	// supported provider speaks the OpenAI-compatible chat completion API,
	// differing only in base URL and model name.
	LLMProvider  string `mapstructure:"LLM_PROVIDER"`
	LLMAPIKey    string `mapstructure:"LLM_API_KEY"`
	LLMBaseURL   string `mapstructure:"LLM_BASE_URL"`
	LLMModel     string `mapstructure:"LLM_MODEL"`
	SystemPrompt string `mapstructure:"SYSTEM_PROMPT"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "./data/elelem.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-do-not-use-in-production")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000")
	viper.SetDefault("LLM_PROVIDER", "openai")
	viper.SetDefault("LLM_BASE_URL", "")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("SYSTEM_PROMPT", "")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Origins splits the comma-separated CORS_ORIGINS value.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
