package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	CORSOrigins []string
	LogLevel    string

	// OpenAI configuration
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIMaxTokens int

	// System policy override (path to a text file; empty keeps the default)
	SystemPolicyFile string

	// Persona data directory; empty falls back to generated personas
	PersonaDataDir string

	// Meeting service configuration
	MeetingsBaseURL  string
	MeetingCacheSize int
	MeetingCacheTTL  time.Duration

	// Langfuse configuration
	LangfuseBaseURL   string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseEnv       string
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8000"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIMaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 10000),

		SystemPolicyFile: getEnv("SYSTEM_POLICY_FILE", ""),
		PersonaDataDir:   getEnv("PERSONA_DATA_DIR", ""),

		MeetingsBaseURL:  getEnv("MEETINGS_BASE_URL", ""),
		MeetingCacheSize: getEnvInt("MEETING_CACHE_SIZE", 256),
		MeetingCacheTTL:  getEnvDuration("MEETING_CACHE_TTL", 5*time.Minute),

		LangfuseBaseURL:   getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:       getEnv("LANGFUSE_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
