package configuration

import (
	"os"
	"strings"
)

const defaultEnrichConcurrency = 4

// YouTubeConfig represents YouTube Data API configuration
type YouTubeConfig struct {
	APIKey      string
	Concurrency int
}

// GetYouTubeConfig returns YouTube configuration from JSON config with environment variable fallback
func GetYouTubeConfig() *YouTubeConfig {
	config := &YouTubeConfig{
		APIKey:      getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
		Concurrency: C.YouTube.Concurrency,
	}
	if config.Concurrency <= 0 {
		config.Concurrency = defaultEnrichConcurrency
	}
	return config
}

// getConfigValue gets value from config first, then environment variable, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	// Environment variable takes precedence when provided
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
