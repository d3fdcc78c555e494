package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Query   QueryConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DatasetConfig holds the paths of the two source data files.
type DatasetConfig struct {
	NeoCSVPath  string
	CadJSONPath string
}

// QueryConfig holds limits applied to query operations.
type QueryConfig struct {
	MaxLimit int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("NEO_CSV_PATH", "data/neos.csv")
	v.SetDefault("CAD_JSON_PATH", "data/cad.json")
	v.SetDefault("QUERY_MAX_LIMIT", 1000)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Dataset: DatasetConfig{
			NeoCSVPath:  v.GetString("NEO_CSV_PATH"),
			CadJSONPath: v.GetString("CAD_JSON_PATH"),
		},
		Query: QueryConfig{
			MaxLimit: v.GetInt("QUERY_MAX_LIMIT"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Dataset.NeoCSVPath == "" {
		return fmt.Errorf("NEO_CSV_PATH is required")
	}
	if c.Dataset.CadJSONPath == "" {
		return fmt.Errorf("CAD_JSON_PATH is required")
	}
	if c.Query.MaxLimit < 1 {
		return fmt.Errorf("QUERY_MAX_LIMIT must be at least 1")
	}
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}
	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
