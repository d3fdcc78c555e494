package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "data/neos.csv", cfg.Dataset.NeoCSVPath)
	assert.Equal(t, "data/cad.json", cfg.Dataset.CadJSONPath)
	assert.Equal(t, 1000, cfg.Query.MaxLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.Origins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("NEO_CSV_PATH", "/srv/data/neos.csv")
	t.Setenv("CAD_JSON_PATH", "/srv/data/cad.json")
	t.Setenv("QUERY_MAX_LIMIT", "50")
	t.Setenv("CORS_ORIGINS", "https://neowatch.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "/srv/data/neos.csv", cfg.Dataset.NeoCSVPath)
	assert.Equal(t, "/srv/data/cad.json", cfg.Dataset.CadJSONPath)
	assert.Equal(t, 50, cfg.Query.MaxLimit)
	assert.Equal(t, []string{"https://neowatch.example.com", "https://staging.example.com"}, cfg.CORS.Origins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080", Env: "development"},
			Dataset: DatasetConfig{NeoCSVPath: "data/neos.csv", CadJSONPath: "data/cad.json"},
			Query:   QueryConfig{MaxLimit: 1000},
			CORS:    CORSConfig{Origins: []string{"http://localhost:3000"}},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: ""},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "PORT"},
		{name: "missing neo path", mutate: func(c *Config) { c.Dataset.NeoCSVPath = "" }, wantErr: "NEO_CSV_PATH"},
		{name: "missing cad path", mutate: func(c *Config) { c.Dataset.CadJSONPath = "" }, wantErr: "CAD_JSON_PATH"},
		{name: "zero max limit", mutate: func(c *Config) { c.Query.MaxLimit = 0 }, wantErr: "QUERY_MAX_LIMIT"},
		{name: "no origins", mutate: func(c *Config) { c.CORS.Origins = nil }, wantErr: "CORS_ORIGINS"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Empty(t, parseOrigins(""))
	assert.Equal(t, []string{"a"}, parseOrigins("a"))
	assert.Equal(t, []string{"a", "b"}, parseOrigins("a, b"))
	assert.Equal(t, []string{"a", "b"}, parseOrigins("a,,b,"))
}
