package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "serper", cfg.Search.Provider)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.RedirectToTest)
	assert.Equal(t, 15, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, "extractions", cfg.Output.ProspectsDir)
	assert.Equal(t, "composed_emails", cfg.Output.DraftsDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OUTREACH_LLM_PROVIDER", "ollama")
	t.Setenv("OUTREACH_SEARCH_PROVIDER", "pse")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "pse", cfg.Search.Provider)
}

func TestValidate_Discover(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "valid anthropic serper",
			mutate: func(c *Config) {
				c.LLM.Provider = "anthropic"
				c.LLM.AnthropicKey = "k"
				c.Search.Provider = "serper"
				c.Search.SerperKey = "k"
			},
		},
		{
			name: "missing anthropic key",
			mutate: func(c *Config) {
				c.LLM.Provider = "anthropic"
				c.Search.Provider = "serper"
				c.Search.SerperKey = "k"
			},
			wantErr: "anthropic_key",
		},
		{
			name: "valid google serper",
			mutate: func(c *Config) {
				c.LLM.Provider = "google"
				c.LLM.GoogleKey = "k"
				c.Search.Provider = "serper"
				c.Search.SerperKey = "k"
			},
		},
		{
			name: "missing google key",
			mutate: func(c *Config) {
				c.LLM.Provider = "google"
				c.Search.Provider = "serper"
				c.Search.SerperKey = "k"
			},
			wantErr: "google_key",
		},
		{
			name: "unsupported llm provider",
			mutate: func(c *Config) {
				c.LLM.Provider = "palmtree"
			},
			wantErr: "unsupported llm provider",
		},
		{
			name: "unsupported search provider",
			mutate: func(c *Config) {
				c.LLM.Provider = "ollama"
				c.LLM.OllamaURL = "http://localhost:11434"
				c.Search.Provider = "bing"
			},
			wantErr: "unsupported search provider",
		},
		{
			name: "pse missing engine id",
			mutate: func(c *Config) {
				c.LLM.Provider = "ollama"
				c.LLM.OllamaURL = "http://localhost:11434"
				c.Search.Provider = "pse"
				c.Search.PSEKey = "k"
			},
			wantErr: "pse_engine_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			tt.mutate(&cfg)
			err := cfg.Validate("discover")
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_Send(t *testing.T) {
	cfg := Config{SMTP: SMTPConfig{SenderEmail: "me@example.com", SenderPassword: "pw"}}
	assert.NoError(t, cfg.Validate("send"))

	cfg.SMTP.RedirectToTest = true
	err := cfg.Validate("send")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test_address")

	cfg.SMTP.TestAddress = "sink@example.com"
	assert.NoError(t, cfg.Validate("send"))

	cfg.SMTP.SenderPassword = ""
	assert.Error(t, cfg.Validate("send"))
}

func TestValidate_UnknownStage(t *testing.T) {
	var cfg Config
	err := cfg.Validate("deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage")
}
