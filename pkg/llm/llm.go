// Package llm provides a provider-agnostic chat completion client.
//
// A Client sends one system instruction and one user instruction and
// returns the model's text response. Variants exist for the Anthropic API,
// OpenAI-compatible APIs (OpenAI, Groq, DeepSeek) and a locally hosted
// Ollama server; prompts are identical across providers.
package llm

import (
	"context"

	"github.com/rotisserie/eris"
)

// Provider identifies a supported model backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderOpenAI    Provider = "openai"
	ProviderGroq      Provider = "groq"
	ProviderDeepSeek  Provider = "deepseek"
	ProviderOllama    Provider = "ollama"
)

// Client sends a single chat request and returns the completion text.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider Provider
	Model    string // empty selects the provider default
	APIKey   string
	BaseURL  string // empty selects the provider default
}

// Default models per provider.
const (
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
	defaultGoogleModel    = "gemini-2.0-flash-lite"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultDeepSeekModel  = "deepseek-chat"
	defaultOllamaModel    = "llama3.2"
)

// OpenAI-compatible base URLs.
const (
	openAIBaseURL   = "https://api.openai.com/v1"
	groqBaseURL     = "https://api.groq.com/openai/v1"
	deepSeekBaseURL = "https://api.deepseek.com/v1"
	ollamaBaseURL   = "http://localhost:11434"
)

// New builds a Client for the configured provider. Unknown provider tags
// are a configuration error.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return newAnthropicClient(cfg.APIKey, orDefault(cfg.Model, defaultAnthropicModel), cfg.BaseURL), nil
	case ProviderGoogle:
		return newGoogleClient(cfg.APIKey, orDefault(cfg.Model, defaultGoogleModel), cfg.BaseURL)
	case ProviderOpenAI:
		return newOpenAIClient(cfg.APIKey, orDefault(cfg.Model, defaultOpenAIModel), orDefault(cfg.BaseURL, openAIBaseURL)), nil
	case ProviderGroq:
		return newOpenAIClient(cfg.APIKey, orDefault(cfg.Model, defaultGroqModel), orDefault(cfg.BaseURL, groqBaseURL)), nil
	case ProviderDeepSeek:
		return newOpenAIClient(cfg.APIKey, orDefault(cfg.Model, defaultDeepSeekModel), orDefault(cfg.BaseURL, deepSeekBaseURL)), nil
	case ProviderOllama:
		return newOllamaClient(orDefault(cfg.Model, defaultOllamaModel), orDefault(cfg.BaseURL, ollamaBaseURL)), nil
	default:
		return nil, eris.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
