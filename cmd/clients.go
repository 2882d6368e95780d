package main

import (
	"strconv"
	"time"

	"github.com/sells-group/outreach-cli/internal/compose"
	"github.com/sells-group/outreach-cli/internal/config"
	"github.com/sells-group/outreach-cli/internal/fetch"
	"github.com/sells-group/outreach-cli/internal/mailer"
	"github.com/sells-group/outreach-cli/internal/search"
	"github.com/sells-group/outreach-cli/pkg/llm"
	"github.com/sells-group/outreach-cli/pkg/pse"
	"github.com/sells-group/outreach-cli/pkg/serper"
)

// newLLMClient builds the model client for the configured provider. The
// provider tag has already been validated.
func newLLMClient(cfg *config.Config) (llm.Client, error) {
	c := llm.Config{
		Provider: llm.Provider(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
	}
	switch c.Provider {
	case llm.ProviderAnthropic:
		c.APIKey = cfg.LLM.AnthropicKey
	case llm.ProviderGoogle:
		c.APIKey = cfg.LLM.GoogleKey
	case llm.ProviderOpenAI:
		c.APIKey = cfg.LLM.OpenAIKey
	case llm.ProviderGroq:
		c.APIKey = cfg.LLM.GroqKey
	case llm.ProviderDeepSeek:
		c.APIKey = cfg.LLM.DeepSeekKey
	case llm.ProviderOllama:
		c.BaseURL = cfg.LLM.OllamaURL
	}
	return llm.New(c)
}

func newSearchProvider(cfg *config.Config) search.Provider {
	if cfg.Search.Provider == "pse" {
		return search.NewPSEProvider(pse.NewClient(cfg.Search.PSEKey, cfg.Search.PSEEngineID))
	}
	return search.NewSerperProvider(serper.NewClient(cfg.Search.SerperKey))
}

func newFetcher(cfg *config.Config) *fetch.PageFetcher {
	return fetch.NewPageFetcher(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs)*time.Second),
		fetch.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
	)
}

func senderProfile(cfg *config.Config) compose.Sender {
	return compose.Sender{
		Name:         cfg.Sender.CompanyName,
		Description:  cfg.Sender.Description,
		Instructions: cfg.Sender.Instructions,
	}
}

func mailerConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:           cfg.SMTP.Host,
		Port:           strconv.Itoa(cfg.SMTP.Port),
		SenderEmail:    cfg.SMTP.SenderEmail,
		SenderPassword: cfg.SMTP.SenderPassword,
		RedirectToTest: cfg.SMTP.RedirectToTest,
		TestAddress:    cfg.SMTP.TestAddress,
	}
}
