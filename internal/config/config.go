package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Sender SenderConfig `yaml:"sender" mapstructure:"sender"`
	SMTP   SMTPConfig   `yaml:"smtp" mapstructure:"smtp"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// LLMConfig selects the model provider and holds per-provider credentials.
type LLMConfig struct {
	Provider     string `yaml:"provider" mapstructure:"provider"`
	Model        string `yaml:"model" mapstructure:"model"`
	AnthropicKey string `yaml:"anthropic_key" mapstructure:"anthropic_key"`
	GoogleKey    string `yaml:"google_key" mapstructure:"google_key"`
	OpenAIKey    string `yaml:"openai_key" mapstructure:"openai_key"`
	GroqKey      string `yaml:"groq_key" mapstructure:"groq_key"`
	DeepSeekKey  string `yaml:"deepseek_key" mapstructure:"deepseek_key"`
	OllamaURL    string `yaml:"ollama_url" mapstructure:"ollama_url"`
}

// SearchConfig selects the search backend and holds its credentials.
type SearchConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"`
	SerperKey   string `yaml:"serper_key" mapstructure:"serper_key"`
	PSEKey      string `yaml:"pse_key" mapstructure:"pse_key"`
	PSEEngineID string `yaml:"pse_engine_id" mapstructure:"pse_engine_id"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	TimeoutSecs  int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBodyBytes int `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// SenderConfig describes the outreach sender profile used for composition.
type SenderConfig struct {
	CompanyName  string `yaml:"company_name" mapstructure:"company_name"`
	Description  string `yaml:"description" mapstructure:"description"`
	Instructions string `yaml:"instructions" mapstructure:"instructions"`
}

// SMTPConfig holds mail relay credentials and the test-redirect switch.
type SMTPConfig struct {
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	SenderEmail    string `yaml:"sender_email" mapstructure:"sender_email"`
	SenderPassword string `yaml:"sender_password" mapstructure:"sender_password"`
	RedirectToTest bool   `yaml:"redirect_to_test" mapstructure:"redirect_to_test"`
	TestAddress    string `yaml:"test_address" mapstructure:"test_address"`
}

// OutputConfig configures where tabular output lands.
type OutputConfig struct {
	ProspectsDir string `yaml:"prospects_dir" mapstructure:"prospects_dir"`
	DraftsDir    string `yaml:"drafts_dir" mapstructure:"drafts_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.ollama_url", "http://localhost:11434")
	v.SetDefault("search.provider", "serper")
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.max_body_bytes", 512*1024)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.redirect_to_test", true)
	v.SetDefault("output.prospects_dir", "extractions")
	v.SetDefault("output.drafts_dir", "composed_emails")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration a stage depends on is present.
// Missing credentials and unknown provider tags fail here, before any work
// starts; no stage can make partial progress without them.
func (c *Config) Validate(stage string) error {
	switch stage {
	case "discover":
		if err := c.validateLLM(); err != nil {
			return err
		}
		return c.validateSearch()
	case "compose":
		return c.validateLLM()
	case "send":
		if c.SMTP.SenderEmail == "" || c.SMTP.SenderPassword == "" {
			return eris.New("config: smtp.sender_email and smtp.sender_password are required")
		}
		if c.SMTP.RedirectToTest && c.SMTP.TestAddress == "" {
			return eris.New("config: smtp.test_address is required when smtp.redirect_to_test is set")
		}
		return nil
	default:
		return eris.Errorf("config: unknown stage %q", stage)
	}
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case "anthropic":
		if c.LLM.AnthropicKey == "" {
			return eris.New("config: llm.anthropic_key is required")
		}
	case "google":
		if c.LLM.GoogleKey == "" {
			return eris.New("config: llm.google_key is required")
		}
	case "openai":
		if c.LLM.OpenAIKey == "" {
			return eris.New("config: llm.openai_key is required")
		}
	case "groq":
		if c.LLM.GroqKey == "" {
			return eris.New("config: llm.groq_key is required")
		}
	case "deepseek":
		if c.LLM.DeepSeekKey == "" {
			return eris.New("config: llm.deepseek_key is required")
		}
	case "ollama":
		if c.LLM.OllamaURL == "" {
			return eris.New("config: llm.ollama_url is required")
		}
	default:
		return eris.Errorf("config: unsupported llm provider %q", c.LLM.Provider)
	}
	return nil
}

func (c *Config) validateSearch() error {
	switch c.Search.Provider {
	case "serper":
		if c.Search.SerperKey == "" {
			return eris.New("config: search.serper_key is required")
		}
	case "pse":
		if c.Search.PSEKey == "" || c.Search.PSEEngineID == "" {
			return eris.New("config: search.pse_key and search.pse_engine_id are required")
		}
	default:
		return eris.Errorf("config: unsupported search provider %q", c.Search.Provider)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
