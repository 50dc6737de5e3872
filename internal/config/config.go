// Package config loads application configuration from file and environment
// and owns global logger setup.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Archive  ArchiveConfig  `yaml:"archive" mapstructure:"archive"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Context  ContextConfig  `yaml:"context" mapstructure:"context"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Hearings HearingsConfig `yaml:"hearings" mapstructure:"hearings"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ArchiveConfig configures the case archive root.
type ArchiveConfig struct {
	RootDir string `yaml:"root_dir" mapstructure:"root_dir"`
}

// ExtractConfig configures text extraction.
type ExtractConfig struct {
	PdfToTextPath   string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MinPDFTextChars int    `yaml:"min_pdf_text_chars" mapstructure:"min_pdf_text_chars"`
	Concurrency     int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// ContextConfig configures prompt-context assembly.
type ContextConfig struct {
	BudgetChars int `yaml:"budget_chars" mapstructure:"budget_chars"`
}

// LLMConfig configures the completion-service backend and fallback chain.
type LLMConfig struct {
	Backend           string `yaml:"backend" mapstructure:"backend"`
	GeminiAPIKey      string `yaml:"gemini_api_key" mapstructure:"gemini_api_key"`
	AnthropicAPIKey   string `yaml:"anthropic_api_key" mapstructure:"anthropic_api_key"`
	TimeoutSecs       int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	MaxTokens         int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Timeout returns the per-candidate completion timeout.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// HearingsConfig configures the hearing calendar store.
type HearingsConfig struct {
	StorePath string `yaml:"store_path" mapstructure:"store_path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("CASECLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("archive.root_dir", "Hukuk_Arsivi")
	v.SetDefault("extract.pdftotext_path", "pdftotext")
	v.SetDefault("extract.min_pdf_text_chars", 50)
	v.SetDefault("extract.concurrency", 4)
	v.SetDefault("context.budget_chars", 100_000)
	v.SetDefault("llm.backend", "gemini")
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.requests_per_minute", 30)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("hearings.store_path", "hearings.json")

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

// Validate checks that the fields a command needs are present and sane.
// Mode names the command group: "archive" for local-only archive work,
// "ask" for anything that reaches the completion service, "serve" for the
// HTTP server (which needs both).
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Extract.Concurrency < 1 || c.Extract.Concurrency > 32 {
		problems = append(problems, "extract.concurrency must be between 1 and 32")
	}
	if c.Context.BudgetChars < 0 {
		problems = append(problems, "context.budget_chars must be >= 0")
	}

	needsLLM := false
	switch mode {
	case "archive":
	case "ask":
		needsLLM = true
	case "serve":
		needsLLM = true
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if needsLLM {
		switch c.LLM.Backend {
		case "gemini", "":
			if c.LLM.GeminiAPIKey == "" {
				problems = append(problems, "llm.gemini_api_key is required")
			}
		case "anthropic":
			if c.LLM.AnthropicAPIKey == "" {
				problems = append(problems, "llm.anthropic_api_key is required")
			}
		default:
			problems = append(problems, "llm.backend must be gemini or anthropic")
		}
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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
