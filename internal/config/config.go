package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ArticleGate/internal/quality"
)

const (
	configPathEnv     = "ARTICLE_GATE_CONFIG"
	modeEnv           = "ARTICLE_GATE_MODE"
	portEnv           = "PORT"
	openAIKeyEnv      = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	openAIBaseURLEnv  = "OPENAI_BASE_URL"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
)

// Operating modes.
const (
	ModeListen = "listen"
	ModeInvoke = "invoke"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Database DatabaseConfig `yaml:"database"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
	Gate     GateConfig     `yaml:"gate"`
}

// ServerConfig describes the transport and the operating mode.
type ServerConfig struct {
	Mode         string   `yaml:"mode"`
	Port         int      `yaml:"port"`
	CORSOrigins  []string `yaml:"corsOrigins"`
	MaxBodyBytes int64    `yaml:"maxBodyBytes"`
}

// OpenAIConfig defines how to contact the generation backend.
type OpenAIConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"apiKey"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DatabaseConfig describes the Postgres audit log; an empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// TelegramConfig wires blocked-article alerts; empty values disable them.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls slog verbosity and output format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GateConfig holds the editorial policy thresholds and vocabularies.
type GateConfig struct {
	MinWords             int                  `yaml:"minWords"`
	MinSecondaryKeywords int                  `yaml:"minSecondaryKeywords"`
	MinSources           int                  `yaml:"minSources"`
	MaxSources           int                  `yaml:"maxSources"`
	TrustedDomains       []string             `yaml:"trustedDomains"`
	TrustedSuffixes      []string             `yaml:"trustedSuffixes"`
	FallbackLanguage     string               `yaml:"fallbackLanguage"`
	PatternSets          []quality.PatternSet `yaml:"patternSets"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalizeMode()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(modeEnv); v != "" {
		c.Server.Mode = v
	}

	if v := os.Getenv(portEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		} else {
			log.Printf("config: invalid %s=%q, keeping %d", portEnv, v, c.Server.Port)
		}
	}

	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(openAIBaseURLEnv); v != "" {
		c.OpenAI.BaseURL = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) normalizeMode() {
	mode := strings.ToLower(strings.TrimSpace(c.Server.Mode))
	switch mode {
	case ModeListen, ModeInvoke:
		c.Server.Mode = mode
	default:
		log.Printf("config: unknown mode %q, reverting to %s", c.Server.Mode, ModeListen)
		c.Server.Mode = ModeListen
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Mode != "" {
		base.Server.Mode = override.Server.Mode
	}
	if override.Server.Port > 0 {
		base.Server.Port = override.Server.Port
	}
	if len(override.Server.CORSOrigins) > 0 {
		base.Server.CORSOrigins = override.Server.CORSOrigins
	}
	if override.Server.MaxBodyBytes > 0 {
		base.Server.MaxBodyBytes = override.Server.MaxBodyBytes
	}

	if override.OpenAI.BaseURL != "" {
		base.OpenAI.BaseURL = override.OpenAI.BaseURL
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Temperature > 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}
	if override.OpenAI.Timeout > 0 {
		base.OpenAI.Timeout = override.OpenAI.Timeout
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Gate.MinWords > 0 {
		base.Gate.MinWords = override.Gate.MinWords
	}
	if override.Gate.MinSecondaryKeywords > 0 {
		base.Gate.MinSecondaryKeywords = override.Gate.MinSecondaryKeywords
	}
	if override.Gate.MinSources > 0 {
		base.Gate.MinSources = override.Gate.MinSources
	}
	if override.Gate.MaxSources > 0 {
		base.Gate.MaxSources = override.Gate.MaxSources
	}
	if len(override.Gate.TrustedDomains) > 0 {
		base.Gate.TrustedDomains = override.Gate.TrustedDomains
	}
	if len(override.Gate.TrustedSuffixes) > 0 {
		base.Gate.TrustedSuffixes = override.Gate.TrustedSuffixes
	}
	if override.Gate.FallbackLanguage != "" {
		base.Gate.FallbackLanguage = override.Gate.FallbackLanguage
	}
	if len(override.Gate.PatternSets) > 0 {
		base.Gate.PatternSets = override.Gate.PatternSets
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Mode:         ModeListen,
			Port:         8080,
			CORSOrigins:  []string{"*"},
			MaxBodyBytes: 1 << 20,
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.4,
			Timeout:     120 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Gate: GateConfig{
			MinWords:             quality.DefaultMinWords,
			MinSecondaryKeywords: quality.DefaultMinSecondaryKeywords,
			MinSources:           3,
			MaxSources:           6,
			TrustedDomains:       quality.DefaultTrustedDomains,
			TrustedSuffixes:      quality.DefaultTrustedSuffixes,
			FallbackLanguage:     "Arabic",
		},
	}
}
