package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Asia/Shanghai"

	configPathEnv       = "PRODUCT_RADAR_CONFIG"
	databaseDSNEnv      = "DATABASE_DSN"
	productHuntTokenEnv = "PRODUCT_HUNT_TOKEN"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChannelEnv  = "TELEGRAM_CHANNEL_ID"
	deepSeekAPIKeyEnv   = "DEEPSEEK_API_KEY"
	openAIAPIKeyEnv     = "OPENAI_API_KEY"
	geminiAPIKeyEnv     = "GEMINI_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	ProductHunt ProductHuntConfig `yaml:"product_hunt"`
	AI          AIConfig          `yaml:"ai"`
	DeepSeek    ProviderConfig    `yaml:"deepseek"`
	OpenAI      ProviderConfig    `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Telegram    TelegramConfig    `yaml:"telegram"`
	Language    LanguageConfig    `yaml:"language"`
	Scheduling  SchedulingConfig  `yaml:"scheduling"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ProductHuntConfig describes the content source endpoints. A missing
// developer token switches the source to the public feed fallback.
type ProductHuntConfig struct {
	DeveloperToken string `yaml:"developerToken"`
	APIURL         string `yaml:"apiUrl"`
	FeedURL        string `yaml:"feedUrl"`
}

// AIConfig selects the analysis backend by name.
type AIConfig struct {
	Provider string `yaml:"provider"`
}

// ProviderConfig wires an OpenAI-compatible chat completion backend.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
}

// GeminiConfig wires the Gemini generateContent backend.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// TelegramConfig wires all data required to publish to the channel.
type TelegramConfig struct {
	BotToken  string `yaml:"botToken"`
	ChannelID string `yaml:"channelId"`
}

// LanguageConfig selects the output language for messages and prompts.
type LanguageConfig struct {
	OutputLanguage string `yaml:"outputLanguage"`
}

// SchedulingConfig defines when the three reports run.
type SchedulingConfig struct {
	Timezone   string         `yaml:"timezone"`
	DailyTime  string         `yaml:"dailyTime"`
	WeeklyDay  string         `yaml:"weeklyDay"`
	MonthlyDay int            `yaml:"monthlyDay"`
	location   *time.Location `yaml:"-"`
}

// Location resolves the scheduling timezone string to a time.Location.
func (s SchedulingConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// DatabaseConfig describes the optional run-history store. Empty DSN
// disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig selects verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An empty path falls back to the PRODUCT_RADAR_CONFIG variable.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
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
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(productHuntTokenEnv); v != "" {
		c.ProductHunt.DeveloperToken = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChannelEnv); v != "" {
		c.Telegram.ChannelID = v
	}

	if v := os.Getenv(deepSeekAPIKeyEnv); v != "" {
		c.DeepSeek.APIKey = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduling.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduling.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.ProductHunt.DeveloperToken != "" {
		base.ProductHunt.DeveloperToken = override.ProductHunt.DeveloperToken
	}
	if override.ProductHunt.APIURL != "" {
		base.ProductHunt.APIURL = override.ProductHunt.APIURL
	}
	if override.ProductHunt.FeedURL != "" {
		base.ProductHunt.FeedURL = override.ProductHunt.FeedURL
	}

	if override.AI.Provider != "" {
		base.AI.Provider = override.AI.Provider
	}

	base.DeepSeek = mergeProvider(base.DeepSeek, override.DeepSeek)
	base.OpenAI = mergeProvider(base.OpenAI, override.OpenAI)

	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChannelID != "" {
		base.Telegram.ChannelID = override.Telegram.ChannelID
	}

	if override.Language.OutputLanguage != "" {
		base.Language.OutputLanguage = override.Language.OutputLanguage
	}

	if override.Scheduling.Timezone != "" {
		base.Scheduling.Timezone = override.Scheduling.Timezone
	}
	if override.Scheduling.DailyTime != "" {
		base.Scheduling.DailyTime = override.Scheduling.DailyTime
	}
	if override.Scheduling.WeeklyDay != "" {
		base.Scheduling.WeeklyDay = override.Scheduling.WeeklyDay
	}
	if override.Scheduling.MonthlyDay != 0 {
		base.Scheduling.MonthlyDay = override.Scheduling.MonthlyDay
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func mergeProvider(base, override ProviderConfig) ProviderConfig {
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	if override.BaseURL != "" {
		base.BaseURL = override.BaseURL
	}
	if override.Model != "" {
		base.Model = override.Model
	}
	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		ProductHunt: ProductHuntConfig{
			APIURL:  "https://api.producthunt.com/v2/api/graphql",
			FeedURL: "https://www.producthunt.com/feed",
		},
		AI: AIConfig{Provider: "deepseek"},
		DeepSeek: ProviderConfig{
			BaseURL: "https://api.deepseek.com",
			Model:   "deepseek-chat",
		},
		OpenAI: ProviderConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Gemini:   GeminiConfig{Model: "gemini-1.5-flash"},
		Language: LanguageConfig{OutputLanguage: "zh"},
		Scheduling: SchedulingConfig{
			Timezone:   defaultTimezone,
			DailyTime:  "09:00",
			WeeklyDay:  "monday",
			MonthlyDay: 1,
			location:   tz,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
