package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.AI.Provider != "deepseek" {
		t.Fatalf("unexpected default provider: %s", cfg.AI.Provider)
	}
	if cfg.DeepSeek.Model != "deepseek-chat" {
		t.Fatalf("unexpected default model: %s", cfg.DeepSeek.Model)
	}
	if cfg.Language.OutputLanguage != "zh" {
		t.Fatalf("unexpected default language: %s", cfg.Language.OutputLanguage)
	}
	if cfg.Scheduling.DailyTime != "09:00" || cfg.Scheduling.WeeklyDay != "monday" || cfg.Scheduling.MonthlyDay != 1 {
		t.Fatalf("unexpected default schedule: %+v", cfg.Scheduling)
	}
	if cfg.Scheduling.Location().String() != "Asia/Shanghai" {
		t.Fatalf("unexpected default timezone: %s", cfg.Scheduling.Location())
	}
	if cfg.ProductHunt.APIURL == "" || cfg.ProductHunt.FeedURL == "" {
		t.Fatalf("default endpoints missing: %+v", cfg.ProductHunt)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
ai:
  provider: openai
language:
  outputLanguage: en
scheduling:
  timezone: UTC
  dailyTime: "18:30"
telegram:
  botToken: file-token
  channelId: "-1001234567890"
`)

	cfg := Load(path)

	if cfg.AI.Provider != "openai" {
		t.Fatalf("provider not overridden: %s", cfg.AI.Provider)
	}
	if cfg.Language.OutputLanguage != "en" {
		t.Fatalf("language not overridden: %s", cfg.Language.OutputLanguage)
	}
	if cfg.Scheduling.DailyTime != "18:30" {
		t.Fatalf("daily time not overridden: %s", cfg.Scheduling.DailyTime)
	}
	if cfg.Scheduling.Location().String() != "UTC" {
		t.Fatalf("timezone not bound: %s", cfg.Scheduling.Location())
	}
	if cfg.Telegram.BotToken != "file-token" || cfg.Telegram.ChannelID != "-1001234567890" {
		t.Fatalf("telegram not overridden: %+v", cfg.Telegram)
	}

	// Untouched sections keep their defaults.
	if cfg.DeepSeek.BaseURL != "https://api.deepseek.com" {
		t.Fatalf("defaults lost during merge: %+v", cfg.DeepSeek)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  botToken: file-token
deepseek:
  apiKey: file-key
`)

	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("DEEPSEEK_API_KEY", "env-key")
	t.Setenv("DATABASE_DSN", "postgres://env")

	cfg := Load(path)

	if cfg.Telegram.BotToken != "env-token" {
		t.Fatalf("env should beat file: %s", cfg.Telegram.BotToken)
	}
	if cfg.DeepSeek.APIKey != "env-key" {
		t.Fatalf("env should beat file: %s", cfg.DeepSeek.APIKey)
	}
	if cfg.Database.DSN != "postgres://env" {
		t.Fatalf("dsn not taken from env: %s", cfg.Database.DSN)
	}
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
`)
	t.Setenv("PRODUCT_RADAR_CONFIG", path)

	cfg := Load("")
	if cfg.Logging.Level != "debug" {
		t.Fatalf("config path env ignored: %s", cfg.Logging.Level)
	}
}

func TestLoadUnknownTimezoneFallsBack(t *testing.T) {
	path := writeConfigFile(t, `
scheduling:
  timezone: Mars/Olympus
`)

	cfg := Load(path)
	if cfg.Scheduling.Location().String() != "Asia/Shanghai" {
		t.Fatalf("expected timezone fallback, got %s", cfg.Scheduling.Location())
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.AI.Provider != "deepseek" {
		t.Fatalf("defaults lost on missing file: %s", cfg.AI.Provider)
	}
}
