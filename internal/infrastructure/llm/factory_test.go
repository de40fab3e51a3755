package llm

import (
	"testing"

	"ProductRadar/internal/config"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.DeepSeek = config.ProviderConfig{APIKey: "ds-key", BaseURL: "https://api.deepseek.com", Model: "deepseek-chat"}
	cfg.OpenAI = config.ProviderConfig{APIKey: "oa-key", BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"}
	cfg.Gemini.APIKey = "g-key"
	cfg.Gemini.Model = "gemini-1.5-flash"
	return cfg
}

func TestFactoryBuildsConfiguredProvider(t *testing.T) {
	t.Parallel()

	for _, provider := range []string{"deepseek", "openai", "gemini"} {
		cfg := testConfig()
		cfg.AI.Provider = provider

		analyzer, err := New(cfg, "en", nil, nil)
		if err != nil {
			t.Fatalf("%s: New error: %v", provider, err)
		}

		concrete, ok := analyzer.(*Analyzer)
		if !ok {
			t.Fatalf("%s: unexpected analyzer type %T", provider, analyzer)
		}
		if concrete.Provider() != provider {
			t.Fatalf("expected provider %s, got %s", provider, concrete.Provider())
		}
	}
}

func TestFactoryDefaultsToDeepseek(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AI.Provider = ""

	analyzer, err := New(cfg, "en", nil, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if analyzer.(*Analyzer).Provider() != "deepseek" {
		t.Fatalf("expected deepseek default, got %s", analyzer.(*Analyzer).Provider())
	}
}

func TestFactoryFallsBackOnUnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AI.Provider = "mystery"

	analyzer, err := New(cfg, "en", nil, nil)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if analyzer.(*Analyzer).Provider() != "deepseek" {
		t.Fatalf("expected deepseek fallback, got %s", analyzer.(*Analyzer).Provider())
	}
}

func TestFactoryFallsBackOnBrokenProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AI.Provider = "gemini"
	cfg.Gemini.APIKey = ""

	analyzer, err := New(cfg, "en", nil, nil)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if analyzer.(*Analyzer).Provider() != "deepseek" {
		t.Fatalf("expected deepseek fallback, got %s", analyzer.(*Analyzer).Provider())
	}
}

func TestFactoryFailsWhenFallbackBroken(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AI.Provider = "mystery"
	cfg.DeepSeek.APIKey = ""

	if _, err := New(cfg, "en", nil, nil); err == nil {
		t.Fatalf("expected error when the fallback cannot be built")
	}
}
