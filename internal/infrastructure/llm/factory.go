package llm

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"ProductRadar/internal/config"
	"ProductRadar/internal/ports"
)

// fallbackProvider is constructed when the configured backend cannot be,
// trading strict correctness for availability.
const fallbackProvider = "deepseek"

// New resolves the configured provider name to a concrete analysis backend.
// When the configured backend cannot be constructed it falls back to the
// default provider, logging the substitution; only a failing fallback is
// fatal.
func New(cfg config.Config, language string, client *http.Client, logger *slog.Logger) (ports.Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	if provider == "" {
		provider = fallbackProvider
	}

	analyzer, err := build(provider, cfg, language, client, logger)
	if err == nil {
		logger.Info("analysis backend ready", "provider", provider)
		return analyzer, nil
	}

	if provider == fallbackProvider {
		return nil, fmt.Errorf("construct %s analyzer: %w", provider, err)
	}

	logger.Error("analysis backend construction failed, substituting default",
		"provider", provider, "fallback", fallbackProvider, "error", err)

	analyzer, fbErr := build(fallbackProvider, cfg, language, client, logger)
	if fbErr != nil {
		return nil, fmt.Errorf("construct %s analyzer (fallback after %q failed: %v): %w",
			fallbackProvider, provider, err, fbErr)
	}
	return analyzer, nil
}

func build(provider string, cfg config.Config, language string, client *http.Client, logger *slog.Logger) (*Analyzer, error) {
	childLogger := logger.With("component", "analyzer."+provider)

	switch provider {
	case "deepseek":
		if err := validateProvider(cfg.DeepSeek); err != nil {
			return nil, err
		}
		c := newChatClient(client, cfg.DeepSeek.BaseURL, cfg.DeepSeek.Model, cfg.DeepSeek.APIKey)
		return newAnalyzer(provider, c, language, childLogger), nil

	case "openai":
		if err := validateProvider(cfg.OpenAI); err != nil {
			return nil, err
		}
		c := newChatClient(client, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.APIKey)
		return newAnalyzer(provider, c, language, childLogger), nil

	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("missing api key")
		}
		if cfg.Gemini.Model == "" {
			return nil, fmt.Errorf("missing model")
		}
		c := newGeminiClient(client, cfg.Gemini.Model, cfg.Gemini.APIKey)
		return newAnalyzer(provider, c, language, childLogger), nil

	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}

func validateProvider(cfg config.ProviderConfig) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("missing api key")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("missing base url")
	}
	if cfg.Model == "" {
		return fmt.Errorf("missing model")
	}
	return nil
}
