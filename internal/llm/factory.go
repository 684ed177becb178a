package llm

import (
	"fmt"

	"agent-bridge/internal/config"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	cfg *config.LLM
}

func NewFactory(cfg *config.LLM) *Factory {
	return &Factory{cfg: cfg}
}

func (f *Factory) CreateClient(provider config.LLMProvider, model string) (Client, error) {
	switch provider {
	case config.ProviderOpenAI:
		return NewOpenAI(f.options(f.cfg.OpenAIAPIKey, f.cfg.OpenAIBaseURL, model, true)), nil
	case config.ProviderAnthropic:
		return NewOpenAI(f.options(f.cfg.AnthropicAPIKey, f.cfg.AnthropicBaseURL, model, false)), nil
	case config.ProviderYandex:
		return NewYandex(f.cfg.YandexOAuthToken, f.cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}

// Credential names the environment variable holding the provider's key and
// returns its configured value.
func (f *Factory) Credential(provider config.LLMProvider) (env, value string) {
	switch provider {
	case config.ProviderAnthropic:
		return "ANTHROPIC_API_KEY", f.cfg.AnthropicAPIKey
	case config.ProviderYandex:
		return "YANDEX_OAUTH_TOKEN", f.cfg.YandexOAuthToken
	default:
		return "OPENAI_API_KEY", f.cfg.OpenAIAPIKey
	}
}

func (f *Factory) options(key, baseURL, model string, openRouter bool) Options {
	o := Options{
		APIKey:      key,
		BaseURL:     baseURL,
		Model:       model,
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
		Timeout:     f.cfg.APITimeout,
	}
	if openRouter {
		o.Referrer = f.cfg.OpenRouterReferrer
		o.Title = f.cfg.OpenRouterTitle
	}
	return o
}
