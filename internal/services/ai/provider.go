package ai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/schedule"
)

// ProviderFactory creates a generation provider from a flat config map.
type ProviderFactory func(config map[string]string, logger *zap.Logger) (schedule.Provider, error)

// ProviderRegistry stores available generation providers by name.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory under a name.
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider creates a provider by name.
func (r *ProviderRegistry) GetProvider(name string, config map[string]string, logger *zap.Logger) (schedule.Provider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown AI provider: %s", name)
	}
	return factory(config, logger)
}

// RegisterOllama registers the Ollama provider factory.
func RegisterOllama(r *ProviderRegistry) {
	r.Register("ollama", func(config map[string]string, logger *zap.Logger) (schedule.Provider, error) {
		return NewOllamaProvider(config["base_url"], config["model"], logger), nil
	})
}

// RegisterOpenAI registers the OpenAI provider factory.
func RegisterOpenAI(r *ProviderRegistry) {
	r.Register("openai", func(config map[string]string, logger *zap.Logger) (schedule.Provider, error) {
		apiKey := config["api_key"]
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an api_key")
		}
		return NewOpenAIProvider(apiKey, config["base_url"], config["model"], logger), nil
	})
}

// NewDefaultRegistry returns a registry with all built-in providers.
func NewDefaultRegistry() *ProviderRegistry {
	r := NewProviderRegistry()
	RegisterOllama(r)
	RegisterOpenAI(r)
	return r
}
