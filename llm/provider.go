package llm

import (
	"net/http"
	"sync"
)

// Provider defines the interface for text-generation API adapters.
type Provider interface {
	// Name returns the provider identifier (e.g., "anthropic", "ollama").
	Name() string

	// BuildURL constructs the full API endpoint URL.
	BuildURL(baseURL string) string

	// SetHeaders adds provider-specific headers. The API key is supplied
	// per call by the caller; providers never read the environment.
	SetHeaders(req *http.Request, apiKey string)

	// BuildRequestBody creates the JSON request body.
	BuildRequestBody(model, system, userMessage string, maxTokens int) ([]byte, error)

	// ParseResponse extracts the generated text from provider-specific JSON.
	ParseResponse(body []byte) (string, error)

	// ParseErrorMessage extracts a human-readable message from an error
	// body, or "" when none is present.
	ParseErrorMessage(body []byte) string
}

// providerRegistry holds registered providers.
var (
	providerRegistry = make(map[string]Provider)
	providerMu       sync.RWMutex
)

// RegisterProvider adds a provider to the registry.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providerRegistry[p.Name()] = p
}

// GetProvider retrieves a provider by name.
func GetProvider(name string) Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return providerRegistry[name]
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	providerMu.RLock()
	defer providerMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	return names
}
