package anyllm

import (
	"context"
	"sort"
)

// Provider is the enumerated identity selecting which backend a client is
// bound to. The identity is fixed for the lifetime of the client.
type Provider string

const (
	ProviderOpenAI      Provider = "openai"
	ProviderAnthropic   Provider = "anthropic"
	ProviderOllama      Provider = "ollama"
	ProviderHuggingFace Provider = "huggingface"
)

// Backend is the interface every provider implementation must satisfy.
// A backend receives the fully merged configuration for each call and
// either returns the complete text or a finite channel of chunks. Failures
// must be reported through the package error types, tagged with the
// provider identity.
type Backend interface {
	// Name returns the provider identifier (e.g. "openai", "ollama").
	Name() string

	// Generate performs a blocking completion and returns the full text.
	Generate(ctx context.Context, cfg Config, prompt string) (string, error)

	// Stream performs a streaming completion. The returned channel is
	// closed when the stream ends; cancelling ctx stops it early and
	// releases the underlying connection.
	Stream(ctx context.Context, cfg Config, prompt string) (<-chan Chunk, error)
}

// Closer is implemented by backends that hold resources.
type Closer interface {
	Close() error
}

// registration couples a backend constructor with the static metadata the
// factory needs: the provider's capabilities, its construction defaults,
// the conventional environment variable for its API key, and whether the
// key is mandatory.
type registration struct {
	caps           Capabilities
	defaults       Config
	envKey         string
	requiresAPIKey bool
	factory        func(cfg Config) (Backend, error)
}

var registry = map[Provider]registration{}

// register binds a provider identity to its backend constructor and
// capabilities. Every registered identity has exactly one entry; backends
// register themselves from init.
func register(p Provider, r registration) {
	registry[p] = r
}

// Providers returns the registered provider identities in sorted order.
func Providers() []Provider {
	out := make([]Provider, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
