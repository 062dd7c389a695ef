package anyllm

import (
	"fmt"
	"os"
)

// New resolves a provider identity and a set of construction options into a
// Client bound to the matching backend.
//
// The instance configuration starts from the provider's registered defaults,
// has the supplied options applied over it, then fills remaining gaps: the
// model falls back to the provider's catalog default and the API key to the
// provider's conventional environment variable. Hosted providers fail with a
// ConfigurationError when no key can be found; local providers tolerate its
// absence.
//
// An unrecognized identity fails with UnsupportedProviderError before any
// backend is constructed.
func New(provider Provider, opts ...Option) (*Client, error) {
	reg, ok := registry[provider]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: string(provider)}
	}

	cfg := mergeConfig(reg.defaults, opts)

	if cfg.Model == "" {
		if info := DefaultModel(provider); info != nil {
			cfg.Model = info.ID
		}
	}
	if cfg.Model == "" {
		return nil, &ConfigurationError{
			SDKError: SDKError{Message: fmt.Sprintf("no model specified and no default model known for provider %q", provider)},
			Option:   "model",
		}
	}
	// Catalog aliases resolve to canonical model identifiers.
	if info := GetModelInfo(cfg.Model); info != nil {
		cfg.Model = info.ID
	}

	if cfg.APIKey == "" && reg.envKey != "" {
		cfg.APIKey = os.Getenv(reg.envKey)
	}
	if reg.requiresAPIKey && cfg.APIKey == "" {
		return nil, &ConfigurationError{
			SDKError: SDKError{Message: fmt.Sprintf("provider %q requires an api_key (set it explicitly or export %s)", provider, reg.envKey)},
			Option:   "api_key",
		}
	}

	backend, err := reg.factory(cfg)
	if err != nil {
		return nil, err
	}

	logger().Debug("client created",
		"provider", string(provider),
		"model", cfg.Model,
	)

	return &Client{
		provider: provider,
		caps:     reg.caps,
		backend:  backend,
		config:   cfg,
	}, nil
}
