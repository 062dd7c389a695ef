package anyllm

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Client is the unified facade over a single provider backend. It owns the
// provider identity, the instance-level configuration, and the resolved
// backend. Clients are created by New and are safe for concurrent use; the
// instance configuration is only ever mutated through SetConfig.
type Client struct {
	provider Provider
	caps     Capabilities
	backend  Backend

	mu     sync.RWMutex
	config Config
}

// Provider returns the identity of the bound backend.
func (c *Client) Provider() Provider {
	return c.provider
}

// Capabilities returns the static capability declaration for the bound
// provider. The value is stable for the lifetime of the client.
func (c *Client) Capabilities() Capabilities {
	return c.caps
}

// Config returns a snapshot of the instance-level configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Clone()
}

// SetConfig merges the given options into the instance-level configuration,
// overriding only the keys they name. Applying the same options twice is a
// no-op the second time. In-flight Generate calls are unaffected: each call
// snapshots the configuration at entry.
func (c *Client) SetConfig(opts ...Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = mergeConfig(c.config, opts)
}

// Generate sends the prompt to the bound backend with the call overrides
// merged over a snapshot of the instance configuration (call-level wins
// key-by-key; the instance configuration is never mutated).
//
// When the effective configuration requests streaming, the Result carries a
// finite, cancellable channel of chunks; otherwise it carries the complete
// text. Requesting a feature the provider's capabilities mark unsupported
// fails with CapabilityError before any network call.
func (c *Client) Generate(ctx context.Context, prompt string, overrides ...Option) (*Result, error) {
	c.mu.RLock()
	base := c.config.Clone()
	c.mu.RUnlock()

	eff := mergeConfig(base, overrides)

	if err := c.checkCapabilities(eff); err != nil {
		return nil, err
	}

	callID := uuid.New().String()[:8]
	log := logger().With(
		"call_id", callID,
		"provider", string(c.provider),
		"model", eff.Model,
	)
	log.Debug("generate request", "stream", eff.Streaming(), "prompt_len", len(prompt))

	if eff.Streaming() {
		streamCtx, cancel := context.WithCancel(ctx)
		ch, err := c.backend.Stream(streamCtx, eff, prompt)
		if err != nil {
			cancel()
			log.Warn("generate failed", "error", err)
			return nil, err
		}
		return newStreamResult(c.provider, eff.Model, ch, cancel), nil
	}

	text, err := c.backend.Generate(ctx, eff, prompt)
	if err != nil {
		log.Warn("generate failed", "error", err)
		return nil, err
	}
	log.Debug("generate response", "response_len", len(text))
	return newTextResult(c.provider, eff.Model, text), nil
}

// checkCapabilities rejects, before any network cost, requests for features
// the bound provider does not declare.
func (c *Client) checkCapabilities(cfg Config) error {
	if cfg.Streaming() && !c.caps.Streaming {
		return &CapabilityError{Provider: string(c.provider), Capability: "streaming"}
	}
	if cfg.SystemPrompt != "" && !c.caps.SystemPrompt {
		return &CapabilityError{Provider: string(c.provider), Capability: "system prompts"}
	}
	return nil
}

// Close releases resources held by the backend, if any.
func (c *Client) Close() error {
	if closer, ok := c.backend.(Closer); ok {
		return closer.Close()
	}
	return nil
}
