package anyllm

import (
	"context"
	"errors"
)

// FallbackChain composes multiple clients into a caller-driven fallback
// sequence. Each Generate attempt that fails moves on to the next client;
// the per-provider error tags let the final joined error show exactly which
// backend failed and how.
//
// The chain is the caller-side counterpart to the facade's no-retry
// contract: clients stay single-provider, composition happens here.
type FallbackChain struct {
	clients []*Client
}

// NewFallbackChain builds a chain that tries clients in the given order.
func NewFallbackChain(clients ...*Client) *FallbackChain {
	return &FallbackChain{clients: clients}
}

// Generate tries each client in order until one succeeds. Overrides are
// applied per attempt, on top of each client's own instance configuration.
// When every client fails, the joined errors are returned in attempt order.
func (f *FallbackChain) Generate(ctx context.Context, prompt string, overrides ...Option) (*Result, error) {
	if len(f.clients) == 0 {
		return nil, &ConfigurationError{SDKError: SDKError{Message: "fallback chain has no clients"}}
	}

	var errs []error
	for _, client := range f.clients {
		if ctx.Err() != nil {
			errs = append(errs, &AbortError{SDKError: SDKError{Message: "fallback cancelled", Cause: ctx.Err()}})
			break
		}
		result, err := client.Generate(ctx, prompt, overrides...)
		if err == nil {
			return result, nil
		}
		logger().Debug("fallback advancing",
			"provider", string(client.Provider()),
			"error", err,
		)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
