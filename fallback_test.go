package anyllm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFallbackFirstSucceeds(t *testing.T) {
	primary := &mockBackend{name: "primary", text: "from primary"}
	secondary := &mockBackend{name: "secondary", text: "from secondary"}

	chain := NewFallbackChain(
		newTestClient(primary, streamingCaps, Config{Model: "m"}),
		newTestClient(secondary, streamingCaps, Config{Model: "m"}),
	)

	result, err := chain.Generate(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text() != "from primary" {
		t.Errorf("expected primary response, got %q", result.Text())
	}
	if secondary.callCount() != 0 {
		t.Errorf("secondary should not be called, got %d calls", secondary.callCount())
	}
}

func TestFallbackAdvancesOnFailure(t *testing.T) {
	primary := &mockBackend{name: "primary", err: &ServerError{ProviderError: ProviderError{
		SDKError: SDKError{Message: "down"}, Provider: "primary", StatusCode: 503, Retryable: true,
	}}}
	secondary := &mockBackend{name: "secondary", text: "from secondary"}

	chain := NewFallbackChain(
		newTestClient(primary, streamingCaps, Config{Model: "m"}),
		newTestClient(secondary, streamingCaps, Config{Model: "m"}),
	)

	result, err := chain.Generate(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text() != "from secondary" {
		t.Errorf("expected secondary response, got %q", result.Text())
	}
}

func TestFallbackAllFail(t *testing.T) {
	first := &mockBackend{name: "a", err: &AuthenticationError{ProviderError: ProviderError{
		SDKError: SDKError{Message: "bad key"}, Provider: "a", StatusCode: 401,
	}}}
	second := &mockBackend{name: "b", err: &ServerError{ProviderError: ProviderError{
		SDKError: SDKError{Message: "down"}, Provider: "b", StatusCode: 500, Retryable: true,
	}}}

	chain := NewFallbackChain(
		newTestClient(first, streamingCaps, Config{Model: "m"}),
		newTestClient(second, streamingCaps, Config{Model: "m"}),
	)

	_, err := chain.Generate(context.Background(), "Hi")
	if err == nil {
		t.Fatal("expected error when every client fails")
	}

	// Both provider-tagged failures are visible in the joined error.
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Error("expected AuthenticationError in joined error")
	}
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Error("expected ServerError in joined error")
	}
	if !strings.Contains(err.Error(), "[a]") || !strings.Contains(err.Error(), "[b]") {
		t.Errorf("expected both provider tags in error, got %q", err.Error())
	}
}

func TestFallbackEmptyChain(t *testing.T) {
	chain := NewFallbackChain()
	_, err := chain.Generate(context.Background(), "Hi")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
