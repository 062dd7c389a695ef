package anyllm

import (
	"errors"
	"testing"
)

func TestErrorFromStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantType  string
		retryable bool
	}{
		{400, "InvalidRequestError", false},
		{401, "AuthenticationError", false},
		{403, "AccessDeniedError", false},
		{404, "NotFoundError", false},
		{413, "ContextLengthError", false},
		{422, "InvalidRequestError", false},
		{429, "RateLimitError", true},
		{500, "ServerError", true},
		{502, "ServerError", true},
		{503, "ServerError", true},
		{504, "ServerError", true},
	}

	for _, tt := range tests {
		err := ErrorFromStatusCode(tt.status, "msg", "openai", "", nil, nil)

		var gotType string
		switch err.(type) {
		case *InvalidRequestError:
			gotType = "InvalidRequestError"
		case *AuthenticationError:
			gotType = "AuthenticationError"
		case *AccessDeniedError:
			gotType = "AccessDeniedError"
		case *NotFoundError:
			gotType = "NotFoundError"
		case *ContextLengthError:
			gotType = "ContextLengthError"
		case *RateLimitError:
			gotType = "RateLimitError"
		case *ServerError:
			gotType = "ServerError"
		default:
			gotType = "unknown"
		}
		if gotType != tt.wantType {
			t.Errorf("status %d: expected %s, got %s", tt.status, tt.wantType, gotType)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("status %d: expected retryable=%v", tt.status, tt.retryable)
		}
	}
}

func TestErrorFromStatusCodeCarriesProvider(t *testing.T) {
	err := ErrorFromStatusCode(429, "rate limited", "anthropic", "rate_limit", nil, nil)
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %T", err)
	}
	if rl.Provider != "anthropic" {
		t.Errorf("expected provider %q, got %q", "anthropic", rl.Provider)
	}
	if rl.ErrorCode != "rate_limit" {
		t.Errorf("expected error code %q, got %q", "rate_limit", rl.ErrorCode)
	}
}

func TestErrorFromStatusCodeUnknownStatus(t *testing.T) {
	err := ErrorFromStatusCode(418, "teapot", "openai", "", nil, nil)
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if !pe.Retryable {
		t.Error("unknown statuses should default to retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
	if IsRetryable(&ConfigurationError{}) {
		t.Error("configuration errors are not retryable")
	}
	if IsRetryable(&UnsupportedProviderError{}) {
		t.Error("unsupported provider errors are not retryable")
	}
	if IsRetryable(&CapabilityError{}) {
		t.Error("capability errors are not retryable")
	}
	if !IsRetryable(&NetworkError{}) {
		t.Error("network errors are retryable")
	}
	if !IsRetryable(&RequestTimeoutError{}) {
		t.Error("timeouts are retryable")
	}
	if !IsRetryable(errors.New("mystery")) {
		t.Error("unknown errors default to retryable")
	}
}

func TestSDKErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &NetworkError{SDKError: SDKError{Message: "request failed", Cause: cause}}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestCapabilityErrorMessage(t *testing.T) {
	err := &CapabilityError{Provider: "huggingface", Capability: "streaming"}
	want := `provider "huggingface" does not support streaming`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
