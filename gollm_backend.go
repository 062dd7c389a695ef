package anyllm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/teilomillet/gollm"
)

func init() {
	register(ProviderOpenAI, registration{
		caps: Capabilities{
			Streaming:       true,
			MaxTokens:       16384,
			SystemPrompt:    true,
			FunctionCalling: true,
			Vision:          true,
		},
		envKey:         "OPENAI_API_KEY",
		requiresAPIKey: true,
		factory:        func(cfg Config) (Backend, error) { return newGollmBackend(ProviderOpenAI, cfg) },
	})
	register(ProviderAnthropic, registration{
		caps: Capabilities{
			Streaming:       true,
			MaxTokens:       8192,
			SystemPrompt:    true,
			FunctionCalling: true,
			Vision:          true,
		},
		envKey:         "ANTHROPIC_API_KEY",
		requiresAPIKey: true,
		factory:        func(cfg Config) (Backend, error) { return newGollmBackend(ProviderAnthropic, cfg) },
	})
	register(ProviderOllama, registration{
		caps: Capabilities{
			Streaming:       true,
			MaxTokens:       4096,
			SystemPrompt:    true,
			FunctionCalling: false,
			Vision:          false,
		},
		defaults: Config{BaseURL: "http://localhost:11434"},
		envKey:   "OLLAMA_API_KEY", // optional; local daemons rarely need one
		factory:  func(cfg Config) (Backend, error) { return newGollmBackend(ProviderOllama, cfg) },
	})
}

// gollmBackend serves the openai, anthropic, and ollama providers through a
// gollm.LLM instance.
type gollmBackend struct {
	provider Provider
	model    string

	// gollm applies per-call parameter overrides by mutating the shared
	// client (SetOption), so calls on one backend serialize on mu.
	mu  sync.Mutex
	llm gollm.LLM
}

func newGollmBackend(provider Provider, cfg Config) (*gollmBackend, error) {
	maxTokens := 4096
	if cfg.MaxTokens != nil {
		maxTokens = *cfg.MaxTokens
	}
	temperature := 0.7
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	gollmOpts := []gollm.ConfigOption{
		gollm.SetProvider(string(provider)),
		gollm.SetModel(cfg.Model),
		gollm.SetMaxTokens(maxTokens),
		gollm.SetTemperature(temperature),
		gollm.SetMaxRetries(0), // retry composition belongs to the caller
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if cfg.APIKey != "" {
		gollmOpts = append(gollmOpts, gollm.SetAPIKey(cfg.APIKey))
	}
	if provider == ProviderOllama && cfg.BaseURL != "" {
		gollmOpts = append(gollmOpts, gollm.SetOllamaEndpoint(cfg.BaseURL))
	}

	llm, err := gollm.NewLLM(gollmOpts...)
	if err != nil {
		return nil, &ConfigurationError{SDKError: SDKError{
			Message: fmt.Sprintf("failed to initialize %s backend", provider),
			Cause:   err,
		}}
	}

	return &gollmBackend{
		provider: provider,
		model:    cfg.Model,
		llm:      llm,
	}, nil
}

func (b *gollmBackend) Name() string {
	return string(b.provider)
}

func (b *gollmBackend) Generate(ctx context.Context, cfg Config, prompt string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.applyOptions(cfg)
	text, err := b.llm.Generate(ctx, b.buildPrompt(cfg, prompt))
	if err != nil {
		return "", b.translateError(err)
	}
	return text, nil
}

func (b *gollmBackend) Stream(ctx context.Context, cfg Config, prompt string) (<-chan Chunk, error) {
	b.mu.Lock()

	b.applyOptions(cfg)
	p := b.buildPrompt(cfg, prompt)
	ch := make(chan Chunk, 16)

	if !b.llm.SupportsStreaming() {
		// The underlying provider cannot stream; emit the full completion
		// as a single chunk so the call shape stays uniform.
		go func() {
			defer b.mu.Unlock()
			defer close(ch)
			text, err := b.llm.Generate(ctx, p)
			if err != nil {
				ch <- Chunk{Err: b.translateError(err)}
				return
			}
			select {
			case ch <- Chunk{Text: text}:
			case <-ctx.Done():
			}
		}()
		return ch, nil
	}

	stream, err := b.llm.Stream(ctx, p)
	if err != nil {
		b.mu.Unlock()
		return nil, b.translateError(err)
	}

	go func() {
		defer b.mu.Unlock()
		defer close(ch)
		defer stream.Close()

		for {
			token, err := stream.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					return // consumer cancelled; not an error
				}
				ch <- Chunk{Err: b.translateError(err)}
				return
			}
			if token == nil {
				continue
			}
			select {
			case ch <- Chunk{Text: token.Text}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// buildPrompt converts the effective configuration plus prompt text into a
// gollm prompt.
func (b *gollmBackend) buildPrompt(cfg Config, prompt string) *gollm.Prompt {
	var promptOpts []gollm.PromptOption
	if cfg.SystemPrompt != "" {
		promptOpts = append(promptOpts, gollm.WithSystemPrompt(cfg.SystemPrompt, gollm.CacheTypeEphemeral))
	}
	if cfg.MaxTokens != nil {
		promptOpts = append(promptOpts, gollm.WithMaxLength(*cfg.MaxTokens))
	}
	return gollm.NewPrompt(prompt, promptOpts...)
}

// applyOptions pushes call-level parameters onto the gollm client. Callers
// must hold b.mu.
func (b *gollmBackend) applyOptions(cfg Config) {
	if cfg.Model != "" {
		b.llm.SetOption("model", cfg.Model)
	}
	if cfg.Temperature != nil {
		b.llm.SetOption("temperature", *cfg.Temperature)
	}
	if cfg.TopP != nil {
		b.llm.SetOption("top_p", *cfg.TopP)
	}
	if cfg.MaxTokens != nil {
		b.llm.SetOption("max_tokens", *cfg.MaxTokens)
	}
	for k, v := range cfg.ProviderOptions {
		b.llm.SetOption(k, v)
	}
}

// translateError classifies a gollm error into the package error hierarchy,
// tagged with this backend's provider. gollm surfaces provider failures as
// message text, so classification is by content.
func (b *gollmBackend) translateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	provider := string(b.provider)

	msgLower := strings.ToLower(msg)
	switch {
	case strings.Contains(msgLower, "401") || strings.Contains(msgLower, "unauthorized") || strings.Contains(msgLower, "invalid api key") || strings.Contains(msgLower, "invalid key"):
		return &AuthenticationError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider, StatusCode: 401,
		}}
	case strings.Contains(msgLower, "403") || strings.Contains(msgLower, "forbidden"):
		return &AccessDeniedError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider, StatusCode: 403,
		}}
	case strings.Contains(msgLower, "404") || strings.Contains(msgLower, "not found"):
		return &NotFoundError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider, StatusCode: 404,
		}}
	case strings.Contains(msgLower, "429") || strings.Contains(msgLower, "rate limit"):
		return &RateLimitError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider, StatusCode: 429, Retryable: true,
		}}
	case strings.Contains(msgLower, "context length") || strings.Contains(msgLower, "too many tokens"):
		return &ContextLengthError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider, StatusCode: 413,
		}}
	case strings.Contains(msgLower, "500") || strings.Contains(msgLower, "internal server"):
		return &ServerError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider, StatusCode: 500, Retryable: true,
		}}
	case strings.Contains(msgLower, "timeout"):
		return &RequestTimeoutError{SDKError: SDKError{Message: msg, Cause: err}}
	case strings.Contains(msgLower, "connection refused") || strings.Contains(msgLower, "no such host"):
		return &NetworkError{SDKError: SDKError{Message: msg, Cause: err}}
	case strings.Contains(msgLower, "content filter") || strings.Contains(msgLower, "safety"):
		return &ContentFilterError{ProviderError: ProviderError{
			SDKError: SDKError{Message: msg, Cause: err}, Provider: provider,
		}}
	default:
		return &ProviderError{
			SDKError:  SDKError{Message: msg, Cause: err},
			Provider:  provider,
			Retryable: true,
		}
	}
}
