package anyllm

// Config is the closed set of behavior-affecting parameters a client or a
// single call may set. Top-level fields cover the options every provider
// understands; anything provider-specific travels in ProviderOptions and is
// handed to the backend verbatim, which ignores keys it does not recognize.
//
// Pointer fields distinguish "unset" from zero so a call-level override can
// replace exactly the keys it names.
type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	SystemPrompt    string
	Temperature     *float64
	TopP            *float64
	MaxTokens       *int
	Stream          *bool
	ProviderOptions map[string]interface{}
}

// Clone returns a deep copy of the configuration. The ProviderOptions map
// is copied so later mutation of either side is invisible to the other.
func (c Config) Clone() Config {
	out := c
	if c.Temperature != nil {
		v := *c.Temperature
		out.Temperature = &v
	}
	if c.TopP != nil {
		v := *c.TopP
		out.TopP = &v
	}
	if c.MaxTokens != nil {
		v := *c.MaxTokens
		out.MaxTokens = &v
	}
	if c.Stream != nil {
		v := *c.Stream
		out.Stream = &v
	}
	if c.ProviderOptions != nil {
		out.ProviderOptions = make(map[string]interface{}, len(c.ProviderOptions))
		for k, v := range c.ProviderOptions {
			out.ProviderOptions[k] = v
		}
	}
	return out
}

// Streaming reports whether the configuration requests a streaming call.
func (c Config) Streaming() bool {
	return c.Stream != nil && *c.Stream
}

// Option sets a single configuration key. Options are applied to a copy of
// the base configuration, key-by-key, call-level over instance-level.
type Option func(*Config)

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the model identifier. Catalog aliases are accepted.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithBaseURL sets the backend endpoint, for providers that are reachable
// at more than one address (ollama, huggingface).
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithSystemPrompt sets the system prompt sent ahead of the user prompt.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) { c.SystemPrompt = prompt }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = &t }
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(p float64) Option {
	return func(c *Config) { c.TopP = &p }
}

// WithMaxTokens sets the completion token limit.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = &n }
}

// WithStream selects between a buffered and a streaming result shape.
func WithStream(stream bool) Option {
	return func(c *Config) { c.Stream = &stream }
}

// WithProviderOption sets a provider-specific key the closed Config does
// not model. Backends pass these through unchanged.
func WithProviderOption(key string, value interface{}) Option {
	return func(c *Config) {
		if c.ProviderOptions == nil {
			c.ProviderOptions = make(map[string]interface{})
		}
		c.ProviderOptions[key] = value
	}
}

// mergeConfig applies overrides over a copy of base. Every key of base
// survives unless an override replaces it; no keys are invented. The base
// is never mutated.
func mergeConfig(base Config, overrides []Option) Config {
	merged := base.Clone()
	for _, opt := range overrides {
		opt(&merged)
	}
	return merged
}
