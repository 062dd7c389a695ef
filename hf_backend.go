package anyllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const hfDefaultBaseURL = "https://api-inference.huggingface.co"

func init() {
	register(ProviderHuggingFace, registration{
		caps: Capabilities{
			Streaming:       false,
			MaxTokens:       4096,
			SystemPrompt:    false,
			FunctionCalling: false,
			Vision:          false,
		},
		defaults: Config{BaseURL: hfDefaultBaseURL},
		envKey:   "HUGGINGFACE_API_KEY",
		factory:  func(Config) (Backend, error) { return newHFBackend(), nil },
	})
}

// hfBackend calls the Hugging Face Inference API directly. gollm has no
// Hugging Face provider, so this backend speaks the REST surface itself:
// POST {base_url}/models/{model} with a text-generation payload.
type hfBackend struct {
	httpClient *http.Client
}

func newHFBackend() *hfBackend {
	return &hfBackend{
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (b *hfBackend) Name() string {
	return string(ProviderHuggingFace)
}

type hfParameters struct {
	Temperature    *float64 `json:"temperature,omitempty"`
	TopP           *float64 `json:"top_p,omitempty"`
	MaxNewTokens   *int     `json:"max_new_tokens,omitempty"`
	ReturnFullText bool     `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string                 `json:"inputs"`
	Parameters hfParameters           `json:"parameters"`
	Options    map[string]interface{} `json:"options,omitempty"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func (b *hfBackend) Generate(ctx context.Context, cfg Config, prompt string) (string, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = hfDefaultBaseURL
	}
	url := fmt.Sprintf("%s/models/%s", baseURL, cfg.Model)

	payload := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			Temperature:  cfg.Temperature,
			TopP:         cfg.TopP,
			MaxNewTokens: cfg.MaxTokens,
		},
		Options: map[string]interface{}{"wait_for_model": true},
	}
	for k, v := range cfg.ProviderOptions {
		payload.Options[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &SDKError{Message: "failed to encode huggingface request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &SDKError{Message: "failed to build huggingface request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", &AbortError{SDKError: SDKError{Message: "huggingface request cancelled", Cause: ctx.Err()}}
		}
		return "", &NetworkError{SDKError: SDKError{Message: "huggingface request failed", Cause: err}}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{SDKError: SDKError{Message: "failed to read huggingface response", Cause: err}}
	}

	if resp.StatusCode != http.StatusOK {
		return "", b.errorFromResponse(resp, respBody)
	}

	// The API answers either a list of generations or a single object.
	var generations []hfGeneration
	if err := json.Unmarshal(respBody, &generations); err == nil && len(generations) > 0 {
		return generations[0].GeneratedText, nil
	}
	var single hfGeneration
	if err := json.Unmarshal(respBody, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", &ProviderError{
		SDKError:   SDKError{Message: fmt.Sprintf("unexpected huggingface response shape: %s", truncate(string(respBody), 200))},
		Provider:   string(ProviderHuggingFace),
		StatusCode: resp.StatusCode,
	}
}

// Stream is unreachable through Client: the registered capabilities mark
// streaming unsupported, so Generate rejects stream requests first.
func (b *hfBackend) Stream(ctx context.Context, cfg Config, prompt string) (<-chan Chunk, error) {
	return nil, &CapabilityError{Provider: string(ProviderHuggingFace), Capability: "streaming"}
}

func (b *hfBackend) errorFromResponse(resp *http.Response, body []byte) error {
	message := strings.TrimSpace(string(body))
	raw := map[string]interface{}{}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		message = parsed.Error
		raw["error"] = parsed.Error
	}
	if message == "" {
		message = resp.Status
	}

	var retryAfter *float64
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			retryAfter = &secs
		}
	}

	return ErrorFromStatusCode(resp.StatusCode, message, string(ProviderHuggingFace), "", raw, retryAfter)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
