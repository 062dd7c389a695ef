package anyllm

// ModelInfo describes a known model in the catalog.
type ModelInfo struct {
	ID            string   `json:"id"`
	Provider      Provider `json:"provider"`
	DisplayName   string   `json:"display_name"`
	ContextWindow int      `json:"context_window"`
	MaxOutput     int      `json:"max_output,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
}

// Models is the built-in model catalog. The first entry for a provider is
// its default model, used by New when no model option is supplied.
var Models = []ModelInfo{
	// OpenAI
	{
		ID: "gpt-4o", Provider: ProviderOpenAI, DisplayName: "GPT-4o",
		ContextWindow: 128000, MaxOutput: 16384,
		Aliases: []string{"4o"},
	},
	{
		ID: "gpt-4o-mini", Provider: ProviderOpenAI, DisplayName: "GPT-4o Mini",
		ContextWindow: 128000, MaxOutput: 16384,
		Aliases: []string{"4o-mini"},
	},

	// Anthropic
	{
		ID: "claude-3-5-haiku-20241022", Provider: ProviderAnthropic, DisplayName: "Claude 3.5 Haiku",
		ContextWindow: 200000, MaxOutput: 8192,
		Aliases: []string{"haiku", "claude-haiku"},
	},
	{
		ID: "claude-3-5-sonnet-20241022", Provider: ProviderAnthropic, DisplayName: "Claude 3.5 Sonnet",
		ContextWindow: 200000, MaxOutput: 8192,
		Aliases: []string{"sonnet", "claude-sonnet"},
	},

	// Ollama
	{
		ID: "phi4-mini:latest", Provider: ProviderOllama, DisplayName: "Phi-4 Mini",
		ContextWindow: 128000, MaxOutput: 4096,
		Aliases: []string{"phi4-mini"},
	},
	{
		ID: "llama3.2:latest", Provider: ProviderOllama, DisplayName: "Llama 3.2",
		ContextWindow: 131072, MaxOutput: 4096,
		Aliases: []string{"llama3.2"},
	},

	// Hugging Face
	{
		ID: "microsoft/Phi-4-mini-instruct", Provider: ProviderHuggingFace, DisplayName: "Phi-4 Mini Instruct",
		ContextWindow: 128000, MaxOutput: 4096,
	},
	{
		ID: "mistralai/Mistral-7B-Instruct-v0.3", Provider: ProviderHuggingFace, DisplayName: "Mistral 7B Instruct",
		ContextWindow: 32768, MaxOutput: 4096,
	},
}

// GetModelInfo returns the catalog entry for a model ID or alias, or nil if
// unknown.
func GetModelInfo(modelID string) *ModelInfo {
	for i := range Models {
		if Models[i].ID == modelID {
			return &Models[i]
		}
		for _, alias := range Models[i].Aliases {
			if alias == modelID {
				return &Models[i]
			}
		}
	}
	return nil
}

// ListModels returns all known models, optionally filtered by provider.
func ListModels(provider Provider) []ModelInfo {
	if provider == "" {
		result := make([]ModelInfo, len(Models))
		copy(result, Models)
		return result
	}
	var result []ModelInfo
	for _, m := range Models {
		if m.Provider == provider {
			result = append(result, m)
		}
	}
	return result
}

// DefaultModel returns the default model for a provider, or nil when the
// catalog has no entry for it.
func DefaultModel(provider Provider) *ModelInfo {
	for i := range Models {
		if Models[i].Provider == provider {
			return &Models[i]
		}
	}
	return nil
}
