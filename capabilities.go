package anyllm

// Capabilities declares, per provider, which features the adapter will
// accept before dispatching. One instance is registered per provider and
// never changes within a session; Client.Capabilities returns it by value.
type Capabilities struct {
	Streaming       bool `json:"streaming"`
	MaxTokens       int  `json:"max_tokens"`
	SystemPrompt    bool `json:"supports_system_prompt"`
	FunctionCalling bool `json:"supports_function_calling"`
	Vision          bool `json:"supports_vision"`
}
