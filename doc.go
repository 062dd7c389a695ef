// Package anyllm presents a single configuration and invocation surface
// over heterogeneous LLM provider APIs: OpenAI, Anthropic, Ollama, and
// Hugging Face. It is deliberately a thin adapter — a factory resolves a
// provider identity into a bound client, each call merges per-call options
// over a snapshot of the instance configuration, and the backend's answer
// comes back in a normalized shape.
//
// # Quick Start
//
//	client, err := anyllm.New(anyllm.ProviderOllama,
//	    anyllm.WithBaseURL("http://localhost:11434"),
//	    anyllm.WithModel("llama3.2"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.Generate(ctx, "hi")
//	fmt.Println(result.Text())
//
// Streaming calls return a finite, cancellable chunk sequence instead:
//
//	result, _ := client.Generate(ctx, "tell me a story", anyllm.WithStream(true))
//	defer result.Close()
//	for chunk := range result.Chunks() {
//	    fmt.Print(chunk.Text)
//	}
//
// # Configuration Layers
//
// Options set at construction (or later via SetConfig) form the
// instance-level configuration. Options passed to Generate apply to that
// call only, key-by-key, over a snapshot taken at call entry; a concurrent
// SetConfig either fully precedes or fully follows a given call.
//
// # Capabilities and Errors
//
// Each provider registers a static Capabilities declaration. Requesting a
// feature the provider does not support (for example WithStream(true)
// against Hugging Face) fails with CapabilityError before any network
// call. Backend failures surface as ProviderError subtypes tagged with the
// originating provider and HTTP status, which is what the FallbackChain
// and Retry helpers key off — the facade itself never retries.
package anyllm
