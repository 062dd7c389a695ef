package anyllm

import (
	"context"
	"strings"
	"sync"
)

// Chunk is one increment of a streaming completion. A chunk carries either
// text or a terminal error, never both.
type Chunk struct {
	Text string
	Err  error
}

// Result is the normalized outcome of a Generate call: either the complete
// text of a non-streaming completion, or a finite, cancellable sequence of
// chunks for a streaming one. The stream is not restartable.
type Result struct {
	provider Provider
	model    string

	text   string
	stream <-chan Chunk
	cancel context.CancelFunc
	once   sync.Once
}

func newTextResult(provider Provider, model, text string) *Result {
	return &Result{provider: provider, model: model, text: text}
}

func newStreamResult(provider Provider, model string, stream <-chan Chunk, cancel context.CancelFunc) *Result {
	return &Result{provider: provider, model: model, stream: stream, cancel: cancel}
}

// Provider returns the identity of the backend that produced the result.
func (r *Result) Provider() Provider { return r.provider }

// Model returns the model the completion was generated with.
func (r *Result) Model() string { return r.model }

// Streaming reports whether the result carries a chunk stream.
func (r *Result) Streaming() bool { return r.stream != nil }

// Text returns the complete text of a non-streaming result. For a streaming
// result it returns the empty string; use Chunks or Collect instead.
func (r *Result) Text() string { return r.text }

// Chunks returns the chunk channel of a streaming result, or nil for a
// buffered one. The channel closes when the stream is exhausted.
func (r *Result) Chunks() <-chan Chunk { return r.stream }

// Collect drains the result into a single string. For a buffered result it
// returns the text directly; for a streaming result it consumes the stream
// and returns the concatenated chunks, or the first chunk error.
func (r *Result) Collect() (string, error) {
	if r.stream == nil {
		return r.text, nil
	}
	var sb strings.Builder
	for chunk := range r.stream {
		if chunk.Err != nil {
			r.Close()
			return sb.String(), chunk.Err
		}
		sb.WriteString(chunk.Text)
	}
	return sb.String(), nil
}

// Close stops consumption of a streaming result early and releases the
// backend resources behind it. Closing a buffered result, or closing twice,
// is a no-op.
func (r *Result) Close() {
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
	})
}
