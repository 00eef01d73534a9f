package driven

import "context"

// Transcriber converts captured audio into a query string before the
// normal pipeline runs. Stateless, single-shot; it holds no retrieval
// or composition state.
type Transcriber interface {
	// Transcribe returns the recognised text for an audio file.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Synthesiser converts an answer into audio after composition.
// Stateless, single-shot.
type Synthesiser interface {
	// Synthesise writes spoken audio for text and returns the output
	// file path.
	Synthesise(ctx context.Context, text, language string) (string, error)
}
