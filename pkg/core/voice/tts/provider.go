// Package tts provides text-to-speech functionality.
package tts

import "context"

// Provider is the interface for text-to-speech services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Synthesize converts text to audio.
	Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error)
}

// SynthesizeOptions configures synthesis.
type SynthesizeOptions struct {
	Language string // ISO language code selecting the voice (default: "en")
	Voice    string // Provider-specific voice override
}

// Synthesis is the result of text-to-speech conversion.
type Synthesis struct {
	Audio  []byte // Encoded audio bytes
	Format string // Audio format ("mp3")
}
