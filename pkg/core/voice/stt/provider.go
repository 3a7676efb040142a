// Package stt provides speech-to-text functionality.
package stt

import (
	"context"
	"io"
)

// Provider is the interface for speech-to-text services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error)
}

// TranscribeOptions configures transcription.
type TranscribeOptions struct {
	Model    string // Provider-specific model (default: "whisper-1")
	Language string // ISO language code; empty lets the provider auto-detect
	Format   string // Audio format hint (webm, ogg, wav, mp3)
}

// Transcript is the result of transcription.
type Transcript struct {
	Text     string  // Full transcribed text
	Language string  // Detected or specified language
	Duration float64 // Audio duration in seconds
}
