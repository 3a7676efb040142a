// Package voice runs the one-shot voice conversation pipeline: transcribe,
// respond, extract, synthesize.
package voice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/core/langdetect"
	"github.com/vmkdlabs/leadgate/pkg/core/lead"
	"github.com/vmkdlabs/leadgate/pkg/core/speechtext"
	"github.com/vmkdlabs/leadgate/pkg/core/types"
	"github.com/vmkdlabs/leadgate/pkg/core/voice/stt"
	"github.com/vmkdlabs/leadgate/pkg/core/voice/tts"
)

// Responder produces an assistant reply for a user message.
type Responder interface {
	Respond(ctx context.Context, userMessage string, history []types.Turn, lang types.Language) (string, error)
}

// Store persists synthesized audio and returns a reference the caller can
// later exchange for the bytes.
type Store interface {
	Save(audio []byte) (string, error)
}

// Result is the outcome of one voice round trip. AudioRef is empty when
// the reply normalized to nothing speakable and synthesis was skipped.
type Result struct {
	Transcript string
	Language   types.Language
	Reply      string
	Lead       *types.Lead
	AudioRef   string
}

// Pipeline handles a full voice turn.
type Pipeline struct {
	sttProvider stt.Provider
	ttsProvider tts.Provider
	responder   Responder
	leads       *lead.Extractor
	store       Store
	logger      *slog.Logger
	sttModel    string
}

// NewPipeline creates a voice pipeline.
func NewPipeline(sttProvider stt.Provider, ttsProvider tts.Provider, responder Responder, leads *lead.Extractor, store Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		sttProvider: sttProvider,
		ttsProvider: ttsProvider,
		responder:   responder,
		leads:       leads,
		store:       store,
		logger:      logger,
	}
}

// WithSTTModel overrides the transcription model.
func (p *Pipeline) WithSTTModel(model string) *Pipeline {
	p.sttModel = model
	return p
}

// Process transcribes the audio, asks the model for a reply, extracts any
// lead, and synthesizes the spoken reply. Any provider or storage failure
// aborts the turn; synthesis is only skipped when the reply has nothing
// speakable left after normalization.
func (p *Pipeline) Process(ctx context.Context, audio io.Reader, format string, langHint types.Language) (*Result, error) {
	sttOpts := stt.TranscribeOptions{Format: format, Model: p.sttModel}
	if langHint.Valid() {
		sttOpts.Language = string(langHint)
	}

	transcript, err := p.sttProvider.Transcribe(ctx, audio, sttOpts)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	text := strings.TrimSpace(transcript.Text)
	if text == "" {
		return nil, core.NewUnprocessableError("could not understand the audio, please speak clearly and try again")
	}

	lang := p.resolveLanguage(langHint, transcript.Language, text)
	p.logger.Debug("transcribed audio",
		"chars", len(text),
		"provider_language", transcript.Language,
		"language", lang)

	reply, err := p.responder.Respond(ctx, text, nil, lang)
	if err != nil {
		return nil, fmt.Errorf("respond: %w", err)
	}

	capturedLead := p.leads.FromReply(reply)
	reply = lead.Strip(reply)
	if capturedLead == nil {
		capturedLead = p.leads.FromConversation(text, nil)
	}

	result := &Result{
		Transcript: text,
		Language:   lang,
		Reply:      reply,
		Lead:       capturedLead,
	}

	speech := speechtext.Normalize(reply)
	if speech == "" {
		return result, nil
	}

	synthesis, err := p.ttsProvider.Synthesize(ctx, speech, tts.SynthesizeOptions{Language: string(lang)})
	if err != nil {
		// The upstream detail stays here; callers see the generic message.
		p.logger.Error("synthesis failed", "error", err)
		return nil, fmt.Errorf("synthesize: %w", core.NewProviderError("speech"))
	}

	ref, err := p.store.Save(synthesis.Audio)
	if err != nil {
		return nil, fmt.Errorf("store audio: %w", err)
	}
	result.AudioRef = ref

	return result, nil
}

// resolveLanguage reconciles the caller's hint, the provider's detection and
// the transcript's script. Script evidence is authoritative: Whisper
// mislabels Tamil speech as Hindi often enough that the written script must
// win.
func (p *Pipeline) resolveLanguage(hint types.Language, providerLang, text string) types.Language {
	if lang, ok := langdetect.Script(text); ok {
		return lang
	}
	if hint.Valid() {
		return hint
	}
	if lang, ok := fromProviderLanguage(providerLang); ok {
		return lang
	}
	return types.LangEnglish
}

// fromProviderLanguage maps Whisper's language labels, which may be ISO
// codes or English names, to our codes.
func fromProviderLanguage(lang string) (types.Language, bool) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ta", "tamil":
		return types.LangTamil, true
	case "hi", "hindi":
		return types.LangHindi, true
	case "en", "english":
		return types.LangEnglish, true
	default:
		return "", false
	}
}
