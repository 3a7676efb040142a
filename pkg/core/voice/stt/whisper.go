package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

const whisperDefaultBaseURL = "https://api.openai.com/v1"

// WhisperProvider implements the STT Provider interface using OpenAI's
// audio transcription API.
type WhisperProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWhisper creates a new Whisper STT provider.
func NewWhisper(apiKey string) *WhisperProvider {
	return &WhisperProvider{
		apiKey:     apiKey,
		baseURL:    whisperDefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// NewWhisperWithClient creates a new Whisper STT provider with a custom HTTP client.
func NewWhisperWithClient(apiKey string, client *http.Client) *WhisperProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &WhisperProvider{
		apiKey:     apiKey,
		baseURL:    whisperDefaultBaseURL,
		httpClient: client,
	}
}

// WithBaseURL overrides the API endpoint (for testing or proxying).
func (w *WhisperProvider) WithBaseURL(base string) *WhisperProvider {
	if base != "" {
		w.baseURL = base
	}
	return w
}

// Name returns the provider identifier.
func (w *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe converts audio to text using the transcription API. The
// verbose_json response format is requested so the provider reports the
// language it detected.
func (w *WhisperProvider) Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error) {
	audioData, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "audio."+whisperExtension(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}
	if err := mw.WriteField("model", model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("write response_format field: %w", err)
	}
	if opts.Language != "" {
		if err := mw.WriteField("language", opts.Language); err != nil {
			return nil, fmt.Errorf("write language field: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("whisper error %d: %s", resp.StatusCode, string(body))
	}

	var whisperResp whisperTranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&whisperResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &Transcript{
		Text:     whisperResp.Text,
		Language: whisperResp.Language,
		Duration: whisperResp.Duration,
	}, nil
}

type whisperTranscriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// whisperExtension returns the upload filename extension for the given
// format hint. The API sniffs codecs from the extension, so an unknown hint
// falls back to webm, the format browsers record in.
func whisperExtension(format string) string {
	switch format {
	case "wav", "mp3", "webm", "ogg", "flac", "m4a", "mp4", "mpeg", "mpga", "oga":
		return format
	default:
		return "webm"
	}
}
