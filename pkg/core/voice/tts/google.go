package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const googleDefaultBaseURL = "https://texttospeech.googleapis.com"

// googleVoice pairs a BCP-47 language code with a voice name.
type googleVoice struct {
	languageCode string
	name         string
}

// googleVoices maps our language codes to Indian-accented Chirp3 HD voices.
var googleVoices = map[string]googleVoice{
	"ta": {"ta-IN", "ta-IN-Chirp3-HD-Achernar"},
	"en": {"en-IN", "en-IN-Chirp3-HD-Achernar"},
	"hi": {"hi-IN", "hi-IN-Chirp3-HD-Achernar"},
}

// GoogleProvider implements the TTS Provider interface using the Google
// Cloud Text-to-Speech REST API.
type GoogleProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogle creates a new Google TTS provider.
func NewGoogle(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:     apiKey,
		baseURL:    googleDefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// NewGoogleWithClient creates a new Google TTS provider with a custom HTTP client.
func NewGoogleWithClient(apiKey string, client *http.Client) *GoogleProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		baseURL:    googleDefaultBaseURL,
		httpClient: client,
	}
}

// WithBaseURL overrides the API endpoint (for testing or proxying).
func (g *GoogleProvider) WithBaseURL(base string) *GoogleProvider {
	if base != "" {
		g.baseURL = base
	}
	return g
}

// Name returns the provider identifier.
func (g *GoogleProvider) Name() string {
	return "google"
}

type googleSynthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type googleSynthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize converts text to MP3 audio. The voice is selected by language
// code; unknown languages fall back to the English voice.
func (g *GoogleProvider) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error) {
	voice, ok := googleVoices[opts.Language]
	if !ok {
		voice = googleVoices["en"]
	}
	if opts.Voice != "" {
		voice.name = opts.Voice
	}

	var req googleSynthesizeRequest
	req.Input.Text = text
	req.Voice.LanguageCode = voice.languageCode
	req.Voice.Name = voice.name
	req.AudioConfig.AudioEncoding = "MP3"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/text:synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google tts error %d: %s", resp.StatusCode, string(respBody))
	}

	var synthResp googleSynthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&synthResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if synthResp.AudioContent == "" {
		return nil, fmt.Errorf("google tts returned no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(synthResp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}

	return &Synthesis{Audio: audio, Format: "mp3"}, nil
}
