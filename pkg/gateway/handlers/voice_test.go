package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/core/types"
	"github.com/vmkdlabs/leadgate/pkg/core/voice"
	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
)

type stubPipeline struct {
	result    *voice.Result
	err       error
	gotAudio  []byte
	gotFormat string
	gotHint   types.Language
}

func (s *stubPipeline) Process(_ context.Context, audio io.Reader, format string, langHint types.Language) (*voice.Result, error) {
	s.gotAudio, _ = io.ReadAll(audio)
	s.gotFormat = format
	s.gotHint = langHint
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newVoiceHandler(p *stubPipeline) VoiceHandler {
	return VoiceHandler{
		Config: config.Config{
			MaxAudioBytes: 10 << 20,
		},
		Pipeline: p,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// voiceBody builds a multipart body with one audio part and optional extra
// form fields.
func voiceBody(t *testing.T, fieldName, contentType string, audio []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)

	if fieldName != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="clip"`)
		hdr.Set("Content-Type", contentType)
		part, err := mp.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(audio); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	for k, v := range fields {
		if err := mp.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mp.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mp.FormDataContentType()
}

func postVoice(t *testing.T, h VoiceHandler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/voice", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestVoice_OK(t *testing.T) {
	p := &stubPipeline{result: &voice.Result{
		Transcript: "tell me about chatbots",
		Language:   types.LangEnglish,
		Reply:      "We build chatbots.",
		AudioRef:   "tts_abc123.mp3",
	}}
	h := newVoiceHandler(p)

	body, ct := voiceBody(t, "audio", "audio/webm", []byte("fake-webm"), map[string]string{"language": "en"})
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp voiceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Transcript != "tell me about chatbots" {
		t.Fatalf("transcript = %q", resp.Transcript)
	}
	if resp.Reply != "We build chatbots." {
		t.Fatalf("reply = %q", resp.Reply)
	}
	if resp.Language != types.LangEnglish {
		t.Fatalf("detected_language = %q", resp.Language)
	}
	if resp.AudioURL != "/api/audio/tts_abc123.mp3" {
		t.Fatalf("audio_url = %q", resp.AudioURL)
	}

	if string(p.gotAudio) != "fake-webm" {
		t.Fatalf("pipeline audio = %q", p.gotAudio)
	}
	if p.gotFormat != "webm" {
		t.Fatalf("pipeline format = %q", p.gotFormat)
	}
	if p.gotHint != types.LangEnglish {
		t.Fatalf("pipeline hint = %q", p.gotHint)
	}
}

func TestVoice_TextOnlyOmitsAudioURL(t *testing.T) {
	p := &stubPipeline{result: &voice.Result{
		Transcript: "hello",
		Language:   types.LangEnglish,
		Reply:      "hi",
	}}
	h := newVoiceHandler(p)

	body, ct := voiceBody(t, "audio", "audio/ogg", []byte("opus"), nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "audio_url") {
		t.Fatalf("audio_url should be omitted: %s", rec.Body.String())
	}
}

func TestVoice_MissingFile(t *testing.T) {
	h := newVoiceHandler(&stubPipeline{})
	body, ct := voiceBody(t, "", "", nil, map[string]string{"language": "ta"})
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "audio file is required") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestVoice_EmptyFile(t *testing.T) {
	h := newVoiceHandler(&stubPipeline{})
	body, ct := voiceBody(t, "audio", "audio/webm", nil, nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "audio file is empty") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestVoice_OversizeFile(t *testing.T) {
	h := newVoiceHandler(&stubPipeline{})
	h.Config.MaxAudioBytes = 16

	body, ct := voiceBody(t, "audio", "audio/webm", bytes.Repeat([]byte("a"), 64), nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "payload_too_large_error") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestVoice_UnsupportedType(t *testing.T) {
	h := newVoiceHandler(&stubPipeline{})
	body, ct := voiceBody(t, "audio", "application/pdf", []byte("%PDF"), nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unsupported audio type") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestVoice_ContentTypeParametersIgnored(t *testing.T) {
	p := &stubPipeline{result: &voice.Result{Transcript: "hi", Reply: "hi", Language: types.LangEnglish}}
	h := newVoiceHandler(p)

	body, ct := voiceBody(t, "audio", "audio/webm;codecs=opus", []byte("fake"), nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if p.gotFormat != "webm" {
		t.Fatalf("format = %q", p.gotFormat)
	}
}

func TestVoice_NotMultipart(t *testing.T) {
	h := newVoiceHandler(&stubPipeline{})
	req := httptest.NewRequest(http.MethodPost, "/api/voice", strings.NewReader(`{"audio":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "multipart") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestVoice_UnprocessableAudio(t *testing.T) {
	p := &stubPipeline{err: core.NewUnprocessableError("could not understand the audio, please speak clearly and try again")}
	h := newVoiceHandler(p)

	body, ct := voiceBody(t, "audio", "audio/webm", []byte("static"), nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unprocessable_error") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestVoice_PipelineFailure(t *testing.T) {
	p := &stubPipeline{err: core.NewProviderError("speech")}
	h := newVoiceHandler(p)

	body, ct := voiceBody(t, "audio", "audio/webm", []byte("fake"), nil)
	rec := postVoice(t, h, body, ct)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestVoice_MethodNotAllowed(t *testing.T) {
	h := newVoiceHandler(&stubPipeline{})
	req := httptest.NewRequest(http.MethodGet, "/api/voice", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
