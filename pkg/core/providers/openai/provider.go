// Package openai implements the chat completion provider against the OpenAI
// Chat Completions API.
package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/vmkdlabs/leadgate/pkg/core/chat"
)

const (
	// DefaultBaseURL is the default OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o"
)

// Provider implements chat.Provider over the OpenAI Chat Completions API.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures the provider.
type Option func(*Provider)

// WithBaseURL sets a custom base URL (for testing or proxying).
func WithBaseURL(url string) Option {
	return func(p *Provider) {
		if url != "" {
			p.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel sets the completion model.
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// New creates a new OpenAI provider.
func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:     apiKey,
		model:      DefaultModel,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "openai"
}

// Complete sends a non-streaming chat completion request and returns the
// first choice's message content.
func (p *Provider) Complete(ctx context.Context, req chat.Request) (string, error) {
	body, err := p.doRequest(ctx, &chatRequest{
		Model:       p.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return parseCompletion(body)
}
