// Package chat assembles conversation state into completion requests and
// shapes the model's reply for the rest of the pipeline.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vmkdlabs/leadgate/pkg/core/types"
)

// Message is a single chat message on the wire to the completion provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries one completion call. Decoding parameters are fixed by the
// orchestrator so every provider sees the same settings.
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Provider produces a completion for an assembled request.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

const (
	// maxHistoryTurns bounds how much prior conversation is replayed to the
	// model. Older turns are dropped, newest kept.
	maxHistoryTurns = 10

	temperature    = 0.3
	maxReplyTokens = 500
)

// Orchestrator turns a user message plus history into a model reply.
type Orchestrator struct {
	provider Provider
	logger   *slog.Logger
}

func NewOrchestrator(provider Provider, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{provider: provider, logger: logger}
}

// Respond assembles the system prompt, the most recent history turns and the
// current user message, and asks the provider for a completion. An empty
// completion yields a canned apology rather than an error; provider failures
// propagate to the caller.
func (o *Orchestrator) Respond(ctx context.Context, userMessage string, history []types.Turn, lang types.Language) (string, error) {
	system := systemPrompt
	if directive, ok := languageDirectives[lang]; ok {
		system += "\n\n" + directive
	}

	msgs := make([]Message, 0, maxHistoryTurns+2)
	msgs = append(msgs, Message{Role: "system", Content: system})

	recent := history
	if len(recent) > maxHistoryTurns {
		recent = recent[len(recent)-maxHistoryTurns:]
	}
	for _, turn := range recent {
		if turn.Role != types.RoleUser && turn.Role != types.RoleAssistant {
			continue
		}
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		msgs = append(msgs, Message{Role: string(turn.Role), Content: turn.Content})
	}
	msgs = append(msgs, Message{Role: "user", Content: userMessage})

	reply, err := o.provider.Complete(ctx, Request{
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxReplyTokens,
	})
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		o.logger.Warn("empty completion, serving fallback reply")
		return fallbackReply, nil
	}
	return reply, nil
}
