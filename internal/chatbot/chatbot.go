// Package chatbot answers chat messages in the voice of an agent.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	openai "github.com/sashabaranov/go-openai"
)

const offlineNote = " (Note: OpenAI API key not configured. This is a mock response.)"

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Bot asks the chat completion API for a reply and falls back to a canned
// line when no key is configured or the call fails.
type Bot struct {
	client *openai.Client
	cfg    Config
}

func New(cfg Config) *Bot {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	b := &Bot{cfg: cfg}
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		b.client = openai.NewClientWithConfig(oc)
	}
	return b
}

// Online reports whether an API key is configured.
func (b *Bot) Online() bool { return b.client != nil }

// Persona describes the agent's voice from its intelligence, strength and energy.
func Persona(a game.Agent) string {
	var sb strings.Builder
	sb.WriteString("You are an AI agent. ")
	switch {
	case a.Traits.Intelligence >= 8:
		sb.WriteString("You are highly intelligent and use sophisticated vocabulary. ")
	case a.Traits.Intelligence <= 3:
		sb.WriteString("You use simple language and keep responses brief. ")
	}
	switch {
	case a.Traits.Strength >= 8:
		sb.WriteString("You are confident and make bold, decisive statements. ")
	case a.Traits.Strength <= 3:
		sb.WriteString("You are cautious and often ask for input before making decisions. ")
	}
	switch {
	case a.Energy >= 70:
		sb.WriteString("You are energetic and enthusiastic. ")
	case a.Energy < 30:
		sb.WriteString("You are calm and measured, preferring short, thoughtful responses. ")
	}
	return strings.TrimSpace(sb.String())
}

func systemPrompt(a game.Agent) string {
	return fmt.Sprintf("You are %s, an AI agent with the following personality: %s\nYour stats are: Intelligence %d, Strength %d, Speed %d, Energy %d.\nRespond in character based on these stats.",
		a.Name, Persona(a), a.Traits.Intelligence, a.Traits.Strength, a.Traits.Speed, a.Energy)
}

func fallback(a game.Agent, n int) string {
	replies := []string{
		fmt.Sprintf("Hello! I'm %s. How can I help you?", a.Name),
		fmt.Sprintf("I'm %s, ready to assist!", a.Name),
		fmt.Sprintf("Hey there! %s here. What's up?", a.Name),
	}
	return replies[n%len(replies)]
}

// Reply returns the assistant answer for history, which already ends with
// the user's newest message. The bool reports whether the model answered.
func (b *Bot) Reply(ctx context.Context, a game.Agent, history []game.ChatMessage) (string, bool) {
	if b.client == nil {
		return fallback(a, len(history)) + offlineNote, false
	}
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(a)})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == game.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.cfg.Model,
		Messages:    msgs,
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: b.cfg.Temperature,
	})
	if err != nil {
		logging.Warn("chat completion failed; using fallback reply", logging.Fields{"error": err.Error(), "agent_id": a.ID})
		return fallback(a, len(history)), false
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return fallback(a, len(history)), false
	}
	return resp.Choices[0].Message.Content, true
}
