package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
)

// SendChat stores the user message, asks the responder for a reply in the
// agent's voice and stores the reply.
func (s *Service) SendChat(ctx context.Context, agentID uint, message string) (*game.ChatMessage, error) {
	start := time.Now()
	message = strings.TrimSpace(message)
	if agentID == 0 || message == "" {
		return nil, fmt.Errorf("%w: agentId and message are required", ErrInvalidInput)
	}
	a, err := s.repo.GetAgent(agentID)
	if err != nil {
		return nil, agentErr(agentID, err)
	}
	if err := s.repo.AppendChatMessage(&game.ChatMessage{AgentID: agentID, Role: game.ChatRoleUser, Content: message}); err != nil {
		return nil, err
	}
	history, err := s.repo.ChatHistory(agentID, s.settings.ChatHistoryLimit)
	if err != nil {
		return nil, err
	}
	content, usedModel := s.chat.Reply(ctx, *a, history)
	reply := &game.ChatMessage{AgentID: agentID, Role: game.ChatRoleAssistant, Content: content}
	if err := s.repo.AppendChatMessage(reply); err != nil {
		return nil, err
	}
	logging.Info("chat reply generated", logging.Fields{
		constants.LogFieldAgentID:    agentID,
		"used_model":                 usedModel,
		"response_length":            len(content),
		constants.LogFieldDurationMS: sinceMS(start),
	})
	return reply, nil
}

// ChatHistory returns the whole transcript in ascending order.
func (s *Service) ChatHistory(agentID uint) ([]game.ChatMessage, error) {
	return s.repo.ChatHistory(agentID, 0)
}
