package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ericogr/agent-arena/internal/game"
)

func TestSendChat(t *testing.T) {
	repo := newMemRepo()
	a := repo.add(game.Agent{Name: "Nova", Traits: traits(1, 1, 1)})
	s, _ := newTestService(repo, 1)
	bot := s.chat.(*cannedResponder)

	reply, err := s.SendChat(context.Background(), a.ID, " hello ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply.Role != game.ChatRoleAssistant || reply.Content != "I am Nova" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if bot.seen != 1 {
		t.Fatalf("responder should see the stored user message, saw %d", bot.seen)
	}
	hist, _ := s.ChatHistory(a.ID)
	if len(hist) != 2 || hist[0].Content != "hello" || hist[1].Role != game.ChatRoleAssistant {
		t.Fatalf("unexpected history: %+v", hist)
	}
}

func TestSendChat_Errors(t *testing.T) {
	repo := newMemRepo()
	a := repo.add(game.Agent{Name: "Nova"})
	s, _ := newTestService(repo, 1)
	if _, err := s.SendChat(context.Background(), a.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.SendChat(context.Background(), 404, "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.chat) != 0 {
		t.Fatalf("nothing should be stored on error")
	}
}
