package events

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMultiPublishesToAll(t *testing.T) {
	boom := errors.New("boom")
	a := &recorder{}
	b := &recorder{err: boom}
	m := Multi{a, nil, b}
	err := m.Publish(Event{Type: AgentBred})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("every publisher should receive the event")
	}
}

func TestNATSSubject(t *testing.T) {
	p := &NATSPublisher{prefix: "arena"}
	if got := p.Subject(BattleResolved); got != "arena.battle.resolved" {
		t.Fatalf("unexpected subject %q", got)
	}
	p.prefix = ""
	if got := p.Subject(BattleResolved); got != "battle.resolved" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := hub.Publish(Event{Type: AgentPurchased, Payload: map[string]int{"agentId": 7}}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != AgentPurchased {
		t.Fatalf("unexpected event type %q", got.Type)
	}
}
