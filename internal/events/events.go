// Package events fans domain events out to live subscribers.
package events

import (
	"errors"
	"time"
)

type Type string

const (
	AgentBred        Type = "agent.bred"
	BattleResolved   Type = "battle.resolved"
	AgentPurchased   Type = "agent.purchased"
	PaymentConfirmed Type = "payment.confirmed"
)

// Event is the envelope published for every domain event.
type Event struct {
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(e Event) error
}

// Multi publishes to every member and joins their errors.
type Multi []Publisher

func (m Multi) Publish(e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }
