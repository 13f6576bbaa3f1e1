package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const natsConnectTimeout = 10 * time.Second

// NATSPublisher publishes events on "<prefix>.<type>" subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("agent-arena"),
		nats.Timeout(natsConnectTimeout),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc, prefix: prefix}, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(t Type) string {
	if p.prefix == "" {
		return string(t)
	}
	return p.prefix + "." + string(t)
}

func (p *NATSPublisher) Publish(e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.conn.Publish(p.Subject(e.Type), data)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
