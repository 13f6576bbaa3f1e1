package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ericogr/agent-arena/internal/config"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/storage"
	"github.com/shopspring/decimal"
)

// memRepo is an in-memory storage.Repository. Transaction snapshots the
// state and restores it when fn fails.
type memRepo struct {
	agents   map[uint]game.Agent
	balances map[string]int
	payments map[uint]game.Payment
	chat     []game.ChatMessage
	nextID   uint

	failSave error
}

func newMemRepo() *memRepo {
	return &memRepo{
		agents:   map[uint]game.Agent{},
		balances: map[string]int{},
		payments: map[uint]game.Payment{},
	}
}

func (m *memRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memRepo) add(a game.Agent) game.Agent {
	a.ID = m.id()
	a.Rarity = engine.ClassifyRarity(a.Traits)
	engine.RefreshPower(&a)
	m.agents[a.ID] = a
	return a
}

func (m *memRepo) sorted() []game.Agent {
	out := make([]game.Agent, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memRepo) ListAgents() ([]game.Agent, error) { return m.sorted(), nil }

func (m *memRepo) ListAgentsForSale() ([]game.Agent, error) {
	var out []game.Agent
	for _, a := range m.sorted() {
		if a.ForSale {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memRepo) TopAgents(limit int) ([]game.Agent, error) {
	out := m.sorted()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Power != out[j].Power {
			return out[i].Power > out[j].Power
		}
		return out[i].XP > out[j].XP
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) GetAgent(id uint) (*game.Agent, error) {
	a, ok := m.agents[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a.RefreshDerived()
	return &a, nil
}

func (m *memRepo) CreateAgent(a *game.Agent) error {
	a.ID = m.id()
	m.agents[a.ID] = *a
	return nil
}

func (m *memRepo) SaveAgent(a *game.Agent) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.agents[a.ID] = *a
	return nil
}

func (m *memRepo) DeleteAgent(id uint) error {
	if _, ok := m.agents[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

func (m *memRepo) GetBalance(userID string) (*game.Balance, error) {
	return &game.Balance{UserID: userID, Coins: m.balances[userID]}, nil
}

func (m *memRepo) AddCoins(userID string, delta int) error {
	m.balances[userID] += delta
	return nil
}

func (m *memRepo) CreatePayment(p *game.Payment) error {
	p.ID = m.id()
	p.CreatedAt = time.Now()
	m.payments[p.ID] = *p
	return nil
}

func (m *memRepo) GetPayment(id uint) (*game.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (m *memRepo) SavePayment(p *game.Payment) error {
	m.payments[p.ID] = *p
	return nil
}

func (m *memRepo) ListPayments(userID string) ([]game.Payment, error) {
	var out []game.Payment
	for _, p := range m.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memRepo) AppendChatMessage(msg *game.ChatMessage) error {
	msg.ID = m.id()
	m.chat = append(m.chat, *msg)
	return nil
}

func (m *memRepo) ChatHistory(agentID uint, limit int) ([]game.ChatMessage, error) {
	var out []game.ChatMessage
	for _, c := range m.chat {
		if c.AgentID == agentID {
			out = append(out, c)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memRepo) Transaction(fn func(storage.Repository) error) error {
	agents := make(map[uint]game.Agent, len(m.agents))
	for k, v := range m.agents {
		agents[k] = v
	}
	balances := make(map[string]int, len(m.balances))
	for k, v := range m.balances {
		balances[k] = v
	}
	payments := make(map[uint]game.Payment, len(m.payments))
	for k, v := range m.payments {
		payments[k] = v
	}
	chat := append([]game.ChatMessage(nil), m.chat...)
	nextID := m.nextID
	if err := fn(m); err != nil {
		m.agents, m.balances, m.payments, m.chat, m.nextID = agents, balances, payments, chat, nextID
		return err
	}
	return nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(e events.Event) error {
	r.events = append(r.events, e)
	return r.err
}

type cannedResponder struct {
	seen int
}

func (c *cannedResponder) Reply(_ context.Context, a game.Agent, history []game.ChatMessage) (string, bool) {
	c.seen = len(history)
	return "I am " + a.Name, false
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		Shop:     ShopPrices{RefillEnergy: 50, XPBoost: 100, RareTraitRoll: 200, XPBoostFor: 24 * time.Hour},
		Currency: "usd",
		CoinPackages: []config.CoinPackage{
			{ID: "starter", Coins: 100, PriceUSD: decimal.RequireFromString("0.99")},
		},
		ChatHistoryLimit: 20,
	}
}

func newTestService(repo *memRepo, seed int64) (*Service, *recordingPublisher) {
	pub := &recordingPublisher{}
	s := New(Deps{
		Repo:     repo,
		Engine:   engine.New(engine.DefaultRules()),
		RNG:      engine.NewSeededSource(seed),
		Events:   pub,
		Chat:     &cannedResponder{},
		Settings: testSettings(),
		Now:      func() time.Time { return fixedNow },
	})
	return s, pub
}

func traits(s, sp, i int) game.Traits {
	return game.Traits{Strength: s, Speed: sp, Intelligence: i}
}

var errBoom = errors.New("boom")
