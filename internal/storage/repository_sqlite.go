package storage

import (
	"errors"

	"github.com/ericogr/agent-arena/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultTopLimit = 10

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *sqliteRepository) ListAgents() ([]game.Agent, error) {
	var agents []game.Agent
	if err := r.db.Order("id ASC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *sqliteRepository) ListAgentsForSale() ([]game.Agent, error) {
	var agents []game.Agent
	if err := r.db.Where("for_sale = ?", true).Order("id ASC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *sqliteRepository) TopAgents(limit int) ([]game.Agent, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	var agents []game.Agent
	if err := r.db.Model(&game.Agent{}).
		Order("power DESC").
		Order("xp DESC").
		Order("id ASC").
		Limit(limit).
		Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *sqliteRepository) GetAgent(id uint) (*game.Agent, error) {
	var a game.Agent
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *sqliteRepository) CreateAgent(a *game.Agent) error {
	return r.db.Create(a).Error
}

// SaveAgent writes every column, including zero values and a cleared rare trait.
func (r *sqliteRepository) SaveAgent(a *game.Agent) error {
	return r.db.Save(a).Error
}

func (r *sqliteRepository) DeleteAgent(id uint) error {
	res := r.db.Delete(&game.Agent{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return r.db.Where("agent_id = ?", id).Delete(&game.ChatMessage{}).Error
}

func (r *sqliteRepository) GetBalance(userID string) (*game.Balance, error) {
	var b game.Balance
	if err := r.db.Where("user_id = ?", userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.Balance{UserID: userID}, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) AddCoins(userID string, delta int) error {
	b := game.Balance{UserID: userID, Coins: delta}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"coins":      gorm.Expr("coins + ?", delta),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&b).Error
}

func (r *sqliteRepository) CreatePayment(p *game.Payment) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetPayment(id uint) (*game.Payment, error) {
	var p game.Payment
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *sqliteRepository) SavePayment(p *game.Payment) error {
	return r.db.Save(p).Error
}

func (r *sqliteRepository) ListPayments(userID string) ([]game.Payment, error) {
	var payments []game.Payment
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *sqliteRepository) AppendChatMessage(m *game.ChatMessage) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) ChatHistory(agentID uint, limit int) ([]game.ChatMessage, error) {
	q := r.db.Where("agent_id = ?", agentID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []game.ChatMessage
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	// newest first from the query; flip to ascending
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *sqliteRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteRepository{db: tx})
	})
}
