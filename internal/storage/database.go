package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database, migrates every model and seeds
// the starter agents when the agents table is empty.
func OpenAndMigrate(dataSourceName string, seeds []game.Agent) (*gorm.DB, error) {
	if err := ensureDir(dataSourceName); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Agent{}, &game.Balance{}, &game.Payment{}, &game.ChatMessage{}); err != nil {
		return nil, err
	}
	if err := seedAgents(db, seeds); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureDir(dataSourceName string) error {
	if strings.HasPrefix(dataSourceName, "file:") || dataSourceName == ":memory:" {
		return nil
	}
	dir := filepath.Dir(dataSourceName)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func seedAgents(db *gorm.DB, seeds []game.Agent) error {
	if len(seeds) == 0 {
		return nil
	}
	var count int64
	if err := db.Model(&game.Agent{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	agents := make([]game.Agent, len(seeds))
	for i, s := range seeds {
		a := s
		a.Rarity = engine.ClassifyRarity(a.Traits)
		engine.RefreshPower(&a)
		agents[i] = a
	}
	if err := db.Create(&agents).Error; err != nil {
		return err
	}
	logging.Info("seeded starter agents", logging.Fields{"count": len(agents)})
	return nil
}
