package main

import (
	"github.com/ericogr/agent-arena/internal/api"
	"github.com/ericogr/agent-arena/internal/chatbot"
	"github.com/ericogr/agent-arena/internal/config"
	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/ericogr/agent-arena/internal/storage"
	"github.com/ericogr/agent-arena/internal/version"
)

func main() {
	defer logging.Sync()

	logging.Info("starting agent-arena", logging.Fields{"version": version.Summary()})
	configPath := config.Path()
	cfg := loadConfigOrExit(configPath)
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warn("invalid log level, keeping info", logging.Fields{"level": cfg.Log.Level})
	}

	db := openDatabaseOrExit(cfg)
	repo := storage.NewSQLiteRepository(db)

	hub := events.NewHub()
	publisher, closeEvents := buildPublisher(cfg, hub)
	defer closeEvents()

	bot := chatbot.New(chatbot.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.Chat.Model,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
	})
	if !bot.Online() {
		logging.Warn("chat running in offline mode", logging.Fields{"hint": "set " + constants.EnvOpenAIAPIKey})
	}

	svc := service.New(service.Deps{
		Repo:     repo,
		Engine:   engine.New(cfg.EngineRules()),
		RNG:      engine.NewSource(),
		Events:   publisher,
		Chat:     bot,
		Settings: service.SettingsFromConfig(cfg),
	})

	router := api.NewRouter(api.NewHandler(svc, hub))
	serve(cfg.Server.Address, withCORS(router, cfg.Server.CORSOrigins))

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logging.Error("failed to close database", err, nil)
		}
	}
	logging.Info("server stopped", nil)
}
