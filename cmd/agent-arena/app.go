package main

import (
	"net/http"

	"github.com/ericogr/agent-arena/internal/config"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func loadConfigOrExit(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logging.Fatal("missing or invalid configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func openDatabaseOrExit(cfg *config.Config) *gorm.DB {
	db, err := storage.OpenAndMigrate(cfg.Database.Path, cfg.Seeds())
	if err != nil {
		logging.Fatal("failed to initialize database", err, logging.Fields{"db_path": cfg.Database.Path})
	}
	return db
}

// buildPublisher fans events out to the websocket hub and, when configured,
// to NATS. The returned func releases both.
func buildPublisher(cfg *config.Config, hub *events.Hub) (events.Publisher, func()) {
	if cfg.Events.NATSURL == "" {
		return hub, hub.Close
	}
	nc, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
	if err != nil {
		logging.Error("nats unavailable, events stay local", err, logging.Fields{"url": cfg.Events.NATSURL})
		return hub, hub.Close
	}
	logging.Info("publishing events to nats", logging.Fields{"url": cfg.Events.NATSURL, "prefix": cfg.Events.SubjectPrefix})
	return events.Multi{hub, nc}, func() {
		nc.Close()
		hub.Close()
	}
}

// withCORS allows the configured origins; an empty list allows any origin.
func withCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(h)
}
