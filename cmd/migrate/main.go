package main

import (
	"flag"
	"os"

	"github.com/recuperacasa/intake-api/internal/config"
	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/logger"
	"github.com/recuperacasa/intake-api/internal/storage/migrations"
	"github.com/recuperacasa/intake-api/internal/storage/postgres"
)

// Standalone runner for the submission-table migrations. The API runs
// the same migrations on boot; this exists for operating on the schema
// without starting the server.
func main() {
	cfg := config.Load()

	logger.Initialize(cfg.LogLevel)
	log := logger.Migration()

	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	log.Info("Starting migration process", "database", cfg.DB.Name, "rollback", *rollback)

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *rollback {
		if err := migrations.RollbackMigration(db); err != nil {
			log.Error("Migration rollback failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migration rollback completed successfully")
		return
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	tables := make([]string, 0, len(form.Models()))
	for _, model := range form.Models() {
		if named, ok := model.(interface{ TableName() string }); ok {
			tables = append(tables, named.TableName())
		}
	}
	log.Info("Submission tables ready", "tables", tables)
}
