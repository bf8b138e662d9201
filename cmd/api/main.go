package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recuperacasa/intake-api/internal/config"
	"github.com/recuperacasa/intake-api/internal/logger"
	"github.com/recuperacasa/intake-api/internal/mail"
	"github.com/recuperacasa/intake-api/internal/server"
	"github.com/recuperacasa/intake-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel)
	log := logger.Get()

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}

	// Tables must exist before the first request is served.
	if err := postgres.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	var sender mail.Sender
	if cfg.MailConfigured() {
		sender = mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.NotifyTo)
		log.Info("Mail notifications enabled", "host", cfg.SMTP.Host, "to", cfg.NotifyTo)
	} else {
		sender = mail.NewLogSender()
		log.Warn("SMTP not configured, notifications will only be logged")
	}

	srv := server.New(cfg, db, sender)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}

	if err := postgres.Close(db); err != nil {
		log.Error("Database close failed", "error", err)
	}

	log.Info("Server stopped")
}
