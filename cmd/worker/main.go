// Command worker runs the session cleanup sweep on a timer. It shares the
// configuration and database layer with the main server and can run as a
// separate deployment unit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tally/internal/application/account/usecases"
	"tally/internal/infrastructure/config"
	"tally/internal/infrastructure/database"
	"tally/internal/infrastructure/repository"
	"tally/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting session cleanup worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSessionRepository(database.Get(), log.Named("repository.session"))
	cleanupUC := usecases.NewCleanupSessionsUseCase(sessionRepo, cfg.Auth.Session, log.Named("usecase.cleanup"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	interval := time.Duration(cfg.Auth.Session.CleanupIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweep := func() {
		sweepCtx, sweepCancel := context.WithTimeout(ctx, 30*time.Second)
		defer sweepCancel()
		if _, err := cleanupUC.Execute(sweepCtx); err != nil {
			log.Errorw("session cleanup sweep failed", "error", err)
		}
	}

	log.Infow("session cleanup worker started", "interval", interval)
	sweep()

	for {
		select {
		case <-ticker.C:
			sweep()

		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig)
			return
		}
	}
}
