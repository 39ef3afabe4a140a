package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/apetrov/codetrack/internal/config"
	"github.com/apetrov/codetrack/internal/repository/postgres"
	"github.com/apetrov/codetrack/internal/service"
	"github.com/apetrov/codetrack/internal/sms"
	myhttp "github.com/apetrov/codetrack/internal/transport/http"
	"github.com/apetrov/codetrack/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting codetrack", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		err = db.DB().Close()
		if err != nil {
			errChan <- fmt.Errorf("db close failed: %v", err)
		}
	}()

	itemRepo := postgres.NewSolvedItemRepository(db.DB(), log)
	friendGraphRepo := postgres.NewFriendGraphRepository(db.DB(), log)
	profileRepo := postgres.NewProfileRepository(db.DB(), log)

	sender := sms.NewLogSender(log)

	fanoutService := service.NewFanoutService(log, friendGraphRepo, profileRepo, sender, cfg.SMS.DispatchLimit)
	reviewService := service.NewReviewService(log, itemRepo, fanoutService, time.Now)
	friendshipService := service.NewFriendshipService(db.DB(), log, friendGraphRepo, friendGraphRepo, time.Now)
	notifierService := service.NewNotifierService(log, itemRepo, profileRepo, sender, cfg.SMS.DispatchLimit, time.Now)

	srv := myhttp.NewServer(log, reviewService, friendshipService, notifierService)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
