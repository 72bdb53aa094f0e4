package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avicoladonnas/internal/config"
	"avicoladonnas/internal/infra"
	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/router"
	"avicoladonnas/internal/store"
	"avicoladonnas/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	gormStore, err := store.NewGormStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare document store")
	}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	st := store.ConBreaker(gormStore, cb)

	// Worker pool for async backups. Wired here (composition root) so the
	// workers get the same store the HTTP layer uses.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := worker.NewDispatcher(rdb)
	ajustesRepo := repository.NewAjustesRepository(st)
	respaldoWorker := worker.NewRespaldoWorker(st, ajustesRepo)
	worker.StartWorkerPool(ctx, rdb, respaldoWorker, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, st, cb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("avicoladonnas backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
