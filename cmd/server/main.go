package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/matiiroda/mg/internal/config"
	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/infra"
	"github.com/matiiroda/mg/internal/repository"
	"github.com/matiiroda/mg/internal/router"
	"github.com/matiiroda/mg/internal/worker"
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

	// In-memory engine: the runtime authority for catalog, caja, ledger and
	// the open cart. Rows in postgres are its durable shadow, loaded once here.
	eng := &router.Engine{
		Catalog: core.NewCatalogStore(),
		Caja:    core.NewCajaManager(),
		Ledger:  core.NewSaleLedger(),
	}
	eng.Cart = core.NewCartBuilder(eng.Catalog, eng.Caja, eng.Ledger)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer loadCancel()

	catalogRepo := repository.NewCatalogRepository(db)
	products, err := catalogRepo.LoadProducts(loadCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load products")
	}
	eng.Catalog.ReplaceAll(products)

	services, err := catalogRepo.LoadServices(loadCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load services")
	}
	for _, svc := range services {
		if err := eng.Catalog.UpsertService(svc); err != nil {
			log.Warn().Err(err).Str("service_id", svc.ID).Msg("skipping invalid service row")
		}
	}

	sales, err := repository.NewSaleRepository(db).ListAll(loadCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load sale history")
	}
	eng.Ledger.Seed(sales)

	// A caja left open by a previous run (crash, restart) stays open.
	openSession, err := repository.NewCajaRepository(db).FindOpen(loadCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load caja session")
	}
	if openSession != nil {
		eng.Caja.Restore(*openSession)
		log.Info().Str("session_id", openSession.ID.String()).Msg("restored open caja session")
	}

	log.Info().
		Int("products", len(products)).
		Int("services", len(services)).
		Int("sales", len(sales)).
		Msg("engine state loaded")

	// Worker pool for async jobs (webhook push, email). Handlers are wired
	// here, at the composition root, with full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handlers := worker.Handlers{
		Push:  worker.NewPushWorker(infra.NewWebhookClient()),
		Email: worker.NewEmailWorker(infra.NewMailer(cfg)),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	sheetCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, eng, sheetCB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("MG Control backend listening on :%d", cfg.Port)
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
