package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmavita/internal/config"
	"farmavita/internal/infra"
	"farmavita/internal/repository"
	"farmavita/internal/router"
	"farmavita/internal/service"
	"farmavita/internal/worker"

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

	// NewDatabase runs the migrations and schema patches itself.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	reportDB, err := infra.NewReportDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open reporting connection")
	}

	// Start goroutine worker pool for async tasks (PDF, email, alertas).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	uploader := infra.NewSFTPUploader(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	facturaRepo := repository.NewFacturaRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	personaRepo := repository.NewPersonaRepository(db)

	facturaWorker := worker.NewFacturaWorker(facturaRepo, dispatcher, cfg.PDFStoragePath)
	emailWorker := worker.NewEmailWorker(mailer, smtpCB, rdb)
	alertaWorker := worker.NewAlertaWorker(sucursalRepo, inventarioRepo, personaRepo, dispatcher)

	handlers := map[string]worker.Handler{
		worker.QueueFactura: facturaWorker.Process,
		worker.QueueEmail:   emailWorker.Process,
		worker.QueueAlertas: alertaWorker.Process,
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Parked notification jobs get re-drained through the same breaker
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		Sender: mailer,
		CB:     smtpCB,
		RDB:    rdb,
	})

	// Daily report pack: Excel export, optional SFTP drop, stock alerts
	worker.StartReportCron(ctx, worker.ReportCronConfig{
		Reportes:     service.NewReporteService(reportDB),
		Uploader:     uploader,
		SucursalRepo: sucursalRepo,
		Dispatcher:   dispatcher,
		OutputDir:    cfg.PDFStoragePath,
		UploadHour:   cfg.ReportUploadHour,
	})

	r := router.New(cfg, db, rdb, reportDB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("FarmaVita backend listening on :%d", cfg.Port)
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
