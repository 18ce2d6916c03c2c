package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/api"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/config"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/logseq"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/pipeline"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients. Both are optional: without a recognition service
	// only pre-recognized results can be submitted, and without Logseq the
	// sync phase is skipped.
	stats := recognition.NewStats(1 * time.Hour)
	var recognizer *recognition.Client
	if cfg.RecognitionEnabled() {
		recognizer = recognition.NewClient(cfg.RecognitionURL, cfg.RecognitionAppKey, cfg.RecognitionHMACKey, cfg.RecognitionRPS, stats)
	}

	var logseqClient *logseq.Client
	var syncer *logseq.Syncer
	if cfg.SyncEnabled() {
		logseqClient = logseq.NewClient(cfg.LogseqURL, cfg.LogseqToken)
		syncer = logseq.NewSyncer(logseqClient, log, cfg.MaxConcurrentSync)
	} else {
		log.Info("logseq sync disabled, no LOGSEQ_TOKEN configured")
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, syncer, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, recognizer, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if recognizer != nil {
			recognizer.Close()
		}
		if logseqClient != nil {
			logseqClient.Close()
		}
	}()

	log.Info("starting smartpen bridge", "port", cfg.Port, "sync", cfg.SyncEnabled(), "recognition", cfg.RecognitionEnabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
