package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docproof/internal/api"
	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/parser"
	"github.com/dgallion1/docproof/internal/pipeline"
	"github.com/dgallion1/docproof/internal/tokenizer"
	"github.com/dgallion1/docproof/internal/validate"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	checker, err := cfg.Checker()
	if err != nil {
		log.Error("invalid checker configuration", "path", cfg.CheckerConfigPath, "error", err)
		os.Exit(1)
	}
	validators, err := validate.FromChecker(checker)
	if err != nil {
		log.Error("invalid validator configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Workers share one tokenizer.
	symbols := checker.SymbolTable()
	opts := parser.Options{
		Symbols:           symbols,
		Tokenizer:         tokenizer.Synchronized(tokenizer.ForLanguage(symbols.Language())),
		FallbackPdftotext: cfg.PDFFallbackPdftotext,
	}

	// Initialize pipeline.
	stats := validate.NewStats(cfg.JobTTL)
	runner := validate.NewRunner(validators, cfg.MaxConcurrentValidators, stats, log)
	orch := pipeline.NewOrchestrator(cfg, opts, runner, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, stats, log, cfg)

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
	}()

	log.Info("starting docproof",
		"port", cfg.Port,
		"lang", symbols.Language(),
		"validators", runner.Validators(),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
