package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/user/learnlog/app/api"
	"github.com/user/learnlog/app/cfg"
	"github.com/user/learnlog/app/database"
	"github.com/user/learnlog/app/domains"
	"github.com/user/learnlog/app/llm"
	"github.com/user/learnlog/app/pipeline"
	"github.com/user/learnlog/app/search"
	"github.com/user/learnlog/app/tasks"
)

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting learnlog server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	logRepo := database.NewLogRepository(db)
	tagRepo := database.NewTagRepository(db)
	refRepo := database.NewReferenceRepository(db)

	catalog := domains.DefaultCatalog()
	if appCfg.CatalogFile != "" {
		catalog, err = domains.LoadCatalog(appCfg.CatalogFile)
		if err != nil {
			slog.Error("Failed to load domain catalog", "file", appCfg.CatalogFile, "error", err)
			os.Exit(1)
		}
		slog.Info("Domain catalog loaded", "file", appCfg.CatalogFile)
	}
	matcher := domains.NewMatcher(catalog)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	searcher := search.NewSearcher(appCfg.TavilyBaseURL, appCfg.TavilyAPIKey, matcher, httpClient)
	groq := llm.NewGroqClient(appCfg.GroqBaseURL, appCfg.GroqAPIKey, appCfg.GroqModel)
	answerer := llm.NewAnswerer(groq)
	tagger := llm.NewTagger(groq, matcher.FallbackTags())
	formatter := llm.NewFormatter(groq)

	processor := pipeline.New(searcher, answerer, tagger, formatter, matcher, logRepo, tagRepo, refRepo)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "extract_content", appCfg.ExtractContent)
	scheduler := tasks.NewScheduler(refRepo, httpClient, tasks.NewExcerptExtractor())
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(processor, logRepo, tagRepo, refRepo)
	server := api.NewServer(handler)

	// WriteTimeout stays unset so SSE responses can outlive slow pipeline runs
	httpServer := &http.Server{
		Addr:        ":" + appCfg.Port,
		Handler:     server,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
