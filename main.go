package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/coreybb/bookpot-admin/api"
	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/config"
	"github.com/coreybb/bookpot-admin/metrics"
	"github.com/coreybb/bookpot-admin/pages"
	rh "github.com/coreybb/bookpot-admin/route-handlers"
	"github.com/coreybb/bookpot-admin/web"
	"github.com/coreybb/bookpot-admin/webutil"
	"github.com/coreybb/bookpot-admin/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	backend, err := apiclient.New(cfg.BackendURL, apiclient.Options{
		Timeout:  cfg.RequestTimeout,
		RetryMax: cfg.RetryMax,
		Logger:   logger,
		Metrics:  recorder,
	})
	if err != nil {
		log.Fatalf("Backend client setup failed: %v", err)
	}

	renderer, err := webutil.NewRenderer(web.Templates, web.Pages...)
	if err != nil {
		log.Fatalf("Template setup failed: %v", err)
	}

	views := &rh.Views{
		Loader:        pages.NewLoader(backend, logger),
		Renderer:      renderer,
		States:        workflow.NewStateStore(),
		SecureCookies: cfg.SecureCookies,
	}
	workflows := workflow.New(backend, logger, recorder)

	router := api.SetupRoutes(api.Handlers{
		Pages:   rh.NewPageHandler(views),
		Authors: rh.NewAuthorHandler(workflows, views, cfg.MaxUploadBytes),
		Ebooks:  rh.NewEbookHandler(workflows, views, cfg.MaxUploadBytes),
		Auth:    rh.NewAuthHandler(workflows, views),
	}, registry, cfg.HandlerTimeout())

	logger.Info("Dashboard configured",
		"backend", cfg.BackendURL,
		"retry_max", cfg.RetryMax,
		"request_timeout", cfg.RequestTimeout,
		"handler_timeout", cfg.HandlerTimeout(),
	)
	startServer(cfg.Port, router, cfg.ShutdownTimeout)
}

func setupLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func startServer(port string, router http.Handler, shutdownTimeout time.Duration) {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
