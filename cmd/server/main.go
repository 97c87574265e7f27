package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/config"
	"github.com/mmynk/friendsplit/internal/metrics"
	"github.com/mmynk/friendsplit/internal/middleware"
	"github.com/mmynk/friendsplit/internal/service"
	"github.com/mmynk/friendsplit/internal/storage/memory"
	"github.com/mmynk/friendsplit/internal/web"
	"github.com/mmynk/friendsplit/pkg/api"
	"github.com/mmynk/friendsplit/pkg/logging"
)

const pruneInterval = 5 * time.Minute

func main() {
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.Setup(cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Sessions live in memory only
	store := memory.New()
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	splitter := billsplit.New(cfg.SplitterOptions()...)
	sessions := service.NewSessions(store, splitter, m, cfg.SessionTTL)
	go sessions.RunPruner(ctx, pruneInterval)

	slog.Info("Session store initialized",
		"currency", cfg.Currency,
		"seed_friends", cfg.SeedFriends,
		"session_ttl", cfg.SessionTTL,
	)

	mux := http.NewServeMux()

	// Register Connect service
	path, handler := api.NewSplitterServiceHandler(
		service.NewSplitterService(sessions),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.RequireSession(),
			middleware.LoggingInterceptor(),
		),
	)
	mux.Handle(path, handler)

	// HTML renderer
	webHandler, err := web.NewHandler(sessions)
	if err != nil {
		return err
	}
	webHandler.Register(mux)

	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if cfg.StaticPath != "" {
		slog.Info("Serving static files", "path", cfg.StaticPath)
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))
	}

	// Add logging and CORS middleware, wrapped with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(middleware.Logging(middleware.CORS(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
