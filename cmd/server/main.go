package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/kaskos/internal/auth"
	"github.com/mmynk/kaskos/internal/config"
	"github.com/mmynk/kaskos/internal/metrics"
	"github.com/mmynk/kaskos/internal/service"
	"github.com/mmynk/kaskos/internal/storage"
	"github.com/mmynk/kaskos/internal/storage/mongo"
	"github.com/mmynk/kaskos/internal/storage/sqlite"
	"github.com/mmynk/kaskos/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	authenticator := auth.NewPasswordAuthenticator(store)
	if err := seedRoster(ctx, cfg, store, authenticator); err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	collectors := metrics.New(prometheus.DefaultRegisterer)

	authSvc := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	ledgerSvc := service.NewLedgerService(store, service.LedgerConfig{
		Schedule:     cfg.Schedule(),
		Mode:         cfg.Mode(),
		Location:     cfg.Location(),
		StoreTimeout: cfg.StoreTimeout,
	}, slog.Default(), service.WithReportObserver(collectors))

	slog.Info("Ledger configured",
		"rate", cfg.DuesRate,
		"start", cfg.DuesStart,
		"pre_start_policy", cfg.PreStartPolicy,
		"report_mode", cfg.ReportMode,
		"timezone", cfg.Timezone,
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	for _, route := range service.Routes(authSvc, ledgerSvc, jwtManager, collectors.Interceptor()) {
		r.Mount(route.Path, route.Handler)
	}
	r.Get("/healthz", healthHandler(store, cfg.StoreTimeout))
	r.Handle("/metrics", promhttp.Handler())

	// h2c serves HTTP/2 without TLS, which Connect clients use by default.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()
		store, err := mongo.New(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", cfg.DataBackend, "database", cfg.MongoDatabase)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", cfg.DataBackend, "database", cfg.DBPath)
		return store, nil
	}
}

func seedRoster(ctx context.Context, cfg *config.Config, store storage.Store, authenticator auth.Authenticator) error {
	var roster *auth.Roster
	if cfg.RosterFile != "" {
		r, err := auth.LoadRoster(cfg.RosterFile)
		if err != nil {
			return err
		}
		roster = r
	}

	created, err := auth.SeedRoster(ctx, store, authenticator, roster)
	if err != nil {
		return fmt.Errorf("failed to seed roster: %w", err)
	}
	if created > 0 {
		slog.Info("Roster seeded", "members", created, "file", cfg.RosterFile)
	}
	return nil
}

func healthHandler(store storage.Store, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
