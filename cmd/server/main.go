package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/planbuddy/internal/auth"
	"github.com/mmynk/planbuddy/internal/config"
	"github.com/mmynk/planbuddy/internal/generator"
	"github.com/mmynk/planbuddy/internal/metrics"
	"github.com/mmynk/planbuddy/internal/middleware"
	"github.com/mmynk/planbuddy/internal/service"
	"github.com/mmynk/planbuddy/internal/session"
	"github.com/mmynk/planbuddy/internal/storage/sqlite"
	"github.com/mmynk/planbuddy/internal/weather"
	"github.com/mmynk/planbuddy/pkg/api/apiconnect"
	"github.com/mmynk/planbuddy/pkg/logging"
)

// main is the composition root: it wires storage, the generator backend and
// the session manager behind the Connect services and starts the server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	logging.Setup()
	cfg := config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			slog.Error("Sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.SeedDemo {
		if err := store.SeedDemo(context.Background()); err != nil {
			slog.Error("Failed to seed demo groups", "error", err)
			os.Exit(1)
		}
		slog.Info("Demo groups seeded")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	backend := generator.New(generator.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.AITimeout,
		Metrics: m,
	})

	now := uint64(time.Now().UnixNano())
	sessions := session.NewManager(session.Config{
		Backend:       backend,
		Forecaster:    weather.NewRandomForecaster(now, now>>17),
		Store:         store,
		Metrics:       m,
		ReminderDelay: cfg.ReminderDelay,
	})
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	authSvc := service.NewAuthService(
		auth.NewNameAuthenticator(store, cfg.PhoneRegion),
		jwtManager,
		sessions,
		store,
		service.LoginOptions{
			DefaultLocation: cfg.DefaultLocation,
			LocateTimeout:   5 * time.Second,
			DefaultGroupID:  cfg.DefaultGroupID,
		},
		slog.Default(),
	)

	public := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager, sessions),
		middleware.LoggingInterceptor(m),
	)
	private := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, sessions),
		middleware.LoggingInterceptor(m),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	// Register Connect services
	mount := func(path string, handler http.Handler) {
		r.Handle(path+"*", handler)
		slog.Debug("Service mounted", "path", path)
	}
	mount(apiconnect.NewAuthServiceHandler(authSvc, public))
	mount(apiconnect.NewGroupServiceHandler(service.NewGroupService(store), private))
	mount(apiconnect.NewPlannerServiceHandler(service.NewPlannerService(store), private))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go expireSessions(ctx, sessions, cfg.SessionTTL)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "generator", backend.Name(), "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// expireSessions closes sessions idle for longer than ttl until ctx ends.
func expireSessions(ctx context.Context, sessions *session.Manager, ttl time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.CloseIdle(ttl); n > 0 {
				slog.Info("Idle sessions closed", "count", n, "open", sessions.Len())
			}
		}
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access from origins.
// A "*" entry allows every origin.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAll := slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
				"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms",
			}, ", "))
			w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
