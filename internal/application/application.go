package application

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/pouch-estimator/internal/api"
	"github.com/eugenenazirov/pouch-estimator/internal/config"
	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/intake"
	"github.com/eugenenazirov/pouch-estimator/internal/metrics"
	"github.com/eugenenazirov/pouch-estimator/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage       *storage.MemoryStorage
	logger        *zap.Logger
	server        *http.Server
	sweepInterval time.Duration

	stopSweep context.CancelFunc
	sweepDone chan struct{}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if cfg.EnableMetrics {
		metrics.RegisterDefault()
	}

	store := storage.NewMemoryStorage(
		storage.WithTTL(cfg.SessionTTL),
		storage.WithMaxSessions(cfg.MaxSessions),
		storage.WithResizeObserver(func(n int) {
			metrics.ActiveSessions.Set(float64(n))
		}),
	)

	handler := api.NewHandler(estimator.New(), store,
		api.WithLocale(cfg.Locale),
		api.WithSubmitter(intake.NewLogSubmitter(logger)),
		api.WithHandlerLogger(logger),
	)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithMetrics(cfg.EnableMetrics),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithTrustedProxy(cfg.TrustForwardedFor),
	)

	var metricsHandler http.Handler
	if cfg.EnableMetrics {
		metricsHandler = metrics.Handler()
	}

	return &App{
		storage:       store,
		logger:        logger,
		server:        NewServer(cfg, BuildRootHandler(apiRouter, metricsHandler)),
		sweepInterval: sweepInterval(cfg.SessionTTL),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and, when metricsHandler is
// non-nil, the prometheus exposition under /metrics.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server and the session sweeper in goroutines. The
// sweeper stops when ctx is cancelled or the app is shut down.
func (a *App) Start(ctx context.Context) error {
	sweepCtx, cancel := context.WithCancel(ctx)
	a.stopSweep = cancel
	a.sweepDone = make(chan struct{})
	go func() {
		defer close(a.sweepDone)
		a.sweep(sweepCtx)
	}()
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance.
func (a *App) Server() *http.Server {
	return a.server
}

// Shutdown stops the sweeper, then drains in-flight requests. Wizard sessions
// still in memory are discarded.
func (a *App) Shutdown(ctx context.Context) error {
	a.stopSweeper()
	if n := a.storage.Len(); n > 0 {
		a.logger.Info("discarding wizard sessions", zap.Int("sessions", n))
	}
	return a.server.Shutdown(ctx)
}

// Close stops the sweeper and closes the server without draining.
func (a *App) Close() error {
	a.stopSweeper()
	return a.server.Close()
}

func (a *App) stopSweeper() {
	if a.stopSweep == nil {
		return
	}
	a.stopSweep()
	<-a.sweepDone
}

func (a *App) sweep(ctx context.Context) {
	ticker := time.NewTicker(a.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.storage.Sweep(); n > 0 {
				a.logger.Debug("expired wizard sessions removed", zap.Int("count", n))
			}
		}
	}
}

// sweepInterval runs the sweeper a few times per TTL, but never more than
// once a second.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
