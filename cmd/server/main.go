package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/pouch-estimator/internal/application"
	"github.com/eugenenazirov/pouch-estimator/internal/config"
	"github.com/eugenenazirov/pouch-estimator/internal/format"
	"github.com/eugenenazirov/pouch-estimator/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("pouch-estimator", "Packaging Savings Estimator - compares current packaging against flexible pouches")

	serveCmd := kingpinApp.Command("serve", "Run the HTTP service hosting estimator wizards").Default()
	configFile := serveCmd.Flag("config", "Path to YAML configuration file").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	locale := serveCmd.Flag("locale", "Default BCP 47 locale for formatted figures").String()
	logLevel := serveCmd.Flag("log-level", "Log level (debug, info, warn, error)").String()
	sessionTTL := serveCmd.Flag("session-ttl", "Idle time after which a wizard session expires").Default("0s").Duration()
	maxSessions := serveCmd.Flag("max-sessions", "Maximum concurrent wizard sessions (0 for unlimited)").Default("-1").Int()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed per client").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter").Default("-1").Int()
	var trustForwardedSet bool
	trustForwarded := serveCmd.Flag("trust-forwarded-for", "Key rate limits by X-Forwarded-For (only behind a trusted proxy)").
		IsSetByUser(&trustForwardedSet).Bool()

	estimateCmd := kingpinApp.Command("estimate", "Print a one-shot estimate as YAML")
	in := registerEstimateFlags(estimateCmd)

	switch kingpin.MustParse(kingpinApp.Parse(os.Args[1:])) {
	case estimateCmd.FullCommand():
		if err := runEstimate(os.Stdout, in); err != nil {
			kingpinApp.Fatalf("estimate failed: %v", err)
		}
		return
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *locale != "" {
		overrides.Locale = locale
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *sessionTTL > 0 {
		overrides.SessionTTL = sessionTTL
	}

	if *maxSessions >= 0 {
		overrides.MaxSessions = maxSessions
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	if trustForwardedSet {
		overrides.TrustForwardedFor = trustForwarded
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("estimator ready",
		zap.String("locale", cfg.Locale),
		zap.String("currency", format.New(cfg.Locale).CurrencyCode()),
		zap.Duration("session_ttl", cfg.SessionTTL),
	)

	shutdown(app, cfg.ShutdownGracePeriod, logger)
}

// lifecycle is the part of the application that shutdown drives.
type lifecycle interface {
	Shutdown(ctx context.Context) error
	Close() error
}

// shutdown blocks until SIGINT or SIGTERM, then drains the app within timeout
// and force-closes it if draining does not finish.
func shutdown(app lifecycle, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
