package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	_ "github.com/SiriusScan/mcp-redis/internal/commands/keys"
	_ "github.com/SiriusScan/mcp-redis/internal/commands/serverinfo"
	"github.com/SiriusScan/mcp-redis/internal/config"
	"github.com/SiriusScan/mcp-redis/internal/connection"
	"github.com/SiriusScan/mcp-redis/internal/health"
	"github.com/SiriusScan/mcp-redis/internal/logging"
	"github.com/SiriusScan/mcp-redis/internal/metrics"
	"github.com/SiriusScan/mcp-redis/internal/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	envFile     string
	urls        []string
	urlEnvVars  []string
	allowWrite  bool
	scanCount   int
	logLevel    string
	logFormat   string
	metricsAddr string
	healthAddr  string
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&flags{})
}

func newRootCommandWith(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mcp-redis",
		Short:        "MCP server for read-only Redis inspection over stdio",
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, os.Stdin, os.Stdout)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.envFile, "env-file", "", "Load environment variables from this file first")
	fs.StringArrayVar(&f.urls, "url", nil, "Redis connection URL (repeatable), e.g. redis://127.0.0.1:6379")
	fs.StringArrayVar(&f.urlEnvVars, "url-env", nil, "Read a Redis URL from this environment variable (repeatable)")
	fs.BoolVar(&f.allowWrite, "allow-write", false, "Enable write mode")
	fs.IntVar(&f.scanCount, "scan-count", 100, "Maximum keys or members returned per call")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", logging.FormatConsole, "Log format: console or json")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&f.healthAddr, "health-addr", "", "Serve gRPC health checks on this address")
	return cmd
}

// loadConfig reads the environment and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.LoadFromEnv(f.envFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("url") {
		cfg.URLs = f.urls
	}
	cfg.URLEnvVars = f.urlEnvVars
	if changed("allow-write") {
		cfg.AllowWrite = f.allowWrite
	}
	if changed("scan-count") {
		cfg.ScanCount = f.scanCount
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = f.metricsAddr
	}
	if changed("health-addr") {
		cfg.HealthAddr = f.healthAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run serves MCP over in/out until in is exhausted or a signal arrives.
// Background work is stopped before connections are closed.
func run(parent context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Debug("Configuration loaded", zap.Stringer("config", cfg))

	urls, err := cfg.ResolveURLs()
	if err != nil {
		return err
	}
	if len(cfg.URLs) == 0 && len(cfg.URLEnvVars) == 0 {
		logger.Info("No URL provided, defaulting", zap.String("url", config.DefaultURL))
	}
	for _, name := range cfg.URLEnvVars {
		logger.Info("Read Redis URL from environment variable", zap.String("env", name))
	}

	conns, err := connection.Open(ctx, urls, connection.StoreDialer(cfg.StoreConfig()), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := conns.Close(); err != nil {
			logger.Warn("Failed to close connections", zap.Error(err))
		}
	}()

	collector := metrics.Noop()
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		pc, err := metrics.NewPrometheusCollector(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		collector = pc
		metrics.StartServer(ctx, cfg.MetricsAddr, reg, logger)
	}

	if cfg.HealthAddr != "" {
		checker := health.NewChecker(conns, collector, logger)
		if _, err := checker.Start(cfg.HealthAddr); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		runDone := make(chan struct{})
		go func() {
			defer close(runDone)
			checker.Run(ctx)
		}()
		defer func() {
			stop()
			<-runDone
			checker.Stop()
		}()
	}

	env := commands.Env{
		Logger:      logger,
		Connections: conns,
		ScanCount:   uint32(cfg.ScanCount),
		AllowWrite:  cfg.AllowWrite,
	}
	srv := server.New(env, collector, Version)

	logger.Info("Starting mcp-redis server",
		zap.Int("connections", conns.Len()),
		zap.Bool("allow_write", cfg.AllowWrite),
		zap.Int("scan_count", cfg.ScanCount),
		zap.Int("tools", len(srv.Tools())))

	err = srv.ServeStdio(ctx, in, out)
	served := ctx.Err() == nil
	stop()
	if err != nil && served {
		return fmt.Errorf("stdio server failed: %w", err)
	}
	logger.Info("Server shutdown complete")
	return nil
}
