package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LearnWithSuryaa/analyzer-app/internal/server"
	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	coregrpc "github.com/LearnWithSuryaa/analyzer-app/pkg/core/grpc"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/version"
)

const pruneInterval = 24 * time.Hour

var (
	serveHTTPPort int
	serveGRPCPort int
	serveNoGRPC   bool
	serveLexicon  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long: `Starts the analysis servers.

HTTP (default :8080):
  POST /api/v1/analyze         analyze one sentence
  POST /api/v1/analyze/batch   analyze several sentences
  GET  /api/v1/analyze/ws      WebSocket analysis
  POST /api/v1/tokenize        categorize words
  GET  /api/v1/history         stored analyses
  GET  /api/v1/lexicon/search  fuzzy lexicon search
  GET  /health, /metrics

gRPC (default :9090): krama.v1.AnalyzerService, grpc.health.v1, reflection

KRAMA_HOST, KRAMA_HTTP_PORT, KRAMA_GRPC_PORT and KRAMA_LEXICON override
the config file. SIGINT or SIGTERM shuts down gracefully.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, "HTTP port (overrides config)")
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC port (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoGRPC, "no-grpc", false, "do not start the gRPC server")
	serveCmd.Flags().StringVarP(&serveLexicon, "lexicon", "l", "", "lexicon file (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return err
	}
	if serveHTTPPort != 0 {
		cfg.Server.HTTPPort = serveHTTPPort
	}
	if serveGRPCPort != 0 {
		cfg.Server.GRPCPort = serveGRPCPort
	}
	if serveLexicon != "" {
		cfg.Lexicon.Path = serveLexicon
	}

	logger := serverLogger(cfg, cfg.General.Name, os.Stderr)
	logger.Info("Starting krama", "version", version.App, "environment", cfg.General.Environment)

	svc, err := newService(cfg, logger, serviceOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Lexicon.Watch && cfg.Lexicon.Path != "" {
		watcher := service.NewLexiconWatcher(svc, cfg.Lexicon.Path, service.DefaultDebounce)
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("Lexicon hot reload disabled", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	if svc.HistoryEnabled() && cfg.History.RetentionDays > 0 {
		retention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
		go pruneLoop(ctx, svc, retention, logger)
	}

	var grpcServer *coregrpc.Server
	if !serveNoGRPC {
		grpcCfg := coregrpc.DefaultServerConfig()
		grpcCfg.Host = cfg.Server.Host
		grpcCfg.Port = cfg.Server.GRPCPort
		grpcServer = coregrpc.NewServer(grpcCfg, logger.With("transport", "grpc"))
		server.NewGRPCService(svc).Register(grpcServer)
		if err := grpcServer.StartAsync(); err != nil {
			return err
		}
		logger.Info("gRPC server listening", "address", cfg.ServerAddress("grpc"))
	}

	httpServer := server.NewHTTPServer(server.Config{
		Host:         cfg.Server.Host,
		HTTPPort:     cfg.Server.HTTPPort,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		CORS: server.CORSConfig{
			Enabled:        cfg.Server.CORS.Enabled,
			AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
			AllowedMethods: cfg.Server.CORS.AllowedMethods,
			MaxAge:         cfg.Server.CORS.MaxAge,
		},
	}, svc, logger.With("transport", "http"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "krama v%s\n", version.App)
	fmt.Fprintf(cmd.OutOrStdout(), "  HTTP: http://%s\n", cfg.ServerAddress("http"))
	if grpcServer != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  gRPC: %s\n", cfg.ServerAddress("grpc"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.Error("HTTP server failed", "error", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	if grpcServer != nil {
		grpcServer.StopWithTimeout(shutdownCtx)
	}
	logger.Info("Stopped")

	return serveErr
}

// pruneLoop deletes history older than retention at startup and then daily
func pruneLoop(ctx context.Context, svc *service.Service, retention time.Duration, logger *logging.Logger) {
	prune := func() {
		n, err := svc.Prune(ctx, retention)
		if err != nil {
			logger.Warn("History prune failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("Pruned history", "deleted", n, "older_than", retention.String())
		}
	}

	prune()
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
