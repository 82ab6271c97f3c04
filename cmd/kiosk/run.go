package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"mercator-hq/kiosk/pkg/cli"
	"mercator-hq/kiosk/pkg/config"
	"mercator-hq/kiosk/pkg/content"
	kiosktls "mercator-hq/kiosk/pkg/security/tls"
	"mercator-hq/kiosk/pkg/server"
	"mercator-hq/kiosk/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress  string
	metricsAddress string
	indexPath      string
	tls            bool
	logLevel       string
	dryRun         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the kiosk server",
	Long: `Start the kiosk server with the specified configuration.

The index document is read once at startup; the content server answers every
request with it while the metrics server exposes Prometheus metrics at
/metrics on its own address. Both drain gracefully on SIGINT/SIGTERM.

Examples:
  # Serve ./index.html with defaults
  kiosk run

  # Start with a custom config file
  kiosk run --config /etc/kiosk/config.yaml

  # Override the document and addresses
  kiosk run --index /srv/www/index.html --listen 0.0.0.0:8080

  # Enable TLS with a fresh self-signed certificate
  kiosk run --tls

  # Validate config without starting the server
  kiosk run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.metricsAddress, "metrics-listen", "", "override metrics listen address")
	runCmd.Flags().StringVarP(&runFlags.indexPath, "index", "i", "", "override index document path")
	runCmd.Flags().BoolVar(&runFlags.tls, "tls", false, "terminate TLS with a self-signed certificate")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.metricsAddress != "" {
		cfg.Server.MetricsAddress = runFlags.metricsAddress
	}
	if runFlags.indexPath != "" {
		cfg.Server.IndexPath = runFlags.indexPath
	}
	if runFlags.tls {
		cfg.Server.TLS.Enabled = true
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	setupLogging(&cfg.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Read the document once; everything downstream works from memory.
	document, err := os.ReadFile(cfg.Server.IndexPath)
	if err != nil {
		return cli.NewStartupError("reading index file", err)
	}
	store := content.Build(document)

	slog.Info("index document loaded",
		"path", cfg.Server.IndexPath,
		"bytes", store.UncompressedLength,
		"gzip_bytes", store.CompressedLength,
		"etag", store.ETag,
	)

	tlsConfig, err := kiosktls.LoadOrGenerate(&cfg.Server.TLS, nil)
	if err != nil {
		return cli.NewStartupError("preparing TLS certificate", err)
	}

	collector := metrics.NewCollector(&cfg.Metrics, nil)

	contentSrv := server.NewContentServer(&cfg.Server, store, collector, tlsConfig)
	servers := []*server.Server{contentSrv}
	if cfg.Metrics.Enabled {
		servers = append(servers, server.NewMetricsServer(&cfg.Server, collector))
	}

	// A bind or serve failure in either server cancels the other, so the
	// process never keeps running half-started.
	ctx, cancel := context.WithCancel(cli.SetupSignalHandler())
	defer cancel()

	if cfg.Watch.Enabled {
		watcher, err := content.NewWatcher(cfg.Server.IndexPath, nil)
		if err != nil {
			return cli.NewStartupError("watching index file", err)
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				slog.Error("index watcher stopped", "error", err)
			}
		}()
	}

	// Each server races its own accept loop against the shared signal
	// context and drains independently.
	errChan := make(chan error, len(servers))
	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func(srv *server.Server) {
			defer wg.Done()
			if err := srv.Start(ctx); err != nil {
				errChan <- err
				cancel()
			}
		}(srv)
	}
	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}

	slog.Info("server shutdown complete")
	return nil
}

func setupLogging(cfg *config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
