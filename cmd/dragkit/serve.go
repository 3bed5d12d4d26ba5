package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/dragkit/internal/config"
	"github.com/vango-dev/dragkit/pkg/drag"
	"github.com/vango-dev/dragkit/pkg/dragserver"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	dir         string
	envFile     string
	addr        string
	metricsAddr string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the websocket drag server",
		Long: `Run the websocket drag server with the demo board.

Configuration is read from dragkit.json in --dir when present, then
overridden by DRAGKIT_* environment variables (a .env file is loaded
first) and finally by flags.

Endpoints:
  GET /ws        websocket drag sessions
  GET /healthz   health check
  GET /metrics   Prometheus metrics (on the metrics address)

Examples:
  dragkit serve
  dragkit serve --addr=:8080 --metrics-addr=off`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Directory containing dragkit.json")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Environment file to load")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", `Metrics listen address, "off" to disable`)

	return cmd
}

func loadConfig(opts serveOptions) (*config.Config, error) {
	if opts.envFile != "" {
		// A missing env file is not an error.
		_ = godotenv.Load(opts.envFile)
	}

	cfg, err := config.LoadOptional(opts.dir)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	switch opts.metricsAddr {
	case "":
	case "off":
		cfg.MetricsAddr = ""
	default:
		cfg.MetricsAddr = opts.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dragOpts := append(cfg.DragOptions(), drag.WithMetrics(drag.NewMetrics(drag.WithRegisterer(reg))))
	srv := dragserver.New(dragserver.Config{
		ReadTimeout:     cfg.ReadTimeout(),
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		Logger:          logger,
		Metrics:         dragserver.NewMetrics(dragserver.WithRegisterer(reg)),
		DragOptions:     dragOpts,
	}, buildDemo)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		g.Go(func() error {
			logger.Info("listening", "addr", hs.Addr)
			if err := hs.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, hs := range servers {
			if err := hs.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", "addr", hs.Addr, "error", err)
			}
		}
		srv.Close()
		return nil
	})

	success("dragkit serving on http://%s", cfg.Addr)
	if cfg.MetricsAddr != "" {
		info("metrics on http://%s/metrics", cfg.MetricsAddr)
	}
	return g.Wait()
}
