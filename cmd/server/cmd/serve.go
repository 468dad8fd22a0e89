package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Togather-Foundation/topicdir/internal/api"
	"github.com/Togather-Foundation/topicdir/internal/auth"
	"github.com/Togather-Foundation/topicdir/internal/config"
	"github.com/Togather-Foundation/topicdir/internal/domain/topics"
	"github.com/Togather-Foundation/topicdir/internal/metrics"
	"github.com/Togather-Foundation/topicdir/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	*rootOptions
	host string
	port int
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := &serveOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Topic Directory HTTP server",
		Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Read API_KEY from the environment or from SECRETS_DIR/api-key
- Serve the embedded topic directory
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging on the console
  server serve --log-level debug --log-format console

  # Start with a config file
  server serve --config /etc/topicdir/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "server host address (default: 0.0.0.0)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "server port (default: 8000)")
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts.rootOptions)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}

	logger := config.NewLogger(cfg.Logging)
	info := buildInfo()
	logger.Info().Str("version", info.Version).Str("environment", cfg.Environment).Msg("starting topic directory server")

	metrics.Init(info.Version, info.GitCommit, info.BuildDate)

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing, info.Version)
	if err != nil {
		return fmt.Errorf("tracing setup: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	server, err := newHTTPServer(cfg, logger, info)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	}
	return serveUntilDone(ctx, server, ln, logger)
}

// newHTTPServer loads the topic directory, builds the credential checker and
// returns a server ready to listen on cfg.Server.Addr().
func newHTTPServer(cfg config.Config, logger zerolog.Logger, info api.BuildInfo) (*http.Server, error) {
	dir, err := topics.Default()
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	metrics.TopicsLoaded.Set(float64(dir.Len()))
	logger.Info().Int("topics", dir.Len()).Msg("topic directory loaded")

	key, err := auth.NewStaticKey(cfg.Auth.Header, cfg.Auth.APIKey)
	if err != nil {
		return nil, fmt.Errorf("api key: %w", err)
	}

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(cfg, logger, topics.NewService(dir), key, info),
		ReadTimeout:       10 * time.Second, // Total time to read request
		WriteTimeout:      30 * time.Second, // Total time to write response
		ReadHeaderTimeout: 5 * time.Second,  // Time to read headers
		MaxHeaderBytes:    1 << 20,          // 1 MB max header size
	}, nil
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts the server
// down gracefully.
func serveUntilDone(ctx context.Context, server *http.Server, ln net.Listener, logger zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info().Msg("server stopped")
		return nil
	})

	return g.Wait()
}
