package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/getmockd/xmlad/internal/sessionstore"
	"github.com/getmockd/xmlad/pkg/cli/internal/output"
	"github.com/getmockd/xmlad/pkg/config"
	"github.com/getmockd/xmlad/pkg/logging"
	"github.com/getmockd/xmlad/pkg/metrics"
	"github.com/getmockd/xmlad/pkg/xmla/engine/static"
	"github.com/getmockd/xmlad/pkg/xmla/server"
	"github.com/getmockd/xmlad/pkg/xmla/session"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
	"github.com/spf13/cobra"
)

type serveFlags struct {
	addr string
	path string
}

func newServeCommand(g *globalFlags) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the XMLA endpoint",
		Long: `Run the XMLA endpoint over the catalog in the configuration file.

Settings are taken from the defaults, then the configuration file, then
XMLAD_* environment variables, then flags.`,
		Example: `  xmlad serve
  xmlad serve --config catalog.yaml --addr :9090 --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g, f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().StringVar(&f.path, "path", "", "HTTP path of the XMLA endpoint (default /xmla)")
	return cmd
}

// loadConfig resolves the effective configuration. Warnings go to stderr.
func loadConfig(g *globalFlags, f *serveFlags, stderr io.Writer) (*config.Config, error) {
	path := g.configPath
	if path == "" {
		var err error
		if path, err = config.Discover(); err != nil {
			return nil, err
		}
	}

	cfg := config.Default()
	if path == "" {
		output.Warn(stderr, "no configuration file found (set --config or %s); serving an empty catalog", config.EnvConfig)
	} else {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.path != "" {
		cfg.Server.Path = f.path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. The returned func releases the log
// file, if one is configured.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	lc := logging.Config{
		Level:  logging.ParseLevel(cfg.Level),
		Format: logging.ParseFormat(cfg.Format),
		Output: stderr,
	}
	if cfg.File == "" {
		return logging.New(lc), func() error { return nil }, nil
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc.Tee = file
	return logging.New(lc), file.Close, nil
}

// app is a wired server ready to listen.
type app struct {
	http     *http.Server
	sessions *sessionstore.Store
	cfg      *config.Config
	log      *slog.Logger
}

func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	store := sessionstore.New(cfg.Session.TTL.Std(),
		sessionstore.WithLogger(log),
		sessionstore.WithMaxSessions(cfg.Session.MaxSessions),
	)
	eng, err := static.New(cfg.Catalog, static.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	reg := metrics.NewRegistry()
	reg.NewGaugeFunc("xmlad_sessions_active", "Open XMLA sessions", func() float64 {
		return float64(store.Len())
	})

	handler := server.NewHandler(eng, session.NewManager(store, log),
		server.WithLogger(log),
		server.WithMetrics(metrics.NewXMLA(reg)),
		server.WithNameEncoder(xmlutil.NewNameEncoder()),
		server.WithMaxBodySize(cfg.Server.MaxBodySize),
		server.WithFaultActor(cfg.Server.FaultActor),
	)

	mux := http.NewServeMux()
	mux.Handle(cfg.Server.Path, handler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok sessions=%d\n", store.Len())
	})
	if cfg.Server.MetricsPath != "" {
		mux.Handle("GET "+cfg.Server.MetricsPath, reg.Handler())
	}

	return &app{
		http: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      mux,
			ReadTimeout:  cfg.Server.ReadTimeout.Std(),
			WriteTimeout: cfg.Server.WriteTimeout.Std(),
		},
		sessions: store,
		cfg:      cfg,
		log:      log,
	}, nil
}

// serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.sessions.Run(ctx, a.cfg.Session.SweepInterval.Std())

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.http.Serve(ln)
	}()
	a.log.Info("xmla endpoint listening", "addr", ln.Addr().String(), "path", a.cfg.Server.Path)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()
	if err := a.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.log.Info("server stopped")
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	log, closeLog, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}
	return a.serve(ctx, ln)
}
