package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"

	"github.com/quorumbank/teller"
	"github.com/quorumbank/teller/internal/logging"
	fileStore "github.com/quorumbank/teller/pkg/adapters/file"
	"github.com/quorumbank/teller/pkg/adapters/memory"
	redisAdapter "github.com/quorumbank/teller/pkg/adapters/redis"
	"github.com/quorumbank/teller/pkg/catalog"
	"github.com/quorumbank/teller/pkg/observability"
	"github.com/quorumbank/teller/pkg/ports"
)

// App bundles everything a command needs to run an agent.
type App struct {
	Agent    *teller.Agent
	Catalog  *catalog.Catalog
	Logger   *slog.Logger
	Registry *prometheus.Registry

	closers []func() error
}

// Close releases backend resources (Redis connections).
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewLogger builds the logger described by the config.
func NewLogger(cfg LogConfig) *slog.Logger {
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
	if cfg.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// BuildApp assembles an agent from the config: catalog, store, locker,
// metrics and the sandbox bank tools.
func BuildApp(cfg Config) (*App, error) {
	logger := NewLogger(cfg.Log)

	cat := catalog.Default()
	if cfg.Catalog != "" {
		loaded, err := catalog.Load(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	app := &App{Catalog: cat, Logger: logger, Registry: prometheus.NewRegistry()}

	var observer ports.Observer = ports.NopObserver{}
	if cfg.Metrics {
		observer = observability.NewPrometheusObserver(app.Registry)
	}

	opts := []teller.Option{
		teller.WithCatalog(cat),
		teller.WithLogger(logger),
		teller.WithObserver(observer),
	}
	if cfg.Blocking {
		opts = append(opts, teller.WithBlocking())
	}

	switch cfg.Store.Backend {
	case "file":
		opts = append(opts, teller.WithStore(fileStore.NewStore(cfg.Store.Path)))
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		storeOpts := []redisAdapter.Option{}
		if cfg.Store.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redisAdapter.WithPrefix(cfg.Store.Redis.Prefix))
		}
		if cfg.Store.Redis.TTL > 0 {
			storeOpts = append(storeOpts, redisAdapter.WithTTL(time.Duration(cfg.Store.Redis.TTL)))
		}
		opts = append(opts,
			teller.WithStore(redisAdapter.NewStore(client, storeOpts...)),
			teller.WithLocker(redisAdapter.NewLocker(client, cfg.Store.Redis.Prefix)),
		)
		app.closers = append(app.closers, client.Close)
	default:
		opts = append(opts, teller.WithStore(memory.NewStore()))
	}

	app.Agent = teller.New(opts...)
	RegisterSandboxTools(app.Agent)
	return app, nil
}
