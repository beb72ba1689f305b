package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"domainhc/internal/checker"
	"domainhc/internal/heartbeat"
	"domainhc/internal/history"
	"domainhc/internal/marker"
	"domainhc/internal/platform/config"
	"domainhc/internal/platform/logger"
	"domainhc/internal/platform/metrics"
	"domainhc/internal/platform/redis"
	"domainhc/internal/registrar"
	"domainhc/internal/registry"
	"domainhc/internal/tags"
	"domainhc/internal/whois"
)

const pushJob = "domainhc"

// environment holds what every command needs once the global flags are parsed.
type environment struct {
	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
	ctx     context.Context
	cancel  context.CancelFunc
	hb      *heartbeat.Client
}

func (env *environment) setup(c *cli.Context) error {
	cfg, err := config.Load(c.GlobalString("env-file"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if f := c.GlobalString("domain-file"); f != "" {
		cfg.DomainFile = f
	}
	cfg.Debug = cfg.Debug || c.GlobalBool("debug")

	log, closer, err := logger.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	env.closers = append(env.closers, closer)
	slog.SetDefault(log)

	warnings, err := cfg.Validate()
	if err != nil {
		log.Error("configuration error", "error", err)
		return cli.NewExitError(fmt.Sprintf("configuration error: %v", err), 1)
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	env.cfg = cfg
	env.logger = log
	env.ctx, env.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	env.hb = heartbeat.New(cfg.Heartbeat, heartbeat.WithLogger(log))
	return nil
}

func (env *environment) teardown(*cli.Context) error {
	if env.cancel != nil {
		env.cancel()
	}
	for i := len(env.closers) - 1; i >= 0; i-- {
		_ = env.closers[i].Close()
	}
	return nil
}

// timed logs the elapsed time of a command at debug level.
func (env *environment) timed(name string, fn func(*cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		start := time.Now()
		env.logger.Info("starting", "command", name)
		err := fn(c)
		env.logger.Debug("finished", "command", name, "elapsed", time.Since(start).Round(time.Millisecond).String())
		return err
	}
}

func (env *environment) newRegistry() (*registry.Service, error) {
	return registry.New(env.cfg.DomainFile, env.hb,
		registry.WithLogger(env.logger),
		registry.WithPrompter(registry.NewReaderPrompter(os.Stdin, os.Stdout)),
	)
}

func (env *environment) newMarkers() (marker.Store, error) {
	switch env.cfg.Markers.Backend {
	case "redis":
		client, err := redis.New(env.ctx, env.cfg.Redis)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, client)
		return marker.NewRedisStore(client.Client, env.cfg.Markers.Freshness), nil
	default:
		return marker.NewFileStore(env.cfg.Markers.Dir, env.cfg.Markers.Freshness), nil
	}
}

// newHistory returns nil when no database is configured.
func (env *environment) newHistory() (*history.PostgresStore, error) {
	if env.cfg.DatabaseURL == "" {
		return nil, nil
	}
	db, err := history.Open(env.ctx, env.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	env.closers = append(env.closers, db)
	store := history.NewPostgres(db)
	if err := store.EnsureSchema(env.ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (env *environment) newChecker(m *metrics.Metrics) (*checker.Service, error) {
	markers, err := env.newMarkers()
	if err != nil {
		return nil, err
	}
	tagger, err := tags.New(env.hb, tags.WithLogger(env.logger))
	if err != nil {
		return nil, err
	}

	opts := []checker.Option{
		checker.WithLogger(env.logger),
		checker.WithMetrics(m),
		checker.WithRegistrar(registrar.New(
			env.cfg.Registrar.URL,
			env.cfg.Registrar.Key,
			env.cfg.Registrar.Secret,
			env.cfg.Registrar.Timeout,
			registrar.WithLogger(env.logger),
		)),
	}

	store, err := env.newHistory()
	if err != nil {
		env.logger.Warn("history disabled", "error", err)
	} else if store != nil {
		opts = append(opts, checker.WithHistory(store))
	}

	return checker.New(
		env.hb,
		checker.NewHTTPProbe(env.cfg.StatusTimeout),
		whois.New(env.cfg.Whois.Binary, env.cfg.Whois.Timeout,
			whois.WithMinInterval(env.cfg.Whois.MinInterval),
			whois.WithLogger(env.logger),
		),
		tagger,
		markers,
		opts...,
	)
}

func exitError(err error) error {
	if err == nil {
		return nil
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return err
	}
	return cli.NewExitError(err.Error(), 1)
}
