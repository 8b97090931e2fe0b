// Command dispatch runs the message queueing and tracking gateway.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/dispatch/modules/delivery"
	"github.com/dmitrymomot/dispatch/pkg/clientip"
	"github.com/dmitrymomot/dispatch/pkg/config"
	"github.com/dmitrymomot/dispatch/pkg/directory"
	"github.com/dmitrymomot/dispatch/pkg/httpserver"
	"github.com/dmitrymomot/dispatch/pkg/keyspace"
	"github.com/dmitrymomot/dispatch/pkg/logger"
	"github.com/dmitrymomot/dispatch/pkg/metrics"
	"github.com/dmitrymomot/dispatch/pkg/pg"
	"github.com/dmitrymomot/dispatch/pkg/quota"
	redisx "github.com/dmitrymomot/dispatch/pkg/redis"
	"github.com/dmitrymomot/dispatch/pkg/requestid"
	"github.com/dmitrymomot/dispatch/pkg/schedule"
	"github.com/dmitrymomot/dispatch/pkg/tracker"
	"github.com/dmitrymomot/dispatch/svc/queue"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"dispatch"`
}

func main() {
	var (
		app      appConfig
		logCfg   logger.Config
		redisCfg redisx.Config
		pgCfg    pg.Config
		httpCfg  httpserver.Config
		quotaCfg quota.Config
		schedCfg schedule.Config
	)
	config.MustLoad(&app)
	config.MustLoad(&logCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&quotaCfg)
	config.MustLoad(&schedCfg)

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithConfig(logCfg),
		logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, redisCfg, pgCfg, httpCfg, quotaCfg, schedCfg); err != nil {
		log.Error("dispatch stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	redisCfg redisx.Config,
	pgCfg pg.Config,
	httpCfg httpserver.Config,
	quotaCfg quota.Config,
	schedCfg schedule.Config,
) error {
	client, err := redisx.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if redisCfg.KeyspaceEvents != "" {
		if err := redisx.EnableKeyspaceEvents(ctx, client, redisCfg.KeyspaceEvents); err != nil {
			// Managed servers often refuse CONFIG SET; they must be
			// configured out of band.
			log.Warn("keyspace events not enabled", logger.Error(err))
		}
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if pgCfg.AutoMigrate {
		if err := pg.Migrate(ctx, pool, directory.Migrations, pgCfg, log); err != nil {
			return err
		}
	}

	table, err := quota.TableFromConfig(quotaCfg)
	if err != nil {
		return err
	}
	resolver, err := schedule.NewResolver(schedCfg)
	if err != nil {
		return err
	}

	store := redisx.NewStorage(client)
	limiter := quota.NewLimiter(store, table, quota.WithWindow(quotaCfg.Window))
	notifier := keyspace.NewRedisNotifier(client, client.Options().DB)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := queue.NewService(client, directory.NewPostgres(pool), limiter, resolver,
		tracker.New(notifier, store),
		queue.WithLogger(log),
		queue.WithMetrics(m),
	)

	router := delivery.Router(delivery.RouterOptions{
		Service: svc,
		Logger:  log,
		Metrics: m,
		Checks: map[string]httpserver.Check{
			"redis":    redisx.Healthcheck(client),
			"postgres": pg.Healthcheck(pool),
		},
	})

	log.Info("dispatch starting",
		slog.String("addr", httpCfg.Addr),
		slog.Any("roles", table.Roles()),
	)
	return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}
