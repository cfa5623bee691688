package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hardik88t/puredry/internal/config"
	"github.com/hardik88t/puredry/internal/logger"
	"github.com/hardik88t/puredry/internal/quote"
	"github.com/hardik88t/puredry/internal/repository"
	"github.com/hardik88t/puredry/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const serviceName = "puredry"

// closer releases a backend opened by the helpers below.
type closer func(context.Context) error

func noopCloser(context.Context) error { return nil }

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(os.Stderr, cfg.Log.Level, serviceName)
	slog.SetDefault(log)
	return cfg, log, nil
}

// openCatalogDB opens the SQLite database holding the catalog and the
// sqlite storage backend, and applies its migrations.
func openCatalogDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := repository.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := repository.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openStorage returns the device-state store selected by storage.backend.
func openStorage(ctx context.Context, cfg *config.Config, db *sqlx.DB) (storage.Store, closer, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), noopCloser, nil
	case "sqlite":
		return storage.NewSQLiteStore(db), noopCloser, nil
	case "redis":
		rc := cfg.Storage.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisStore(client, rc.Prefix, rc.TTL), func(context.Context) error {
			return client.Close()
		}, nil
	case "mongo":
		mdb, err := storage.ConnectMongoDB(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewMongoStore(mdb), func(ctx context.Context) error {
			return mdb.Client().Disconnect(ctx)
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func postgresCredentials(cfg *config.Config) *quote.Credentials {
	pg := cfg.Quote.Postgres
	return &quote.Credentials{
		Host:     pg.Host,
		Port:     pg.Port,
		User:     pg.User,
		Password: pg.Password,
		DBName:   pg.DBName,
		SSLMode:  pg.SSLMode,
	}
}

// openSubmitter returns the quote backend selected by quote.submitter,
// wrapped in a circuit breaker when one is enabled.
func openSubmitter(cfg *config.Config, store storage.Store, log *slog.Logger) (quote.Submitter, closer, error) {
	var (
		sub     quote.Submitter
		release closer = noopCloser
	)

	switch cfg.Quote.Submitter {
	case "local":
		sub = quote.NewLocalSubmitter(store, cfg.Quote.Delay, log)
	case "postgres":
		pg, err := quote.NewPostgresSubmitter(postgresCredentials(cfg))
		if err != nil {
			return nil, nil, err
		}
		if err := pg.RunMigrations(); err != nil {
			pg.Close()
			return nil, nil, err
		}
		sub = pg
		release = func(context.Context) error { return pg.Close() }
	case "kafka":
		kw := quote.NewKafkaSubmitter(cfg.Quote.Kafka.Topic, cfg.Quote.Kafka.Brokers...)
		sub = kw
		release = func(context.Context) error { return kw.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown quote submitter %q", cfg.Quote.Submitter)
	}

	if b := cfg.Quote.Breaker; b.Enabled {
		sub = quote.NewBreakerSubmitter(cfg.Quote.Submitter, sub, quote.BreakerSettings{
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			FailureLimit: b.FailureLimit,
		}, log)
	}
	return sub, release, nil
}

func closeAll(ctx context.Context, log *slog.Logger, closers ...closer) {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.Warn("failed to close backends", "error", err)
	}
}
