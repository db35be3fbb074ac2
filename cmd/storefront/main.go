// @title        Storefront API
// @version      1.0
// @description  Product catalog, session cart and admin panel of the lumber storefront.
// @BasePath     /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/woodmart/storefront/internal/api"
	"github.com/woodmart/storefront/internal/core/ports"
	"github.com/woodmart/storefront/internal/infrastructure/config"
	"github.com/woodmart/storefront/internal/infrastructure/db/mongo"
	"github.com/woodmart/storefront/internal/infrastructure/db/redis"
	"github.com/woodmart/storefront/internal/infrastructure/db/sqlstore"
	"github.com/woodmart/storefront/internal/infrastructure/http/handlers"
	"github.com/woodmart/storefront/internal/infrastructure/seed"
	"github.com/woodmart/storefront/internal/infrastructure/session"
	"github.com/woodmart/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("storefront stopped")
	}
}

// stores bundles the repositories of the selected backend with the
// resources that must be released on shutdown.
type stores struct {
	products ports.ProductRepository
	users    ports.UserRepository
	checks   []handlers.Check
	closers  []func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		for _, closeFn := range st.closers {
			if err := closeFn(context.Background()); err != nil {
				log.Warn().Err(err).Msg("close failed")
			}
		}
	}()

	if cfg.Seed {
		if err := seed.Run(ctx, st.users, st.products, logger.Component("seed")); err != nil {
			return err
		}
	}

	sessions, err := openSessions(ctx, cfg, st, log)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Products:      st.products,
		Users:         st.users,
		Sessions:      sessions,
		SessionSecret: cfg.SecretKey,
		CookieSecure:  cfg.Session.CookieSecure,
		Checks:        st.checks,
		Log:           logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Str("sessions", cfg.Session.Store).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &stores{
			products: mongo.NewProductRepository(db),
			users:    mongo.NewUserRepository(db),
			checks:   []handlers.Check{handlers.MongoCheck(db)},
			closers:  []func(context.Context) error{mongoCloser(client)},
		}, nil

	default:
		dialect := sqlstore.SQLite
		if cfg.Store.Driver == config.DriverPostgres {
			dialect = sqlstore.Postgres
		}
		db, err := sqlstore.Open(ctx, sqlstore.Config{Dialect: dialect, DSN: cfg.Store.DatabaseURL})
		if err != nil {
			return nil, err
		}
		if err := sqlstore.Migrate(db, dialect); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("dialect", string(dialect)).Msg("database ready")
		return &stores{
			products: sqlstore.NewProductRepository(db, dialect),
			users:    sqlstore.NewUserRepository(db, dialect),
			checks:   []handlers.Check{handlers.SQLCheck(string(dialect), db)},
			closers:  []func(context.Context) error{sqlCloser(db)},
		}, nil
	}
}

func openSessions(ctx context.Context, cfg *config.Config, st *stores, log zerolog.Logger) (ports.SessionStore, error) {
	if cfg.Session.Store == config.SessionMemory {
		log.Warn().Msg("sessions kept in process memory; they are lost on restart")
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	st.checks = append(st.checks, handlers.RedisCheck(rdb))
	st.closers = append(st.closers, redisCloser(rdb))
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return redis.NewSessionStore(rdb, cfg.Session.TTL), nil
}

func sqlCloser(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func mongoCloser(client *gomongo.Client) func(context.Context) error {
	return client.Disconnect
}

func redisCloser(rdb *goredis.Client) func(context.Context) error {
	return func(context.Context) error { return rdb.Close() }
}
