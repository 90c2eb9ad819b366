package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"bdc/internal/cache"
	"bdc/internal/config"
	"bdc/internal/http/handlers"
	applog "bdc/internal/log"
	"bdc/internal/repos"
	"bdc/internal/services"
	"bdc/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.L().Fatal().Err(err).Msg("config")
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.L().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Setup(out, cfg.Env)
	log := applog.L()
	log.Info().Fields(cfg.Summary()).Msg("starting bdc")

	db, err := repos.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.SeedDemo {
		if err := repos.SeedDemo(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	sessions, closeSessions, err := openSessions(ctx, cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("open session store")
	}
	defer closeSessions()

	deps := handlers.NewDeps(db, cfg, store, sessions)
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := deps.Auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin")
		}
		log.Info().Str("email", cfg.Admin.Email).Msg("admin account ready")
	}

	opts := handlers.Options{
		Engine:    handlers.NewEngine(cfg.TemplatesDir, !cfg.IsProduction()),
		StaticDir: cfg.StaticDir,
		AccessLog: true,
	}
	if cfg.Storage.Driver == "local" {
		opts.MediaDir = cfg.MediaDir
	}
	app := handlers.NewApp(deps, opts)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return storage.NewS3(ctx, cfg.Storage.S3)
	case "local", "":
		return storage.NewLocal(cfg.MediaDir, cfg.PublicBaseURL)
	default:
		return nil, errors.New("STORAGE_DRIVER must be local or s3")
	}
}

// openSessions prefers Redis when configured; otherwise sessions live in the
// database and expired rows are purged once at startup.
func openSessions(ctx context.Context, cfg config.Config, db *sqlx.DB) (services.SessionStore, func(), error) {
	if cfg.Redis.Addr != "" {
		r, err := cache.NewRedisSessions(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	}
	s := repos.NewSQLSessions(db)
	if n, err := s.PurgeExpired(ctx); err != nil {
		applog.L().Warn().Err(err).Msg("purge expired sessions")
	} else if n > 0 {
		applog.L().Info().Int64("purged", n).Msg("expired sessions removed")
	}
	return s, func() {}, nil
}
