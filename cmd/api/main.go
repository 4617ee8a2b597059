package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gvn/lending-platform/internal/api"
	"github.com/gvn/lending-platform/internal/infrastructure/config"
	"github.com/gvn/lending-platform/internal/infrastructure/db/mysql"
	redisdb "github.com/gvn/lending-platform/internal/infrastructure/db/redis"
	"github.com/gvn/lending-platform/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not initialised yet; a plain panic is all we have.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "lending-platform",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mysql.Connect(ctx, mysql.Config{DSN: cfg.MySQL.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connection failed")
	}
	defer db.Close()

	if err := mysql.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	if err := mysql.Seed(ctx, db, mysql.AdminSeed{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("data seeding failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	e := api.NewRouter(db, rdb, api.Options{
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		CacheTTL:  cfg.CacheTTL,
	}, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("lending platform api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
