package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingko/bd2redeem-bot/internal/bot"
	"github.com/kingko/bd2redeem-bot/internal/common/clients/coupon"
	"github.com/kingko/bd2redeem-bot/internal/common/config"
	"github.com/kingko/bd2redeem-bot/internal/common/repositories/postgres"
	"github.com/kingko/bd2redeem-bot/internal/redeem"
	"github.com/kingko/bd2redeem-bot/pkg/goosemigrate"
	"github.com/kingko/bd2redeem-bot/pkg/log"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "prod.yaml", "bot config path")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())

	cfg := config.GetConfig(configPath)

	if err := log.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		log.Fatal("log init failed", zap.Error(err))
	}

	log.Info("bot starting...")

	log.Info("init postgres...")
	pool, err := pgxpool.New(ctx, cfg.GetPostgresURL())
	if err != nil {
		log.Fatal("postgres init failed", zap.Error(err))
	}

	if err := goosemigrate.NewMigrator(cfg.GetPostgresURL(), "migrations", cfg.Postgres.Schema).Up(); err != nil {
		log.Fatal("migrations up failed", zap.Error(err))
	}

	bindingsRepository := postgres.NewBindingsRepository(pool)
	redemptionsRepository := postgres.NewRedemptionsRepository(pool)

	log.Info("load stores...")
	bindings, err := redeem.NewBindings(bindingsRepository, cfg.Redeem.AccountIDPattern)
	if err != nil {
		log.Fatal("bindings store init failed", zap.Error(err))
	}

	if err := bindings.Load(ctx); err != nil {
		log.Fatal("bindings load failed", zap.Error(err))
	}

	history := redeem.NewHistory(redemptionsRepository)
	if err := history.Load(ctx); err != nil {
		log.Fatal("history load failed", zap.Error(err))
	}

	log.Info("init coupon client...")
	couponClient := coupon.NewClient(cfg.Redeem.APIURL, cfg.Redeem.AppID)

	redeemer := redeem.NewRedeemer(bindings, history, couponClient)
	dispatcher := redeem.NewDispatcher(cfg.Redeem.Aliases)
	service := redeem.NewService(bindings, history, redeemer, cfg.Redeem.Aliases)

	log.Info("init telebot...")
	b, err := bot.New(ctx, &cfg.Bot, dispatcher, service)
	if err != nil {
		log.Fatal("bot starting failed", zap.Error(err))
	}

	go func() {
		b.Start()
	}()

	log.Info("bot starting complete")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Info("bot shutting down...")

	b.Stop()
	pool.Close()

	if err := log.Sync(); err != nil {
		log.Error("log sync failed", zap.Error(err))
	}

	cancel()

	log.Info("bot shut down complete")
}
