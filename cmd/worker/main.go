package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/clients/cache"
	"max.ks1230/expense-service/internal/clients/kafka"
	"max.ks1230/expense-service/internal/config"
	"max.ks1230/expense-service/internal/logger"
	"max.ks1230/expense-service/internal/model/expenses"
	"max.ks1230/expense-service/internal/model/storage"
)

func main() {
	logger.Info("worker init - start")

	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	db, err := storage.NewFromConfig(conf.Storage())
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	summaryCache, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached", zap.Error(err))
	}

	refresher := expenses.NewRefresher(db, summaryCache)

	consumer, err := kafka.NewConsumer(conf.Kafka(), refresher)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}

	logger.Info("worker init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Fatal("failed to start consuming", zap.Error(err))
	}
}
