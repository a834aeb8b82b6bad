package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/clients/cache"
	"max.ks1230/expense-service/internal/clients/kafka"
	"max.ks1230/expense-service/internal/config"
	"max.ks1230/expense-service/internal/logger"
	"max.ks1230/expense-service/internal/model/auth"
	"max.ks1230/expense-service/internal/model/expenses"
	"max.ks1230/expense-service/internal/model/storage"
	"max.ks1230/expense-service/internal/server"
)

const serviceName = "expense-service"

func main() {
	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	closer := initTracing(serviceName)
	defer func() {
		_ = closer.Close()
	}()

	db, err := storage.NewFromConfig(conf.Storage())
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	summaryCache, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached", zap.Error(err))
	}

	producer, err := kafka.NewProducer(conf.Kafka())
	if err != nil {
		logger.Fatal("failed to init kafka producer", zap.Error(err))
	}
	defer producer.Close()

	authService := auth.NewService(db, conf.Auth())
	expenseService := expenses.NewService(db, summaryCache, producer)

	srv := server.New(conf.Server(), authService, expenseService)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func initTracing(service string) io.Closer {
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}
	closer, err := cfg.InitGlobalTracer(service)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	return closer
}
