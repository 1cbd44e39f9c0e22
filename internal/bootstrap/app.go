package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogql/internal/cache"
	"blogql/internal/config"
	"blogql/internal/events"
	"blogql/internal/model"
	mysqlClient "blogql/internal/platform/mysql"
	rabbitmqClient "blogql/internal/platform/rabbitmq"
	redisClient "blogql/internal/platform/redis"
	"blogql/internal/worker"
)

type App struct {
	Config    *config.Config
	MySQL     *gorm.DB
	Redis     *redis.Client
	MQConn    *amqp.Connection
	FeedCache *cache.FeedCache
	Publisher events.Publisher
	Worker    *worker.FeedInvalidator

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	feedCache := cache.NewFeedCache(redisCli, time.Duration(cfg.Redis.FeedTTLSeconds)*time.Second)
	publisher := events.NewAMQPPublisher(mqConn, cfg.RabbitMQ.PostEventsQueue)

	invalidator := worker.NewFeedInvalidator(mqConn, feedCache, cfg.RabbitMQ.PostEventsQueue)
	if err := invalidator.Start(ctx); err != nil {
		return nil, fmt.Errorf("start feed invalidator failed: %w", err)
	}

	return &App{
		Config:    cfg,
		MySQL:     mysqlDB,
		Redis:     redisCli,
		MQConn:    mqConn,
		FeedCache: feedCache,
		Publisher: publisher,
		Worker:    invalidator,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Worker != nil {
		a.Worker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
