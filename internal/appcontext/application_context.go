package appcontext

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/orderline/internal/config"
	"github.com/RoyceAzure/lab/orderline/internal/infra/producer"
	"github.com/RoyceAzure/lab/orderline/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/orderline/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/orderline/internal/logger"
	"github.com/RoyceAzure/lab/orderline/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf                *config.Config
	Logger            *zerolog.Logger
	DbConn            *gorm.DB
	RedisClient       *redis.Client
	OrderItemProducer *producer.OrderItemProducer
	OrderItemService  service.IOrderItemService
}

// NewApplicationContext 依設定建立所有依賴
// redis 與 kafka 未設定時略過對應的 commit 後處理
func NewApplicationContext(ctx context.Context, cf *config.Config) (*ApplicationContext, error) {
	app := &ApplicationContext{
		Cf:     cf,
		Logger: logger.New(cf.LogLevel, cf.LogPretty, cf.ServiceName),
	}

	if err := app.Init(ctx); err != nil {
		app.Shutdown(ctx)
		return nil, err
	}
	return app, nil
}

func (app *ApplicationContext) Init(ctx context.Context) error {
	if err := app.setUpDbConn(); err != nil {
		return err
	}
	if err := app.setUpRedis(ctx); err != nil {
		return err
	}
	if err := app.setUpProducer(); err != nil {
		return err
	}
	app.setUpOrderItemService()
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	app.Logger.Info().Msg("Start setup database connection")
	opts := db.DefaultConnOptions()
	if app.Cf.DbMaxOpenConns > 0 {
		opts.MaxOpenConns = app.Cf.DbMaxOpenConns
	}
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas, opts)
	if err != nil {
		return fmt.Errorf("setup database connection: %w", err)
	}
	app.DbConn = conn
	app.Logger.Info().Msg("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpRedis(ctx context.Context) error {
	if !app.Cf.RedisEnabled() {
		app.Logger.Info().Msg("redis not configured, skip stock cache")
		return nil
	}
	app.Logger.Info().Msg("Start setup redis client")
	client, err := redis_repo.NewRedisClient(ctx, app.Cf.RedisAddr, app.Cf.RedisPassword, app.Cf.RedisDB)
	if err != nil {
		return fmt.Errorf("setup redis client: %w", err)
	}
	app.RedisClient = client
	app.Logger.Info().Msg("Finish setup redis client")
	return nil
}

func (app *ApplicationContext) setUpProducer() error {
	if !app.Cf.KafkaEnabled() {
		app.Logger.Info().Msg("kafka not configured, skip order item events")
		return nil
	}
	app.Logger.Info().Msg("Start setup kafka producer")
	writer, err := producer.NewKafkaWriter(app.Cf.Brokers(), app.Cf.KafkaOrderTopic, app.Logger)
	if err != nil {
		return fmt.Errorf("setup kafka producer: %w", err)
	}
	app.OrderItemProducer = producer.NewOrderItemProducer(writer)
	app.Logger.Info().Msg("Finish setup kafka producer")
	return nil
}

func (app *ApplicationContext) setUpOrderItemService() {
	uow := db.NewUnitOfWork(app.DbConn, db.WithMaxRetries(app.Cf.TxMaxRetries))

	opts := make([]service.OrderItemServiceOption, 0, 2)
	if app.RedisClient != nil {
		opts = append(opts, service.WithStockCache(redis_repo.NewProductStockRedisRepo(app.RedisClient)))
	}
	if app.OrderItemProducer != nil {
		opts = append(opts, service.WithEventPublisher(app.OrderItemProducer))
	}
	app.OrderItemService = service.NewOrderItemService(uow, app.Logger, opts...)
}

// Shutdown 依序關閉 producer、redis、db，錯誤只記錄不中斷
// 逾時由呼叫端的 ctx 決定
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)

		if app.OrderItemProducer != nil {
			if err := app.OrderItemProducer.Close(); err != nil {
				app.Logger.Error().Err(err).Msg("kafka producer shutdown error")
			}
		}
		if app.RedisClient != nil {
			if err := app.RedisClient.Close(); err != nil {
				app.Logger.Error().Err(err).Msg("redis client shutdown error")
			}
		}
		if app.DbConn != nil {
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}
	}()

	select {
	case <-done:
		app.Logger.Info().Msg("Application shutdown complete")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
