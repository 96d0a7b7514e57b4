package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement_dashboard/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// 導出 redis.Nil 以便使用者可以處理找不到鍵的情況
var Nil = redis.Nil

// IsKeyNotExist 檢查錯誤是否表示鍵不存在
func IsKeyNotExist(err error) bool {
	return errors.Is(err, redis.Nil)
}

// RedisConfig 存儲 Redis 連接的配置項
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// RedisManager 提供 token 儲存所需的 Redis 操作
type RedisManager interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	// 連接管理
	Close() error
	Ping(ctx context.Context) error
}

// redisManagerImpl 是 RedisManager 介面的實作
type redisManagerImpl struct {
	client *redis.Client
}

// NewRedisManager 創建一個新的 Redis 管理器
func NewRedisManager(config *RedisConfig) RedisManager {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Username: config.Username,
		Password: config.Password,
		DB:       config.DB,
	})

	return &redisManagerImpl{
		client: client,
	}
}

// ProvideRedisManager 提供 RedisManager 實例，用於 fx
func ProvideRedisManager(lc fx.Lifecycle, config *RedisConfig, log logger.Logger) RedisManager {
	manager := NewRedisManager(config)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := manager.Ping(ctx); err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			log.Info("redis connected", zap.String("addr", config.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("closing redis connection")
			return manager.Close()
		},
	})

	return manager
}

// 創建 fx 模組，RedisConfig 由呼叫端提供
var Module = fx.Module("redis",
	fx.Provide(
		ProvideRedisManager,
	),
)

func (r *redisManagerImpl) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *redisManagerImpl) Get(ctx context.Context, key string) (string, error) {
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return result, nil
}

func (r *redisManagerImpl) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisManagerImpl) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}

func (r *redisManagerImpl) Close() error {
	return r.client.Close()
}

func (r *redisManagerImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
