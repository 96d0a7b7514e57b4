package auth

import (
	"fmt"

	"placement_dashboard/internal/config"
	"placement_dashboard/pkg/httpClient"
	redis "placement_dashboard/pkg/redisManager"

	"go.uber.org/fx"
)

// StoreParams 建立 Store 所需的依賴，Redis 只在 token_store 為 redis 時提供
type StoreParams struct {
	fx.In

	Config *config.Config
	Redis  redis.RedisManager `optional:"true"`
}

// ProvideStore 依設定選擇 token 儲存方式
func ProvideStore(p StoreParams) (Store, error) {
	switch p.Config.Auth.TokenStore {
	case "", config.TokenStoreMemory:
		return NewMemoryStore(), nil
	case config.TokenStoreFile:
		return NewFileStore(p.Config.Auth.TokenFile), nil
	case config.TokenStoreRedis:
		if p.Redis == nil {
			return nil, fmt.Errorf("token store redis requires a redis connection")
		}
		return NewRedisStore(p.Redis, p.Config.Auth.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", p.Config.Auth.TokenStore)
	}
}

// ProvideRedisConfig 由設定轉出 Redis 連線參數
func ProvideRedisConfig(cfg *config.Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// Module 提供 Store、Provider 與 httpClient.TokenSource
var Module = fx.Module("auth",
	fx.Provide(
		ProvideStore,
		NewProvider,
		func(p *Provider) httpClient.TokenSource { return p },
	),
)

// RedisModule 在 token_store 為 redis 時加入
var RedisModule = fx.Options(
	fx.Provide(ProvideRedisConfig),
	redis.Module,
)
