package config

import (
	"placement_dashboard/pkg/httpClient"
	"placement_dashboard/pkg/logger"

	"go.uber.org/fx"
)

// Args 是交給 config 模組的命令行參數
type Args struct {
	Name string
	List []string
}

// Remaining 是解析設定後剩下的子命令參數
type Remaining []string

var Module = fx.Module("config",
	fx.Provide(
		ProvideConfig,
		ProvideLevelSource,
		ProvideHTTPConfig,
	),
)

func ProvideConfig(args Args) (*Config, Remaining, error) {
	cfg, rest, err := Load(args.Name, args.List)
	if err != nil {
		return nil, nil, err
	}
	return cfg, Remaining(rest), nil
}

// ProvideLevelSource 讓 logger 模組讀取日誌級別
func ProvideLevelSource(cfg *Config) logger.LevelSource {
	return cfg
}

// ProvideHTTPConfig 轉出 API 客戶端設定
func ProvideHTTPConfig(cfg *Config) httpClient.Config {
	return httpClient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}
}
