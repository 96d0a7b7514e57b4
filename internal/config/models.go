package config

import (
	"time"
)

// Config 是 dashboard 與 mock 後端共用的設定
type Config struct {
	API    APIConfig    `yaml:"api"`
	Auth   AuthConfig   `yaml:"auth"`
	Redis  RedisConfig  `yaml:"redis"`
	Chat   ChatConfig   `yaml:"chat"`
	Mock   MockConfig   `yaml:"mock"`
	Log    LogConfig    `yaml:"log"`
	Paging PagingConfig `yaml:"paging"`
}

type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"` // 每秒請求數，0 表示不限制
	RateBurst int           `yaml:"rate_burst"`
}

// TokenStore 類型: memory | file | redis
type AuthConfig struct {
	TokenStore string `yaml:"token_store"`
	TokenFile  string `yaml:"token_file"`
	RedisKey   string `yaml:"redis_key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ChatConfig struct {
	URL string `yaml:"url"`
}

type MockConfig struct {
	Port      uint64        `yaml:"port"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type PagingConfig struct {
	PerPage int `yaml:"per_page"`
}

// LogLevel 實作 logger.LevelSource
func (c *Config) LogLevel() string {
	return c.Log.Level
}
