package httpClient

import (
	"time"
)

// Config 定義客戶端配置
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// Options 將配置轉換為客戶端選項
func (c Config) Options() []ClientOption {
	var opts []ClientOption
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.RateLimit > 0 {
		opts = append(opts, WithRateLimit(c.RateLimit, c.RateBurst))
	}
	return opts
}
