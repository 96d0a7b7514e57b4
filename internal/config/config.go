package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 支援的 token 儲存方式
const (
	TokenStoreMemory = "memory"
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

// Default 回傳預設配置
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8080",
			Timeout:   30 * time.Second,
			RateLimit: 0,
			RateBurst: 10,
		},
		Auth: AuthConfig{
			TokenStore: TokenStoreFile,
			TokenFile:  defaultTokenFile(),
			RedisKey:   "placement_dashboard:session",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Chat: ChatConfig{
			URL: "ws://localhost:8080/ws/chat/",
		},
		Mock: MockConfig{
			Port:      8080,
			JWTSecret: "dev-secret-key",
			TokenTTL:  24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
		Paging: PagingConfig{
			PerPage: 10,
		},
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".dashboard_session"
	}
	return dir + string(os.PathSeparator) + "placement_dashboard" + string(os.PathSeparator) + "session.json"
}

// Load 依序套用預設值、YAML 檔案、.env、環境變數與命令行參數
// 回傳未被解析的剩餘參數（子命令）
func Load(name string, args []string) (*Config, []string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: .env file cannot be loaded: %v", err)
	}

	cfg := Default()

	path := configPathFromArgs(args)
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, nil, err
		}
	}

	applyEnv(cfg)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	bindFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("解析命令行參數失敗: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}

// LoadFile 讀取 YAML 設定檔並覆蓋到 cfg
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("讀取設定檔 %s 失敗: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("解析設定檔 %s 失敗: %w", path, err)
	}
	return nil
}

// Validate 檢查必要欄位
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api base url is empty", ErrInvalidConfig)
	}
	if c.Paging.PerPage <= 0 {
		return fmt.Errorf("%w: per_page must be positive", ErrInvalidConfig)
	}
	switch c.Auth.TokenStore {
	case TokenStoreMemory, TokenStoreFile, TokenStoreRedis:
	default:
		return fmt.Errorf("%w: unknown token store %q", ErrInvalidConfig, c.Auth.TokenStore)
	}
	if c.Auth.TokenStore == TokenStoreFile && c.Auth.TokenFile == "" {
		return fmt.Errorf("%w: token file is empty", ErrInvalidConfig)
	}
	return nil
}

// configPathFromArgs 在正式解析前先找出 -config 參數
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(name, "config=") {
			return strings.TrimPrefix(name, "config=")
		}
	}
	return ""
}

func applyEnv(cfg *Config) {
	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Timeout = getEnvAsDuration("API_TIMEOUT", cfg.API.Timeout)
	cfg.API.RateLimit = getEnvAsFloat("API_RATE_LIMIT", cfg.API.RateLimit)
	cfg.API.RateBurst = getEnvAsInt("API_RATE_BURST", cfg.API.RateBurst)

	cfg.Auth.TokenStore = getEnv("TOKEN_STORE", cfg.Auth.TokenStore)
	cfg.Auth.TokenFile = getEnv("TOKEN_FILE", cfg.Auth.TokenFile)
	cfg.Auth.RedisKey = getEnv("TOKEN_REDIS_KEY", cfg.Auth.RedisKey)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Username = getEnv("REDIS_USERNAME", cfg.Redis.Username)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Chat.URL = getEnv("CHAT_URL", cfg.Chat.URL)

	cfg.Mock.Port = uint64(getEnvAsInt("MOCK_PORT", int(cfg.Mock.Port)))
	cfg.Mock.JWTSecret = getEnv("MOCK_JWT_SECRET", cfg.Mock.JWTSecret)
	cfg.Mock.TokenTTL = getEnvAsDuration("MOCK_TOKEN_TTL", cfg.Mock.TokenTTL)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Paging.PerPage = getEnvAsInt("PER_PAGE", cfg.Paging.PerPage)
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	// -config 已在 configPathFromArgs 處理，這裡只為了讓 flag 套件接受它
	fs.String("config", "", "YAML config file")

	fs.StringVar(&cfg.API.BaseURL, "api_url", cfg.API.BaseURL, "Backend API base URL")
	fs.DurationVar(&cfg.API.Timeout, "timeout", cfg.API.Timeout, "HTTP request timeout")
	fs.Float64Var(&cfg.API.RateLimit, "rate_limit", cfg.API.RateLimit, "Max requests per second (0 = unlimited)")
	fs.StringVar(&cfg.Auth.TokenStore, "token_store", cfg.Auth.TokenStore, "Session store (memory, file, redis)")
	fs.StringVar(&cfg.Auth.TokenFile, "token_file", cfg.Auth.TokenFile, "Session file path")
	fs.StringVar(&cfg.Redis.Addr, "redis_addr", cfg.Redis.Addr, "Redis address")
	fs.StringVar(&cfg.Chat.URL, "chat_url", cfg.Chat.URL, "Chat websocket URL")
	fs.Uint64Var(&cfg.Mock.Port, "port", cfg.Mock.Port, "Mock API listen port")
	fs.StringVar(&cfg.Log.Level, "log_level", cfg.Log.Level, "Log level")
	fs.IntVar(&cfg.Paging.PerPage, "per_page", cfg.Paging.PerPage, "Rows per page")
}

// getEnv 從環境變量獲取字串值，如果不存在則返回默認值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 從環境變量獲取整數值，如果不存在或無法解析則返回默認值
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration 從環境變量獲取時間間隔，格式如 "30s"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
