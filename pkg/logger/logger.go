package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 是日誌介面
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

// loggerImpl 是 Logger 介面的實作
type loggerImpl struct {
	logger *zap.Logger
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, fields...)
}

func (l *loggerImpl) Fatal(msg string, fields ...zap.Field) {
	l.logger.Fatal(msg, fields...)
}

func (l *loggerImpl) With(fields ...zap.Field) Logger {
	return &loggerImpl{logger: l.logger.With(fields...)}
}

func (l *loggerImpl) Sync() error {
	return l.logger.Sync()
}

// ParseLevel 將字串轉換為日誌級別，無法識別時使用 info
func ParseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// NewLogger 創建一個新的日誌記錄器
func NewLogger(level string) (Logger, error) {
	// 創建基本的 encoder 配置
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// 日誌輸出到 stderr，避免干擾 CLI 的標準輸出
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		zap.NewAtomicLevelAt(ParseLevel(level)),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &loggerImpl{logger: logger}, nil
}

// FromZap 包裝既有的 zap.Logger
func FromZap(l *zap.Logger) Logger {
	return &loggerImpl{logger: l}
}

// NewNop 回傳不輸出任何內容的日誌記錄器，供測試使用
func NewNop() Logger {
	return &loggerImpl{logger: zap.NewNop()}
}

// LevelSource 提供日誌級別設定
type LevelSource interface {
	LogLevel() string
}

// ProvideLogger 提供 Logger 實例，用於 fx
func ProvideLogger(lc fx.Lifecycle, src LevelSource) (Logger, error) {
	logger, err := NewLogger(src.LogLevel())
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("logger initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// stderr 在部分平台上 Sync 會回傳錯誤，忽略即可
			_ = logger.Sync()
			return nil
		},
	})

	return logger, nil
}

// Module 創建 fx 模組，包含所有日誌相關組件
var Module = fx.Module("logger",
	fx.Provide(
		ProvideLogger,
	),
)
