package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement_dashboard/internal/config"
	"placement_dashboard/internal/mockapi"
	"placement_dashboard/pkg/logger"
	"placement_dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// 開發用後端：提供登入、各實體 CRUD 與聊天
func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		_ = utils.PrintVersion(os.Stdout, len(os.Args) > 2 && os.Args[2] == "-json")
		return
	}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(config.Args{Name: "mockapi", List: os.Args[1:]}),
		// 指標註冊到預設註冊器，由 /metrics 輸出
		fx.Supply(
			fx.Annotate(prometheus.DefaultRegisterer, fx.As(new(prometheus.Registerer))),
			fx.Annotate(prometheus.DefaultGatherer, fx.As(new(prometheus.Gatherer))),
		),
		// 註冊配置模塊
		config.Module,
		// 註冊日誌模塊
		logger.Module,
		fx.Invoke(func(cfg *config.Config) {
			if cfg.LogLevel() != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
		}),
		// 註冊開發後端模塊
		mockapi.Module,
		fx.Invoke(func(cfg *config.Config, log logger.Logger) {
			log.Info("mock api listening",
				zap.Uint64("port", cfg.Mock.Port),
				zap.String("version", config.ShortVersionString()))
		}),
	)

	// 啟動應用
	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var exit int
	select {
	case <-quit:
	case sig := <-app.Wait():
		exit = sig.ExitCode
	}

	// 優雅關閉
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stop: %v\n", err)
		exit = 1
	}
	os.Exit(exit)
}
