package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement_dashboard/internal/async"
	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/config"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/httpClient"
	"placement_dashboard/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, auth.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "run `dashboard login <email> <password>` first")
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, rest, err := config.Load("dashboard", args)
	if err != nil {
		return err
	}

	// redis 只在 token 存放於 redis 時連線
	var redisModule fx.Option = fx.Options()
	if cfg.Auth.TokenStore == config.TokenStoreRedis {
		redisModule = auth.RedisModule
	}

	var cli *CLI
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Supply(
			fx.Annotate(prometheus.DefaultRegisterer, fx.As(new(prometheus.Registerer))),
			fx.Annotate(prometheus.DefaultGatherer, fx.As(new(prometheus.Gatherer))),
		),
		fx.Provide(
			config.ProvideLevelSource,
			config.ProvideHTTPConfig,
			func() *async.Recorder { return &async.Recorder{} },
			newCLI,
		),
		logger.Module,
		redisModule,
		auth.Module,
		httpClient.Module,
		service.Module,
		fx.Populate(&cli),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cli.Run(ctx, rest)
}

// CLIParams 是 CLI 的依賴
type CLIParams struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Provider *auth.Provider
	Auth     *service.AuthService
	Catalog  *service.Catalog
	Client   httpClient.HTTPClient
	Toasts   *async.Recorder
	Gatherer prometheus.Gatherer `optional:"true"`
}

func newCLI(p CLIParams) *CLI {
	return &CLI{
		cfg:      p.Config,
		log:      p.Logger,
		provider: p.Provider,
		auth:     p.Auth,
		catalog:  p.Catalog,
		client:   p.Client,
		toasts:   p.Toasts,
		metrics:  p.Gatherer,
		out:      os.Stdout,
	}
}
