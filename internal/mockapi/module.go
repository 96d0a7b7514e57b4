package mockapi

import (
	"context"

	"placement_dashboard/internal/config"
	"placement_dashboard/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerParams 是開發後端的依賴，指標註冊器可省略
type ServerParams struct {
	fx.In

	Config     *config.Config
	Logger     logger.Logger
	Registerer prometheus.Registerer `optional:"true"`
	Gatherer   prometheus.Gatherer   `optional:"true"`
}

// ProvideServer 依設定創建開發後端
func ProvideServer(p ServerParams) (*Server, error) {
	return New(Options{
		Port:       p.Config.Mock.Port,
		Secret:     []byte(p.Config.Mock.JWTSecret),
		TokenTTL:   p.Config.Mock.TokenTTL,
		Seed:       true,
		Registerer: p.Registerer,
		Gatherer:   p.Gatherer,
	}, p.Logger)
}

// run 把服務掛到 fx 生命週期
func run(lc fx.Lifecycle, s *Server, log logger.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start(context.Background())
			// 放在單獨的 goroutine 中，避免阻塞 fx 生命週期
			go func() {
				if err := s.ListenAndServe(); err != nil {
					log.Error("mock api stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}

// Module 是開發後端的 fx 模組
var Module = fx.Module("mockapi",
	fx.Provide(ProvideServer),
	fx.Invoke(run),
)
