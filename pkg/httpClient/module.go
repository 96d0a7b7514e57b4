package httpClient

import (
	"placement_dashboard/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// ModuleParams 模組參數
type ModuleParams struct {
	fx.In

	Config     Config
	Logger     logger.Logger
	Tokens     TokenSource           `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// ModuleResult 模組結果
type ModuleResult struct {
	fx.Out

	Client HTTPClient
}

// ProvideHTTPClient 提供HTTP客戶端實例
func ProvideHTTPClient(p ModuleParams) (ModuleResult, error) {
	opts := p.Config.Options()
	opts = append(opts, WithLogger(p.Logger), WithMetrics(NewMetrics(p.Registerer)))
	if p.Tokens != nil {
		opts = append(opts, WithTokenSource(p.Tokens))
	}

	client, err := NewClient(p.Config.BaseURL, opts...)
	if err != nil {
		return ModuleResult{}, err
	}
	return ModuleResult{Client: client}, nil
}

// Module HTTP客戶端模組
var Module = fx.Options(
	fx.Provide(
		ProvideHTTPClient,
	),
)
