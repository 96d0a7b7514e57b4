package healthcheck

import (
	"context"
	"errors"
)

// ErrNotReady 表示服務尚未就緒或正在關閉
var ErrNotReady = errors.New("service not ready")

// PingChecker 總是成功
type PingChecker struct{}

func (PingChecker) Name() string                    { return "ping" }
func (PingChecker) Check(ctx context.Context) error { return nil }

type readinessState struct {
	manager *Manager
}

func (r *readinessState) Name() string { return "readiness-state" }

func (r *readinessState) Check(ctx context.Context) error {
	if !r.manager.IsReady() {
		return ErrNotReady
	}
	return nil
}

// Func 把函數包成檢查器，例如 redis 的 Ping
type Func struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (f Func) Name() string { return f.Label }

func (f Func) Check(ctx context.Context) error {
	if f.Fn == nil {
		return errors.New("check function not configured")
	}
	return f.Fn(ctx)
}
