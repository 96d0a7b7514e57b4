package resource

import (
	"context"

	"placement_dashboard/internal/async"
)

// Mutation 以一個 async.Action 包裝一次服務呼叫
type Mutation[A, R any] struct {
	action *async.Action[R]
	call   func(ctx context.Context, arg A) (R, error)
}

// NewMutation 創建 Mutation
func NewMutation[A, R any](call func(ctx context.Context, arg A) (R, error), opts ...async.Option) *Mutation[A, R] {
	return &Mutation[A, R]{
		action: async.NewAction[R](opts...),
		call:   call,
	}
}

// Run 執行一次呼叫
func (m *Mutation[A, R]) Run(ctx context.Context, arg A) async.Result[R] {
	return m.action.Run(ctx, func(ctx context.Context) (R, error) {
		return m.call(ctx, arg)
	})
}

// Loading 是否有呼叫進行中
func (m *Mutation[A, R]) Loading() bool {
	return m.action.Loading()
}
