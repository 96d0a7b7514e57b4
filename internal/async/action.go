// Package async 包裝單次非同步操作，追蹤進行中狀態並將錯誤統一轉成 Result。
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"placement_dashboard/pkg/logger"

	"go.uber.org/zap"
)

// Result 是一次操作的結果，建立後不再修改。OK 為 true 時 Err 必為 nil。
type Result[T any] struct {
	OK   bool
	Data T
	Err  error
}

// Func 是被包裝的操作
type Func[T any] func(ctx context.Context) (T, error)

// ErrorHandler 在操作失敗時被呼叫，用於通知或記錄
type ErrorHandler func(ctx context.Context, err error)

// ErrPanic 表示被包裝的操作發生 panic
var ErrPanic = errors.New("async: operation panicked")

// Action 執行操作並維護 loading 旗標。同一實例上的並行呼叫不做協調，
// loading 以最後寫入為準。
type Action[T any] struct {
	mu       sync.Mutex
	inFlight int
	loading  bool
	gen      uint64
	onError  ErrorHandler
}

// Option 為 Action 的配置選項
type Option func(*options)

type options struct {
	handlers []ErrorHandler
}

// WithErrorHandler 加入失敗時的處理函數
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.handlers = append(o.handlers, h)
		}
	}
}

// WithLogger 失敗時以 Error 級別記錄
func WithLogger(l logger.Logger, operation string) Option {
	return WithErrorHandler(func(ctx context.Context, err error) {
		l.Error("request failed", zap.String("operation", operation), zap.Error(err))
	})
}

// WithNotifier 失敗時透過 Notifier 顯示使用者可讀的訊息
func WithNotifier(n Notifier) Option {
	return WithErrorHandler(func(ctx context.Context, err error) {
		n.Error(Message(err, "Something went wrong"))
	})
}

// NewAction 創建新的 Action
func NewAction[T any](opts ...Option) *Action[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &Action[T]{}
	if len(o.handlers) > 0 {
		handlers := o.handlers
		a.onError = func(ctx context.Context, err error) {
			for _, h := range handlers {
				h(ctx, err)
			}
		}
	}
	return a
}

// Loading 回傳是否有操作進行中
func (a *Action[T]) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Run 執行 fn 一次，不重試也不取消
func (a *Action[T]) Run(ctx context.Context, fn Func[T]) Result[T] {
	res, _ := a.RunTracked(ctx, fn)
	return res
}

// RunTracked 與 Run 相同，另外回傳本次呼叫的世代編號，
// 呼叫端可用 IsLatest 判斷結果是否已被較新的呼叫取代
func (a *Action[T]) RunTracked(ctx context.Context, fn Func[T]) (Result[T], uint64) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.inFlight++
	a.loading = true
	a.mu.Unlock()

	data, err := invoke(ctx, fn)

	a.mu.Lock()
	a.inFlight--
	a.loading = false
	a.mu.Unlock()

	if err != nil {
		if a.onError != nil {
			a.onError(ctx, err)
		}
		return Result[T]{OK: false, Err: err}, gen
	}
	return Result[T]{OK: true, Data: data}, gen
}

// IsLatest 判斷 gen 是否為最近一次開始的呼叫
func (a *Action[T]) IsLatest(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen == gen
}

// InFlight 回傳尚未結束的呼叫數
func (a *Action[T]) InFlight() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}

func invoke[T any](ctx context.Context, fn Func[T]) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			data = zero
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}
