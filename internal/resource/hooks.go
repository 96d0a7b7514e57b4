// Package resource 將分頁器與 async.Action 綁定到單一實體的服務。
package resource

import (
	"context"
	"strings"

	"placement_dashboard/internal/async"
	"placement_dashboard/internal/model"
	"placement_dashboard/internal/paginate"
	"placement_dashboard/internal/service"
)

// Service 是 Hooks 需要的實體服務，由 service.REST 實作
type Service[T any] interface {
	Kind() model.Kind
	List(ctx context.Context, params service.ListParams) (*paginate.Response[T], error)
	ListAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload service.Payload) (*service.Saved[T], error)
	Update(ctx context.Context, id int64, payload service.Payload) (*service.Saved[T], error)
	Delete(ctx context.Context, id int64) (string, error)
}

// Hooks 是一個實體的讀取與變更介面
type Hooks[T model.Entity] struct {
	svc    Service[T]
	paging Paging
	opts   []async.Option
}

// NewHooks 創建 Hooks，分頁方式由 Registry 決定
func NewHooks[T model.Entity](svc Service[T], opts ...async.Option) *Hooks[T] {
	return &Hooks[T]{svc: svc, paging: PagingOf(svc.Kind()), opts: opts}
}

// Kind 回傳實體種類
func (h *Hooks[T]) Kind() model.Kind { return h.svc.Kind() }

// Paging 回傳實體的分頁方式
func (h *Hooks[T]) Paging() Paging { return h.paging }

// Paginated 回傳分頁器。伺服器分頁時搜尋字串去除空白後轉給列表端點，
// 空字串不送出；依賴鍵即為去除空白後的搜尋字串。
func (h *Hooks[T]) Paginated(perPage int, search string) paginate.Pager[T] {
	key := strings.TrimSpace(search)
	opts := []paginate.Option{
		paginate.WithPerPage(perPage),
		paginate.WithKey(key),
		paginate.WithActionOptions(h.opts...),
	}

	if h.paging == PagingClient {
		return paginate.NewClient[T](h.svc.ListAll, matchEntity[T], opts...)
	}

	fetch := func(ctx context.Context, q paginate.Query) (*paginate.Response[T], error) {
		return h.svc.List(ctx, service.ListParams{
			Page:     q.Page,
			PageSize: q.PerPage,
			Search:   strings.TrimSpace(q.Key),
		})
	}
	return paginate.New[T](fetch, opts...)
}

func matchEntity[T model.Entity](item T, term string) bool {
	return paginate.ContainsFold(item.SearchText()...)(term)
}

// UpdateArgs 是更新的輸入
type UpdateArgs struct {
	ID    int64
	Patch service.Payload
}

// Create 回傳新增操作，成功後不會刷新列表
func (h *Hooks[T]) Create() *Mutation[service.Payload, *service.Saved[T]] {
	return NewMutation(h.svc.Create, h.opts...)
}

// Update 回傳更新操作，patch 只包含變更的欄位
func (h *Hooks[T]) Update() *Mutation[UpdateArgs, *service.Saved[T]] {
	return NewMutation(func(ctx context.Context, args UpdateArgs) (*service.Saved[T], error) {
		return h.svc.Update(ctx, args.ID, args.Patch)
	}, h.opts...)
}

// Delete 回傳刪除操作，結果為伺服器訊息
func (h *Hooks[T]) Delete() *Mutation[int64, string] {
	return NewMutation(h.svc.Delete, h.opts...)
}
