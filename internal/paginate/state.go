package paginate

import "context"

// State 是分頁器在某一時刻的完整快照
type State[T any] struct {
	Page    int
	PerPage int
	Items   []T
	Count   int
	HasNext bool
	HasPrev bool
	Loading bool
}

// TotalPages 回傳快照的總頁數
func (s State[T]) TotalPages() int {
	return TotalPages(s.Count, s.PerPage)
}

// Pager 是伺服器分頁與客戶端分頁共同的操作介面
type Pager[T any] interface {
	Load(ctx context.Context)
	Refresh(ctx context.Context)
	SetPage(ctx context.Context, page int)
	SetSearch(ctx context.Context, term string)
	Snapshot() State[T]
	PerPage() int
	Search() string
}
