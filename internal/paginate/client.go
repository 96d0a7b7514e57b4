package paginate

import (
	"context"
	"strings"
	"sync"

	"placement_dashboard/internal/async"
)

// FetchAllFunc 一次讀取整個集合
type FetchAllFunc[T any] func(ctx context.Context) ([]T, error)

// MatchFunc 判斷項目是否符合搜尋字串，term 已去除空白且不為空
type MatchFunc[T any] func(item T, term string) bool

// ClientPaginated 讀取整個集合後在本地端篩選與切頁，
// 適用於小型且少變動的集合。Count 為本地篩選後的筆數。
type ClientPaginated[T any] struct {
	mu      sync.Mutex
	fetch   FetchAllFunc[T]
	match   MatchFunc[T]
	perPage int
	page    int
	search  string
	all     []T
	fetched bool

	action *async.Action[[]T]
}

// NewClient 創建客戶端分頁器
func NewClient[T any](fetch FetchAllFunc[T], match MatchFunc[T], opts ...Option) *ClientPaginated[T] {
	s := newSettings(opts)
	return &ClientPaginated[T]{
		fetch:   fetch,
		match:   match,
		perPage: s.perPage,
		page:    s.initialPage,
		search:  strings.TrimSpace(s.key),
		action:  async.NewAction[[]T](s.actionOpts...),
	}
}

// Load 尚未讀取過時讀取整個集合
func (c *ClientPaginated[T]) Load(ctx context.Context) {
	c.mu.Lock()
	fetched := c.fetched
	c.mu.Unlock()
	if fetched {
		return
	}
	c.load(ctx)
}

// Refresh 重新讀取整個集合
func (c *ClientPaginated[T]) Refresh(ctx context.Context) {
	c.load(ctx)
}

func (c *ClientPaginated[T]) load(ctx context.Context) {
	res, gen := c.action.RunTracked(ctx, func(ctx context.Context) ([]T, error) {
		return c.fetch(ctx)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.action.IsLatest(gen) {
		return
	}
	c.fetched = true
	c.all = nil
	if res.OK {
		c.all = res.Data
	}
	// 集合變小時頁碼退回最後一頁
	if total := TotalPages(len(c.filtered()), c.perPage); c.page > total {
		c.page = max(1, total)
	}
}

// SetPage 切換頁碼，純本地操作
func (c *ClientPaginated[T]) SetPage(_ context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
}

// SetSearch 更新搜尋字串，改變時回到第一頁
func (c *ClientPaginated[T]) SetSearch(_ context.Context, term string) {
	term = strings.TrimSpace(term)
	c.mu.Lock()
	defer c.mu.Unlock()
	if term == c.search {
		return
	}
	c.search = term
	c.page = 1
}

func (c *ClientPaginated[T]) filtered() []T {
	if c.search == "" || c.match == nil {
		return c.all
	}
	out := make([]T, 0, len(c.all))
	for _, item := range c.all {
		if c.match(item, c.search) {
			out = append(out, item)
		}
	}
	return out
}

// Snapshot 回傳目前頁面的快照
func (c *ClientPaginated[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.filtered()
	count := len(list)
	total := TotalPages(count, c.perPage)

	start := (c.page - 1) * c.perPage
	if start > count {
		start = count
	}
	end := start + c.perPage
	if end > count {
		end = count
	}
	items := make([]T, end-start)
	copy(items, list[start:end])

	return State[T]{
		Page:    c.page,
		PerPage: c.perPage,
		Items:   items,
		Count:   count,
		HasNext: c.page < total,
		HasPrev: c.page > 1,
		Loading: c.action.InFlight() > 0,
	}
}

func (c *ClientPaginated[T]) PerPage() int { return c.perPage }

// Search 回傳目前的搜尋字串
func (c *ClientPaginated[T]) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// ContainsFold 是常用的不分大小寫包含比對
func ContainsFold(fields ...string) func(term string) bool {
	return func(term string) bool {
		term = strings.ToLower(term)
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	}
}
