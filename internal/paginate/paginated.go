// Package paginate 維護伺服器分頁或客戶端分頁集合的目前頁面。
package paginate

import (
	"context"
	"strings"
	"sync"

	"placement_dashboard/internal/async"
)

// FetchFunc 讀取一頁資料
type FetchFunc[T any] func(ctx context.Context, q Query) (*Response[T], error)

// Option 配置分頁器
type Option func(*settings)

type settings struct {
	perPage     int
	initialPage int
	key         string
	actionOpts  []async.Option
}

// DefaultPerPage 是未指定時的每頁筆數
const DefaultPerPage = 10

// WithPerPage 設定每頁筆數
func WithPerPage(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.perPage = n
		}
	}
}

// WithInitialPage 設定起始頁，預設為 1
func WithInitialPage(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.initialPage = n
		}
	}
}

// WithKey 設定初始依賴鍵
func WithKey(key string) Option {
	return func(s *settings) {
		s.key = key
	}
}

// WithActionOptions 傳給內部 async.Action 的選項（錯誤處理、記錄）
func WithActionOptions(opts ...async.Option) Option {
	return func(s *settings) {
		s.actionOpts = append(s.actionOpts, opts...)
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{perPage: DefaultPerPage, initialPage: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paginated 是伺服器分頁的分頁器。頁碼或依賴鍵改變時重新讀取；
// 每次讀取結束後 Items、Count、HasNext、HasPrev 一起更新。
type Paginated[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	perPage int
	page    int
	key     string
	loaded  bool

	items   []T
	count   int
	hasNext bool
	hasPrev bool

	action *async.Action[*Response[T]]
}

// New 創建伺服器分頁器，不會自動讀取，需呼叫 Load
func New[T any](fetch FetchFunc[T], opts ...Option) *Paginated[T] {
	s := newSettings(opts)
	return &Paginated[T]{
		fetch:   fetch,
		perPage: s.perPage,
		page:    s.initialPage,
		key:     s.key,
		action:  async.NewAction[*Response[T]](s.actionOpts...),
	}
}

// Load 讀取目前頁面（相當於首次掛載）
func (p *Paginated[T]) Load(ctx context.Context) {
	p.load(ctx)
}

// Refresh 重新讀取目前頁面，不改變頁碼
func (p *Paginated[T]) Refresh(ctx context.Context) {
	p.load(ctx)
}

// SetPage 切換頁碼，頁碼改變時重新讀取
func (p *Paginated[T]) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	if p.loaded && p.page == page {
		p.mu.Unlock()
		return
	}
	p.page = page
	p.mu.Unlock()

	p.load(ctx)
}

// SetKey 更換依賴鍵並保留頁碼，鍵相同時不重新讀取
func (p *Paginated[T]) SetKey(ctx context.Context, key string) {
	p.mu.Lock()
	if p.loaded && p.key == key {
		p.mu.Unlock()
		return
	}
	p.key = key
	p.mu.Unlock()

	p.load(ctx)
}

// SetSearch 以去除空白後的搜尋字串作為依賴鍵，改變時回到第一頁並只讀取一次
func (p *Paginated[T]) SetSearch(ctx context.Context, term string) {
	key := strings.TrimSpace(term)

	p.mu.Lock()
	if p.loaded && p.key == key {
		p.mu.Unlock()
		return
	}
	p.key = key
	p.page = 1
	p.mu.Unlock()

	p.load(ctx)
}

func (p *Paginated[T]) load(ctx context.Context) {
	p.mu.Lock()
	q := Query{Page: p.page, PerPage: p.perPage, Key: p.key}
	p.mu.Unlock()

	res, gen := p.action.RunTracked(ctx, func(ctx context.Context) (*Response[T], error) {
		return p.fetch(ctx, q)
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	// 較新的讀取已經開始，捨棄這次的結果
	if !p.action.IsLatest(gen) {
		return
	}

	p.loaded = true
	if !res.OK || res.Data == nil {
		p.items = []T{}
		p.count = 0
		p.hasNext = false
		p.hasPrev = false
		return
	}

	items := res.Data.Data
	if items == nil {
		items = []T{}
	}
	p.items = items
	p.count = res.Data.Count
	p.hasNext = res.Data.HasNextPage
	p.hasPrev = res.Data.Previous != nil
}

// Snapshot 回傳一致的狀態快照
func (p *Paginated[T]) Snapshot() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]T, len(p.items))
	copy(items, p.items)
	return State[T]{
		Page:    p.page,
		PerPage: p.perPage,
		Items:   items,
		Count:   p.count,
		HasNext: p.hasNext,
		HasPrev: p.hasPrev,
		Loading: p.action.InFlight() > 0,
	}
}

func (p *Paginated[T]) Items() []T      { return p.Snapshot().Items }
func (p *Paginated[T]) Page() int       { return p.Snapshot().Page }
func (p *Paginated[T]) PerPage() int    { return p.perPage }
func (p *Paginated[T]) Count() int      { return p.Snapshot().Count }
func (p *Paginated[T]) HasNext() bool   { return p.Snapshot().HasNext }
func (p *Paginated[T]) HasPrev() bool   { return p.Snapshot().HasPrev }
func (p *Paginated[T]) Loading() bool   { return p.action.InFlight() > 0 }
func (p *Paginated[T]) TotalPages() int { return p.Snapshot().TotalPages() }

// Search 回傳目前的搜尋字串，也就是依賴鍵
func (p *Paginated[T]) Search() string { return p.Key() }

// Key 回傳目前的依賴鍵
func (p *Paginated[T]) Key() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key
}
