package admin

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"placement_dashboard/internal/async"
	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/model"
	"placement_dashboard/internal/paginate"
	"placement_dashboard/internal/resource"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/logger"

	"go.uber.org/zap"
)

// Screen 是與實體型別無關的管理頁面
type Screen interface {
	Kind() model.Kind
	Paging() resource.Paging
	Schema() Schema
	// Load 首次讀取
	Load(ctx context.Context)
	// Refresh 重新讀取目前頁面
	Refresh(ctx context.Context)
	SetPage(ctx context.Context, page int)
	// Search 立即套用搜尋字串，不經過 Debounce
	Search(ctx context.Context, term string)
	// Locate 逐頁尋找 row，找到時停在該頁
	Locate(ctx context.Context, id string) error
	Table() *crud.Table
	State() PageState
	Close()
}

// PageState 是分頁狀態的摘要
type PageState struct {
	Page       int
	PerPage    int
	Count      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
	Loading    bool
}

// Page 是單一實體的管理頁面
type Page[T model.Entity] struct {
	hooks  *resource.Hooks[T]
	schema Schema
	pager  paginate.Pager[T]
	table  *crud.Table
	log    logger.Logger

	mu     sync.Mutex
	labels Labels

	create *resource.Mutation[service.Payload, *service.Saved[T]]
	update *resource.Mutation[resource.UpdateArgs, *service.Saved[T]]
	remove *resource.Mutation[int64, string]
}

// NewPage 創建頁面。成功的變更之後由頁面呼叫 Refresh。
func NewPage[T model.Entity](hooks *resource.Hooks[T], schema Schema, perPage int, toaster async.Notifier, log logger.Logger) (*Page[T], error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(zap.String("entity", string(hooks.Kind())))

	p := &Page[T]{
		hooks:  hooks,
		schema: schema,
		pager:  hooks.Paginated(perPage, ""),
		log:    log,
		create: hooks.Create(),
		update: hooks.Update(),
		remove: hooks.Delete(),
	}

	table, err := crud.New(crud.Config{
		Title:    schema.Title,
		Subtitle: schema.Subtitle,
		Entity:   schema.Entity,
		Columns:  schema.Columns,
		Fields:   schema.Fields,
		OnCreate: p.onCreate,
		OnUpdate: p.onUpdate,
		OnDelete: p.onDelete,
		OnSearch: p.Search,
		OnPage:   p.SetPage,
		Toaster:  toaster,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("%s table: %w", hooks.Kind(), err)
	}
	p.table = table
	return p, nil
}

func (p *Page[T]) Kind() model.Kind        { return p.hooks.Kind() }
func (p *Page[T]) Paging() resource.Paging { return p.hooks.Paging() }
func (p *Page[T]) Schema() Schema          { return p.schema }
func (p *Page[T]) Table() *crud.Table      { return p.table }
func (p *Page[T]) Close()                  { p.table.Close() }

func (p *Page[T]) Load(ctx context.Context) {
	p.table.SetLoading(true)
	p.pager.Load(ctx)
	p.sync(ctx)
}

func (p *Page[T]) Refresh(ctx context.Context) {
	p.table.SetLoading(true)
	p.pager.Refresh(ctx)
	p.sync(ctx)
}

func (p *Page[T]) SetPage(ctx context.Context, page int) {
	p.table.SetLoading(true)
	p.pager.SetPage(ctx, page)
	p.sync(ctx)
}

func (p *Page[T]) Search(ctx context.Context, term string) {
	p.table.SetLoading(true)
	p.pager.SetSearch(ctx, term)
	p.sync(ctx)
}

func (p *Page[T]) Locate(ctx context.Context, id string) error {
	p.Load(ctx)
	for page := 1; ; page++ {
		p.SetPage(ctx, page)
		st := p.pager.Snapshot()
		for _, item := range st.Items {
			if strconv.FormatInt(item.Identifier(), 10) == id {
				return nil
			}
		}
		if !st.HasNext {
			return fmt.Errorf("%w: %s %s", crud.ErrRowNotFound, p.Kind(), id)
		}
	}
}

func (p *Page[T]) State() PageState {
	st := p.pager.Snapshot()
	return PageState{
		Page:       st.Page,
		PerPage:    st.PerPage,
		Count:      st.Count,
		TotalPages: st.TotalPages(),
		HasNext:    st.HasNext,
		HasPrev:    st.HasPrev,
		Loading:    st.Loading,
	}
}

// sync 把分頁器的快照同步到表格，缺少名稱時先讀取參照集合
func (p *Page[T]) sync(ctx context.Context) {
	st := p.pager.Snapshot()

	rows, missing := p.rows(st.Items)
	if len(missing) > 0 && p.loadLabels(ctx, missing) {
		rows, _ = p.rows(st.Items)
	}

	p.table.SetRows(rows)
	p.table.SetLoading(st.Loading)
	p.table.SetPagination(&crud.Pagination{
		Page:       st.Page,
		TotalPages: st.TotalPages(),
		Count:      st.Count,
		HasNext:    st.HasNext,
		HasPrev:    st.HasPrev,
	})
}

func (p *Page[T]) rows(items []T) ([]crud.Row, map[string]bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rows := make([]crud.Row, 0, len(items))
	missing := map[string]bool{}
	for _, item := range items {
		row, fields, err := rowOf(p.schema, item, p.labels)
		if err != nil {
			p.log.Error("build row failed", zap.Error(err))
			continue
		}
		for _, f := range fields {
			missing[f] = true
		}
		rows = append(rows, row)
	}
	return rows, missing
}

// loadLabels 重新讀取缺少名稱的欄位，有任何更新時回傳 true
func (p *Page[T]) loadLabels(ctx context.Context, fields map[string]bool) bool {
	updated := false
	for field := range fields {
		fn, ok := p.schema.Labels[field]
		if !ok {
			continue
		}
		names, err := fn(ctx)
		if err != nil {
			p.log.Warn("load labels failed", zap.String("field", field), zap.Error(err))
			continue
		}
		p.mu.Lock()
		if p.labels == nil {
			p.labels = Labels{}
		}
		p.labels[field] = names
		p.mu.Unlock()
		updated = true
	}
	return updated
}

func (p *Page[T]) fieldNames() []string {
	names := make([]string, len(p.schema.Fields))
	for i, f := range p.schema.Fields {
		names[i] = f.Name
	}
	return names
}

func (p *Page[T]) onCreate(ctx context.Context, values crud.Values) crud.Outcome {
	res := p.create.Run(ctx, payloadOf(p.schema.Fields, values))
	if !res.OK {
		return crud.OutcomeFromError(res.Err, p.fieldNames())
	}
	p.Refresh(ctx)
	return crud.Succeeded(messageOr(res.Data, p.schema.Entity+" created successfully"))
}

func (p *Page[T]) onUpdate(ctx context.Context, id string, patch crud.Values) crud.Outcome {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return crud.Outcome{OK: false, Message: "Invalid id " + id, FormError: "Invalid id " + id}
	}
	res := p.update.Run(ctx, resource.UpdateArgs{ID: n, Patch: payloadOf(p.schema.Fields, patch)})
	if !res.OK {
		return crud.OutcomeFromError(res.Err, p.fieldNames())
	}
	p.Refresh(ctx)
	return crud.Succeeded(messageOr(res.Data, p.schema.Entity+" updated successfully"))
}

func (p *Page[T]) onDelete(ctx context.Context, id string) crud.Outcome {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return crud.Outcome{OK: false, Message: "Invalid id " + id}
	}
	res := p.remove.Run(ctx, n)
	if !res.OK {
		return crud.OutcomeFromError(res.Err, nil)
	}
	p.Refresh(ctx)
	msg := res.Data
	if msg == "" {
		msg = p.schema.Entity + " deleted successfully"
	}
	return crud.Succeeded(msg)
}

func messageOr[T any](saved *service.Saved[T], fallback string) string {
	if saved != nil && saved.Message != "" {
		return saved.Message
	}
	return fallback
}
