package crud

import (
	"context"
	"fmt"
	"sync"

	"placement_dashboard/internal/debounce"
	"placement_dashboard/internal/fielderrors"
	"placement_dashboard/pkg/logger"

	"go.uber.org/zap"
)

// Mode 是表單對話框的狀態
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	}
	return "closed"
}

// selectState 是 search_select 欄位的輸入狀態
type selectState struct {
	query   string
	label   string
	options []Option
	err     string
	seq     uint64
	loading bool
}

// Table 是表格控制器。對話框狀態:
// Closed → Create → Closed，Closed → Update(rowID) → Closed，失敗時停留在原狀態。
type Table struct {
	mu  sync.Mutex
	cfg Config
	log logger.Logger

	rows       []Row
	loading    bool
	pagination *Pagination
	search     string
	searchDeb  *debounce.Debouncer

	mode      Mode
	rowID     string
	values    Values
	initial   Values
	errs      fielderrors.FieldErrors
	formError string
	saving    bool

	selects    map[string]*selectState
	debouncers map[string]*debounce.Debouncer

	confirmID string
	deleting  bool
}

// New 創建表格
func New(cfg Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = debounce.DefaultInterval
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	t := &Table{
		cfg:        cfg,
		log:        log,
		searchDeb:  debounce.New(cfg.Debounce),
		selects:    map[string]*selectState{},
		debouncers: map[string]*debounce.Debouncer{},
		errs:       fielderrors.FieldErrors{},
	}
	for _, f := range cfg.Fields {
		if f.Type == FieldSearchSelect {
			t.debouncers[f.Name] = debounce.New(cfg.Debounce)
		}
	}
	return t, nil
}

// SetRows 更新顯示資料，rows 由呼叫端擁有
func (t *Table) SetRows(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
}

// SetLoading 設定列表是否在讀取中
func (t *Table) SetLoading(loading bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = loading
}

// SetPagination 設定分頁資訊，nil 表示不顯示分頁
func (t *Table) SetPagination(p *Pagination) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p == nil {
		t.pagination = nil
		return
	}
	cp := *p
	t.pagination = &cp
}

// GoToPage 轉送換頁給 OnPage
func (t *Table) GoToPage(ctx context.Context, page int) {
	if t.cfg.OnPage != nil {
		t.cfg.OnPage(ctx, page)
	}
}

// SearchInput 更新搜尋框，停止輸入 Debounce 之後呼叫 OnSearch 一次
func (t *Table) SearchInput(ctx context.Context, term string) {
	t.mu.Lock()
	t.search = term
	t.mu.Unlock()

	if t.cfg.OnSearch == nil {
		return
	}
	t.searchDeb.Trigger(func() {
		t.cfg.OnSearch(ctx, term)
	})
}

// Mode 回傳對話框狀態與編輯中的 row ID
func (t *Table) Mode() (Mode, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode, t.rowID
}

// Values 回傳目前表單值的複本
func (t *Table) Values() Values {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values.Clone()
}

// OpenCreate 以空值開啟新增對話框，送出或刪除進行中時回傳 ErrBusy
func (t *Table) OpenCreate() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saving || t.deleting {
		return ErrBusy
	}

	values := make(Values, len(t.cfg.Fields))
	for _, f := range t.cfg.Fields {
		values[f.Name] = emptyValue(f)
	}
	t.open(ModeCreate, "", values)
	return nil
}

// OpenEdit 以該 row 的值開啟編輯對話框，送出或刪除進行中時回傳 ErrBusy
func (t *Table) OpenEdit(rowID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saving || t.deleting {
		return ErrBusy
	}

	row, ok := t.findRow(rowID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}

	values := make(Values, len(t.cfg.Fields))
	labels := map[string]string{}
	for _, f := range t.cfg.Fields {
		c := row.Cells[f.Name]
		values[f.Name] = seedValue(f, c)
		if f.Type == FieldSearchSelect && c != nil {
			labels[f.Name] = c.Display()
		}
	}
	t.open(ModeUpdate, rowID, values)
	for name, label := range labels {
		t.selects[name] = &selectState{label: label}
	}
	return nil
}

func (t *Table) open(mode Mode, rowID string, values Values) {
	t.stopSelects()
	t.mode = mode
	t.rowID = rowID
	t.values = values
	t.initial = values.Clone()
	t.errs = fielderrors.FieldErrors{}
	t.formError = ""
	t.selects = map[string]*selectState{}
}

func (t *Table) findRow(id string) (Row, bool) {
	for _, r := range t.rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// SetValue 更新欄位值並清除該欄位的錯誤
func (t *Table) SetValue(name string, value any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mode == ModeClosed {
		return ErrModalClosed
	}
	f, ok := t.cfg.field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if err := checkType(f, value); err != nil {
		return err
	}
	t.values[name] = value
	t.errs.Clear(name)
	return nil
}

func checkType(f Field, value any) error {
	switch f.Type {
	case FieldCheckbox:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("crud: field %s expects bool, got %T", f.Name, value)
		}
	case FieldFile:
		if _, ok := value.(*File); !ok && value != nil {
			return fmt.Errorf("crud: field %s expects *File, got %T", f.Name, value)
		}
	default:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("crud: field %s expects string, got %T", f.Name, value)
		}
	}
	return nil
}

// Cancel 關閉對話框，不呼叫任何回呼
func (t *Table) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saving {
		return
	}
	t.close()
}

func (t *Table) close() {
	t.stopSelects()
	t.mode = ModeClosed
	t.rowID = ""
	t.values = nil
	t.initial = nil
	t.errs = fielderrors.FieldErrors{}
	t.formError = ""
	t.selects = map[string]*selectState{}
}

func (t *Table) stopSelects() {
	for _, d := range t.debouncers {
		d.Cancel()
	}
}

// Submit 送出表單。新增時送出去除空白後的全部值；更新時只送出變更的欄位。
// 失敗時對話框保持開啟且保留輸入。
func (t *Table) Submit(ctx context.Context) (Outcome, error) {
	t.mu.Lock()
	if t.saving {
		t.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	if t.mode == ModeClosed {
		t.mu.Unlock()
		return Outcome{}, ErrModalClosed
	}

	mode, rowID := t.mode, t.rowID
	trimmed := Trim(t.values)

	if errs := validateValues(t.cfg.Fields, trimmed); errs != nil {
		t.errs = errs
		t.formError = ""
		t.mu.Unlock()
		return Outcome{OK: false, FieldErrors: errs}, nil
	}

	var call func() Outcome
	switch {
	case mode == ModeCreate && t.cfg.OnCreate != nil:
		call = func() Outcome { return t.cfg.OnCreate(ctx, trimmed) }
	case mode == ModeUpdate && t.cfg.OnUpdate != nil:
		patch := Diff(t.initial, t.values)
		call = func() Outcome { return t.cfg.OnUpdate(ctx, rowID, patch) }
	default:
		t.mu.Unlock()
		return Outcome{}, fmt.Errorf("%w: no %s callback", ErrInvalidConfig, mode)
	}
	t.saving = true
	t.mu.Unlock()

	out := call()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.saving = false

	if !out.OK {
		t.applyErrors(out)
		t.log.Debug("submit failed",
			zap.String("table", t.cfg.Title),
			zap.String("mode", mode.String()),
			zap.String("form_error", t.formError))
		t.toastError(out)
		return out, nil
	}

	t.close()
	if out.Message != "" && t.cfg.Toaster != nil {
		t.cfg.Toaster.Success(out.Message)
	}
	return out, nil
}

// applyErrors 已知欄位的錯誤顯示在欄位下，其他併入 FormError
func (t *Table) applyErrors(out Outcome) {
	res := fielderrors.Split(out.FieldErrors, t.cfg.fieldNames())
	t.errs = res.Fields
	if t.errs == nil {
		t.errs = fielderrors.FieldErrors{}
	}

	formError := out.FormError
	if res.FormError != "" {
		if formError != "" {
			formError += "; "
		}
		formError += res.FormError
	}
	if formError == "" && len(t.errs) == 0 {
		formError = out.Message
		if formError == "" {
			formError = DefaultErrorMessage
		}
	}
	t.formError = formError
}

func (t *Table) toastError(out Outcome) {
	if t.cfg.Toaster == nil {
		return
	}
	msg := out.Message
	if msg == "" {
		msg = DefaultErrorMessage
	}
	t.cfg.Toaster.Error(msg)
}

// FieldErrors 回傳欄位錯誤與表單錯誤
func (t *Table) FieldErrors() (map[string][]string, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string][]string, len(t.errs))
	for k, v := range t.errs {
		out[k] = append([]string(nil), v...)
	}
	return out, t.formError
}

// Saving 是否正在送出
func (t *Table) Saving() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saving || t.deleting
}

// RequestDelete 開啟刪除確認
func (t *Table) RequestDelete(rowID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.findRow(rowID); !ok {
		return fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}
	t.confirmID = rowID
	return nil
}

// PendingDelete 回傳等待確認的 row ID
func (t *Table) PendingDelete() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.confirmID, t.confirmID != ""
}

// DeclineDelete 關閉確認對話框，不呼叫 OnDelete
func (t *Table) DeclineDelete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deleting {
		return
	}
	t.confirmID = ""
}

// ConfirmDelete 呼叫 OnDelete 一次，成功時關閉確認對話框
func (t *Table) ConfirmDelete(ctx context.Context) (Outcome, error) {
	t.mu.Lock()
	if t.deleting {
		t.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	id := t.confirmID
	if id == "" {
		t.mu.Unlock()
		return Outcome{}, ErrNoDelete
	}
	if t.cfg.OnDelete == nil {
		t.mu.Unlock()
		return Outcome{}, fmt.Errorf("%w: no delete callback", ErrInvalidConfig)
	}
	t.deleting = true
	t.mu.Unlock()

	out := t.cfg.OnDelete(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.deleting = false
	if !out.OK {
		t.toastError(out)
		return out, nil
	}
	t.confirmID = ""
	if out.Message != "" && t.cfg.Toaster != nil {
		t.cfg.Toaster.Success(out.Message)
	}
	return out, nil
}

// Close 停止所有計時器，相當於元件卸載
func (t *Table) Close() {
	t.searchDeb.Stop()
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.debouncers {
		d.Stop()
	}
}
