package crud

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SearchOptions 更新 search_select 的輸入文字，停止輸入 Debounce 之後呼叫 FetchOptions 一次。
// 輸入文字會取代已選選項的標籤顯示。
func (t *Table) SearchOptions(ctx context.Context, name, query string) error {
	t.mu.Lock()
	f, ok := t.cfg.field(name)
	if !ok || f.Type != FieldSearchSelect {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s is not a search_select", ErrUnknownField, name)
	}
	if t.mode == ModeClosed {
		t.mu.Unlock()
		return ErrModalClosed
	}

	st := t.selectFor(name)
	st.query = query
	st.label = ""
	st.seq++
	seq := st.seq
	st.loading = true
	deb := t.debouncers[name]
	t.mu.Unlock()

	deb.Trigger(func() {
		options, err := f.FetchOptions(ctx, query)

		t.mu.Lock()
		defer t.mu.Unlock()
		cur := t.selects[name]
		// 對話框已關閉或有更新的輸入
		if cur != st || cur.seq != seq {
			return
		}
		cur.loading = false
		if err != nil {
			t.log.Warn("fetch options failed", zap.String("field", name), zap.Error(err))
			cur.options = nil
			cur.err = err.Error()
			return
		}
		cur.options = options
		cur.err = ""
	})
	return nil
}

// SelectOption 選擇選項：表單值存原始值，輸入框顯示標籤直到再次輸入
func (t *Table) SelectOption(name string, opt Option) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, ok := t.cfg.field(name)
	if !ok || f.Type != FieldSearchSelect {
		return fmt.Errorf("%w: %s is not a search_select", ErrUnknownField, name)
	}
	if t.mode == ModeClosed {
		return ErrModalClosed
	}

	t.debouncers[name].Cancel()
	st := t.selectFor(name)
	st.seq++
	st.query = ""
	st.label = opt.Label
	st.options = nil
	st.loading = false
	st.err = ""

	t.values[name] = opt.Value
	t.errs.Clear(name)
	return nil
}

// Options 回傳 search_select 目前的選項
func (t *Table) Options(name string) []Option {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.selects[name]
	if !ok {
		return nil
	}
	return append([]Option(nil), st.options...)
}

// displayFor 是 search_select 輸入框顯示的文字，呼叫端持有鎖
func (t *Table) displayFor(name string) string {
	st, ok := t.selects[name]
	if !ok {
		if s, ok := t.values[name].(string); ok {
			return s
		}
		return ""
	}
	if st.label != "" {
		return st.label
	}
	return st.query
}

func (t *Table) selectFor(name string) *selectState {
	st, ok := t.selects[name]
	if !ok {
		st = &selectState{}
		t.selects[name] = st
	}
	return st
}
