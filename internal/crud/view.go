package crud

import (
	"sort"
)

const (
	// EmptyText 是沒有資料時唯一一列的內容
	EmptyText = "No record found"
	// SkeletonRows 是讀取中顯示的佔位列數
	SkeletonRows = 5
)

// Actions 是每一列的操作
var Actions = []string{"edit", "delete"}

// View 是表格畫面所需的全部資料
type View struct {
	Title    string
	Subtitle string
	Search   string
	AddLabel string
	Columns  []Column

	// Skeleton 大於 0 時顯示佔位列而不是 Rows
	Skeleton int
	// Empty 為 true 時顯示一列 EmptyText
	Empty bool
	Rows  []RowView

	Pagination *Pagination
	Modal      *ModalView
	Confirm    *ConfirmView
}

// RowView 是一列，Cells 依 Columns 的順序排列
type RowView struct {
	ID      string
	Cells   []Cell
	Actions []string
}

// ModalView 是新增或編輯的對話框
type ModalView struct {
	Title     string
	Mode      Mode
	RowID     string
	Fields    []FieldView
	FormError string
	Saving    bool
}

// FieldView 是表單中的一個欄位
type FieldView struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Required    bool
	// Display 是輸入框中的文字；search_select 在選擇之後顯示標籤
	Display string
	Checked bool
	// Preview 是檔案欄位的預覽網址或檔名
	Preview string
	Options []Option
	Loading bool
	Errors  []string
}

// ConfirmView 是刪除確認對話框
type ConfirmView struct {
	RowID    string
	Message  string
	Deleting bool
}

// View 回傳目前畫面的快照
func (t *Table) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := View{
		Title:    t.cfg.Title,
		Subtitle: t.cfg.Subtitle,
		Search:   t.search,
		AddLabel: "Add " + t.cfg.Entity,
		Columns:  append([]Column(nil), t.cfg.Columns...),
	}
	if t.cfg.Entity == "" {
		v.AddLabel = "Add"
	}
	if t.pagination != nil {
		p := *t.pagination
		v.Pagination = &p
	}

	switch {
	case t.loading:
		v.Skeleton = SkeletonRows
	case len(t.rows) == 0:
		v.Empty = true
	default:
		v.Rows = make([]RowView, len(t.rows))
		for i, r := range t.rows {
			cells := make([]Cell, len(t.cfg.Columns))
			for j, c := range t.cfg.Columns {
				cell := r.Cells[c.Key]
				if cell == nil {
					cell = TextCell{}
				}
				cells[j] = cell
			}
			v.Rows[i] = RowView{ID: r.ID, Cells: cells, Actions: Actions}
		}
	}

	if t.mode != ModeClosed {
		v.Modal = t.modalView()
	}
	if t.confirmID != "" {
		v.Confirm = &ConfirmView{
			RowID:    t.confirmID,
			Message:  "Are you sure you want to delete this record?",
			Deleting: t.deleting,
		}
	}
	return v
}

func (t *Table) modalView() *ModalView {
	title := "Add " + t.cfg.Entity
	if t.mode == ModeUpdate {
		title = "Edit " + t.cfg.Entity
	}

	m := &ModalView{
		Title:     title,
		Mode:      t.mode,
		RowID:     t.rowID,
		FormError: t.formError,
		Saving:    t.saving,
		Fields:    make([]FieldView, len(t.cfg.Fields)),
	}

	for i, f := range t.cfg.Fields {
		fv := FieldView{
			Name:        f.Name,
			Label:       f.Label,
			Type:        f.Type,
			Placeholder: f.Placeholder,
			Required:    f.Required,
			Errors:      append([]string(nil), t.errs[f.Name]...),
		}
		val := t.values[f.Name]
		switch f.Type {
		case FieldCheckbox:
			fv.Checked, _ = val.(bool)
		case FieldFile:
			if file, ok := val.(*File); ok && file != nil {
				fv.Preview = file.PreviewURL
				if file.IsUpload() {
					fv.Preview = file.Name
				}
			}
		case FieldSearchSelect:
			fv.Display = t.displayFor(f.Name)
			if st, ok := t.selects[f.Name]; ok {
				fv.Options = append([]Option(nil), st.options...)
				fv.Loading = st.loading
			}
		case FieldPassword:
			// 密碼不回顯
		default:
			fv.Display, _ = val.(string)
		}
		m.Fields[i] = fv
	}
	return m
}

// ErrorFields 回傳有錯誤的欄位名稱，依字母排序
func (m *ModalView) ErrorFields() []string {
	var out []string
	for _, f := range m.Fields {
		if len(f.Errors) > 0 {
			out = append(out, f.Name)
		}
	}
	sort.Strings(out)
	return out
}
