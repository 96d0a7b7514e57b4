// Package admin 組合每個實體的 resource.Hooks 與 crud.Table，相當於管理頁面。
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/model"
)

// Schema 描述一個實體的表格與表單
type Schema struct {
	Title    string
	Subtitle string
	Entity   string
	Columns  []crud.Column
	Fields   []crud.Field
	// Images 是以 ImageCell 顯示的欄位
	Images []string
	// Money 是以兩位小數顯示的欄位
	Money []string
	// Labels 依欄位名稱提供 search_select 的 ID 對應名稱
	Labels map[string]LabelsFunc
}

// LabelsFunc 讀取參照實體的 ID 與名稱
type LabelsFunc func(ctx context.Context) (map[string]string, error)

// Labels 是已讀取的名稱，欄位名稱 → ID → 名稱
type Labels map[string]map[string]string

func (s Schema) has(list []string, key string) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}

func (s Schema) fieldType(name string) (crud.FieldType, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return "", false
}

// RowOf 將實體轉為表格列，欄位以 json 名稱對應。
// search_select 欄位以 labels 中的名稱顯示，找不到時顯示 #ID。
func RowOf[T model.Entity](s Schema, item T, labels Labels) (crud.Row, error) {
	row, _, err := rowOf(s, item, labels)
	return row, err
}

// rowOf 另外回傳找不到名稱的 search_select 欄位
func rowOf[T model.Entity](s Schema, item T, labels Labels) (crud.Row, []string, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return crud.Row{}, nil, fmt.Errorf("marshal %T: %w", item, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return crud.Row{}, nil, fmt.Errorf("unmarshal %T: %w", item, err)
	}

	row := crud.Row{
		ID:    strconv.FormatInt(item.Identifier(), 10),
		Cells: make(map[string]crud.Cell, len(fields)),
	}
	var missing []string
	for key, val := range fields {
		cell, found := s.cellOf(key, val, labels[key])
		if !found {
			missing = append(missing, key)
		}
		row.Cells[key] = cell
	}
	return row, missing, nil
}

// cellOf 回傳 cell；search_select 找不到名稱時 found 為 false
func (s Schema) cellOf(key string, val any, names map[string]string) (cell crud.Cell, found bool) {
	if s.has(s.Images, key) {
		url, _ := val.(string)
		return crud.ImageCell{PreviewURL: url, Alt: key}, true
	}

	switch v := val.(type) {
	case bool:
		return crud.BoolCell{Value: v}, true
	case float64:
		raw := strconv.FormatFloat(v, 'f', -1, 64)
		if s.has(s.Money, key) {
			return crud.RichCell{Text: strconv.FormatFloat(v, 'f', 2, 64), Editable: raw}, true
		}
		if t, ok := s.fieldType(key); ok && t == crud.FieldSearchSelect {
			if v == 0 {
				return crud.RichCell{Text: "-", Editable: ""}, true
			}
			if name, ok := names[raw]; ok {
				return crud.RichCell{Text: name, Editable: raw}, true
			}
			return crud.RichCell{Text: "#" + raw, Editable: raw}, false
		}
		return crud.TextCell{Value: raw}, true
	case string:
		return crud.TextCell{Value: v}, true
	case nil:
		return crud.TextCell{}, true
	}
	return crud.TextCell{Value: fmt.Sprint(val)}, true
}
