// Package crud 是由設定驅動的列表、搜尋、分頁、新增、編輯、刪除表格控制器，
// 以 View 提供畫面所需的資料。表格本身不修改 rows，也不會自動刷新。
package crud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement_dashboard/internal/async"
	"placement_dashboard/pkg/logger"
)

// FieldType 是表單欄位類型
type FieldType string

const (
	FieldText         FieldType = "text"
	FieldNumber       FieldType = "number"
	FieldTextarea     FieldType = "textarea"
	FieldCheckbox     FieldType = "checkbox"
	FieldFile         FieldType = "file"
	FieldPassword     FieldType = "password"
	FieldSearchSelect FieldType = "search_select"
)

var (
	ErrInvalidConfig = errors.New("crud: invalid config")
	ErrBusy          = errors.New("crud: save in progress")
	ErrModalClosed   = errors.New("crud: modal is closed")
	ErrUnknownField  = errors.New("crud: unknown field")
	ErrRowNotFound   = errors.New("crud: row not found")
	ErrNoDelete      = errors.New("crud: no delete pending")
)

// Option 是 search_select 的選項
type Option struct {
	Label string
	Value string
}

// OptionsFunc 依輸入查詢選項
type OptionsFunc func(ctx context.Context, query string) ([]Option, error)

// Column 是表格欄位
type Column struct {
	Key   string
	Label string
	CSS   string
}

// Field 是表單欄位描述。Min、Max 對數字欄位是數值範圍，對文字欄位是長度。
type Field struct {
	Name         string
	Label        string
	Type         FieldType
	Placeholder  string
	Min          *float64
	Max          *float64
	Required     bool
	FetchOptions OptionsFunc
}

// Bound 用於設定 Field.Min 與 Field.Max
func Bound(v float64) *float64 {
	return &v
}

// Outcome 是新增、更新、刪除回呼的結果
type Outcome struct {
	OK          bool
	Message     string
	FieldErrors map[string][]string
	FormError   string
}

// Pagination 由外部擁有，表格只負責顯示與轉送換頁
type Pagination struct {
	Page       int
	TotalPages int
	Count      int
	HasNext    bool
	HasPrev    bool
}

// Config 是表格設定
type Config struct {
	Title    string
	Subtitle string
	// Entity 用於按鈕與對話框標題，例如 "City"
	Entity  string
	Columns []Column
	Fields  []Field

	OnCreate func(ctx context.Context, values Values) Outcome
	OnUpdate func(ctx context.Context, id string, patch Values) Outcome
	OnDelete func(ctx context.Context, id string) Outcome
	// OnSearch 在搜尋框輸入停止 Debounce 之後被呼叫
	OnSearch func(ctx context.Context, term string)
	// OnPage 轉送換頁
	OnPage func(ctx context.Context, page int)

	Toaster  async.Notifier
	Debounce time.Duration
	Logger   logger.Logger
}

func (c *Config) validate() error {
	if len(c.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field without name", ErrInvalidConfig)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidConfig, f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case FieldText, FieldNumber, FieldTextarea, FieldCheckbox, FieldFile, FieldPassword:
		case FieldSearchSelect:
			if f.FetchOptions == nil {
				return fmt.Errorf("%w: search_select %q without FetchOptions", ErrInvalidConfig, f.Name)
			}
		default:
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidConfig, f.Name, f.Type)
		}
	}
	return nil
}

func (c *Config) field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (c *Config) fieldNames() []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}
