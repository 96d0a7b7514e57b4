// Package service 是每個實體 REST 端點的薄包裝。
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/model"
	"placement_dashboard/internal/paginate"
	"placement_dashboard/pkg/httpClient"

	"github.com/gorilla/schema"
)

// ListParams 是列表端點的查詢參數
type ListParams struct {
	Page     int    `schema:"page,omitempty"`
	PageSize int    `schema:"page_size,omitempty"`
	Search   string `schema:"search,omitempty"`
}

var queryEncoder = schema.NewEncoder()

// Query 將參數編碼為 url.Values，空值不送出
func (p ListParams) Query() (url.Values, error) {
	values := url.Values{}
	if err := queryEncoder.Encode(p, values); err != nil {
		return nil, fmt.Errorf("encode list params: %w", err)
	}
	return values, nil
}

// Payload 是新增或更新的內容，有 Files 時以 multipart 送出
type Payload struct {
	Fields map[string]any
	Files  []httpClient.FilePart
}

// Saved 是變更成功後的回應
type Saved[T any] struct {
	Message string
	Data    *T
}

// fetchAllPageSize 是 ListAll 每次讀取的筆數
const fetchAllPageSize = 100

// REST 對應一個實體的集合端點
type REST[T any] struct {
	client httpClient.HTTPClient
	kind   model.Kind
}

// NewREST 創建實體服務
func NewREST[T any](client httpClient.HTTPClient, kind model.Kind) *REST[T] {
	return &REST[T]{client: client, kind: kind}
}

// Kind 回傳實體種類
func (r *REST[T]) Kind() model.Kind {
	return r.kind
}

// List 讀取一頁
func (r *REST[T]) List(ctx context.Context, params ListParams) (*paginate.Response[T], error) {
	query, err := params.Query()
	if err != nil {
		return nil, err
	}

	var resp paginate.Response[T]
	if err := r.client.Get(ctx, r.kind.Path(), query, &resp); err != nil {
		return nil, r.wrap("list", err)
	}
	return &resp, nil
}

// ListAll 逐頁讀取整個集合，供客戶端分頁的實體使用
func (r *REST[T]) ListAll(ctx context.Context) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		resp, err := r.List(ctx, ListParams{Page: page, PageSize: fetchAllPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if !resp.HasNextPage || len(resp.Data) == 0 {
			break
		}
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

// Create 新增一筆
func (r *REST[T]) Create(ctx context.Context, payload Payload) (*Saved[T], error) {
	saved, err := r.send(ctx, http.MethodPost, r.kind.Path(), payload)
	if err != nil {
		return nil, r.wrap("create", err)
	}
	return saved, nil
}

// Update 以 PATCH 送出變更的欄位
func (r *REST[T]) Update(ctx context.Context, id int64, payload Payload) (*Saved[T], error) {
	saved, err := r.send(ctx, http.MethodPatch, r.itemPath(id), payload)
	if err != nil {
		return nil, r.wrap("update", err)
	}
	return saved, nil
}

// Delete 刪除一筆並回傳伺服器訊息
func (r *REST[T]) Delete(ctx context.Context, id int64) (string, error) {
	var env httpClient.Envelope
	if err := r.client.Delete(ctx, r.itemPath(id), &env); err != nil {
		return "", r.wrap("delete", err)
	}
	return env.Message, nil
}

func (r *REST[T]) send(ctx context.Context, method, path string, payload Payload) (*Saved[T], error) {
	body := payload.Fields
	if body == nil {
		body = map[string]any{}
	}

	var env httpClient.Envelope
	req := &httpClient.Request{Method: method, Path: path, Body: body, Files: payload.Files}
	if err := r.client.Do(ctx, req, &env); err != nil {
		return nil, err
	}

	saved := &Saved[T]{Message: env.Message}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var data T
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", r.kind, err)
		}
		saved.Data = &data
	}
	return saved, nil
}

func (r *REST[T]) itemPath(id int64) string {
	return r.kind.Path() + strconv.FormatInt(id, 10) + "/"
}

// wrap 為錯誤加上操作名稱，401 同時對應 auth.ErrUnauthenticated
func (r *REST[T]) wrap(op string, err error) error {
	if errors.Is(err, httpClient.ErrUnauthorized) {
		return fmt.Errorf("%s %s: %w: %w", op, r.kind, auth.ErrUnauthenticated, err)
	}
	return fmt.Errorf("%s %s: %w", op, r.kind, err)
}
