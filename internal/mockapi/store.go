// Package mockapi 是開發用的後端，使用與正式後端相同的 REST 合約，資料只保存在記憶體中。
package mockapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"placement_dashboard/internal/model"
)

// Store 保存一個實體的資料，依 ID 排序
type Store[T model.Entity] struct {
	mu     sync.RWMutex
	items  map[int64]T
	nextID int64
}

// NewStore 創建 Store，seed 中沒有 ID 的資料依序編號
func NewStore[T model.Entity](seed ...T) *Store[T] {
	s := &Store[T]{items: make(map[int64]T)}
	for _, item := range seed {
		id := item.Identifier()
		if id > s.nextID {
			s.nextID = id
		}
		s.items[id] = item
	}
	return s
}

// List 回傳符合搜尋字串的資料，依 ID 由小到大。空字串回傳全部。
func (s *Store[T]) List(search string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if term == "" || matches(item, term) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}

func matches[T model.Entity](item T, term string) bool {
	for _, text := range item.SearchText() {
		if strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

// Get 依 ID 取得資料
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Len 回傳資料筆數
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Create 以 fields 建立資料並配發 ID。check 在配發 ID 前執行，回傳的錯誤會中止建立。
func (s *Store[T]) Create(fields map[string]any, check func(T) map[string][]string) (T, map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	fields["id"] = s.nextID + 1
	item, err := decode[T](fields)
	if err != nil {
		return zero, nil, err
	}
	if errs := s.check(item, check); errs != nil {
		return zero, errs, nil
	}
	s.nextID++
	s.items[s.nextID] = item
	return item, nil, nil
}

// Patch 把 fields 合併到既有資料，只有出現的欄位會改變
func (s *Store[T]) Patch(id int64, fields map[string]any, check func(T) map[string][]string) (T, map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	current, ok := s.items[id]
	if !ok {
		return zero, nil, ErrNotFound
	}
	merged, err := toMap(current)
	if err != nil {
		return zero, nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged["id"] = id

	item, err := decode[T](merged)
	if err != nil {
		return zero, nil, err
	}
	if errs := s.check(item, check); errs != nil {
		return zero, errs, nil
	}
	s.items[id] = item
	return item, nil, nil
}

// check 執行 check 與名稱唯一性檢查，需持有鎖
func (s *Store[T]) check(item T, check func(T) map[string][]string) map[string][]string {
	errs := map[string][]string{}
	if check != nil {
		for k, v := range check(item) {
			errs[k] = append(errs[k], v...)
		}
	}

	name, ok := nameOf(item)
	if ok && name != "" {
		for id, other := range s.items {
			if id == item.Identifier() {
				continue
			}
			if n, _ := nameOf(other); strings.EqualFold(n, name) {
				errs["name"] = append(errs["name"], "A record with this name already exists.")
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Delete 刪除資料
func (s *Store[T]) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return out, nil
}

func decode[T any](fields map[string]any) (T, error) {
	var item T
	raw, err := json.Marshal(fields)
	if err != nil {
		return item, fmt.Errorf("marshal fields: %w", err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decode %T: %w", item, err)
	}
	return item, nil
}

// nameOf 取出 json 的 name 欄位
func nameOf(v any) (string, bool) {
	m, err := toMap(v)
	if err != nil {
		return "", false
	}
	name, ok := m["name"].(string)
	return name, ok
}
