// Package fielderrors 從伺服器的驗證錯誤回應中取出欄位錯誤。
package fielderrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"placement_dashboard/pkg/httpClient"
)

// FieldErrors 以欄位名稱對應錯誤訊息
type FieldErrors map[string][]string

// Result 是分類後的錯誤：已知欄位的錯誤與無法對應欄位的一般錯誤
type Result struct {
	Fields    FieldErrors
	FormError string
}

// HasFieldErrors 是否含有任何欄位或表單錯誤
func (r Result) HasFieldErrors() bool {
	return len(r.Fields) > 0 || r.FormError != ""
}

// 這些鍵屬於回應外殼而非欄位
var envelopeKeys = map[string]bool{
	"statusCode": true,
	"status":     true,
	"success":    true,
	"code":       true,
	"message":    true,
	"error":      true,
	"errorCode":  true,
}

// 這些鍵的訊息一律當作一般錯誤
var generalKeys = map[string]bool{
	"non_field_errors": true,
	"detail":           true,
	"__all__":          true,
}

// Extract 從錯誤中取出欄位錯誤，known 為表單中存在的欄位
func Extract(err error, known []string) Result {
	var apiErr *httpClient.APIError
	if !errors.As(err, &apiErr) {
		return Result{}
	}
	return Parse(apiErr.Body, known)
}

// Parse 解析回應內容。支援 {"errors": {...}}、{"data": {...}} 與平鋪的 {field: [...]}。
func Parse(body []byte, known []string) Result {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{}
	}

	raw, flat := payload, true
	for _, wrapper := range []string{"errors", "data"} {
		if inner, ok := payload[wrapper]; ok {
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(inner, &nested); err == nil {
				raw, flat = nested, false
				break
			}
		}
	}

	collected := map[string][]string{}
	for key, value := range raw {
		if flat && envelopeKeys[key] {
			continue
		}
		if msgs := messages(value); len(msgs) > 0 {
			collected[key] = msgs
		}
	}

	return Split(collected, known)
}

// Split 將錯誤分成已知欄位與一般錯誤，未知欄位的訊息串接為 FormError
func Split(collected map[string][]string, known []string) Result {
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	res := Result{}
	var general []string

	keys := make([]string, 0, len(collected))
	for k := range collected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		msgs := collected[key]
		switch {
		case knownSet[key] && !generalKeys[key]:
			if res.Fields == nil {
				res.Fields = FieldErrors{}
			}
			res.Fields[key] = append(res.Fields[key], msgs...)
		case generalKeys[key]:
			general = append(general, msgs...)
		default:
			for _, m := range msgs {
				general = append(general, fmt.Sprintf("%s: %s", key, m))
			}
		}
	}

	res.FormError = strings.Join(general, "; ")
	return res
}

// messages 將單一錯誤值轉為字串清單，支援字串、字串陣列與巢狀物件
func messages(value json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(value, &list); err == nil {
		var out []string
		for _, item := range list {
			out = append(out, messages(item)...)
		}
		return out
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(value, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, messages(obj[k])...)
		}
		return out
	}
	return nil
}

// Clear 移除欄位的錯誤（使用者開始編輯該欄位時）
func (f FieldErrors) Clear(field string) {
	delete(f, field)
}
