package httpClient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// HTTP頭部常量
	HeaderTraceID       = "X-Trace-ID"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"

	// 內容類型
	ContentTypeJSON = "application/json"
)

var (
	// ErrUnauthorized 對應 401，呼叫端應導向登入流程
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound 對應 404
	ErrNotFound = errors.New("not found")
)

// Request 定義一次 REST 請求
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body 以 JSON 送出；有 Files 時改以 multipart/form-data 送出
	Body  map[string]any
	Files []FilePart
	// Anonymous 為 true 時不附加 Authorization
	Anonymous bool
}

// FilePart 是 multipart 請求中的檔案欄位
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// Envelope 是後端非分頁回應的標準結構
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// APIError 表示非 2xx 回應
type APIError struct {
	Status  int
	Message string
	Body    []byte
	TraceID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// UserMessage 回傳可直接顯示給使用者的伺服器訊息
func (e *APIError) UserMessage() string {
	return e.Message
}

// Is 讓 errors.Is 可以比對 ErrUnauthorized 與 ErrNotFound
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// newAPIError 從回應內容中取出訊息
func newAPIError(status int, body []byte, traceID string) *APIError {
	apiErr := &APIError{Status: status, Body: body, TraceID: traceID}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"message", "detail", "error"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				apiErr.Message = s
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
