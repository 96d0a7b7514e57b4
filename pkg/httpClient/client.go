package httpClient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"placement_dashboard/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient 定義HTTP客戶端接口
type HTTPClient interface {
	// Get 發送GET請求，回應以 JSON 解碼到 out
	Get(ctx context.Context, path string, query url.Values, out any) error

	// Post 發送POST請求
	Post(ctx context.Context, path string, body map[string]any, out any) error

	// Patch 發送PATCH請求，只包含變更的欄位
	Patch(ctx context.Context, path string, body map[string]any, out any) error

	// Delete 發送DELETE請求
	Delete(ctx context.Context, path string, out any) error

	// Do 發送自定義請求
	Do(ctx context.Context, req *Request, out any) error
}

// TokenSource 提供 Bearer token，沒有登入時回傳空字串
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc 讓函數實作 TokenSource
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client 實現HTTPClient接口
type Client struct {
	client  *http.Client
	baseURL *url.URL
	tokens  TokenSource
	limiter *rate.Limiter
	metrics *Metrics
	logger  logger.Logger
}

// ClientOption 定義客戶端配置選項
type ClientOption func(*Client)

// WithTimeout 設置請求超時時間
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithHTTPClient 使用自訂的 http.Client（測試用）
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTokenSource 設置 token 來源
func WithTokenSource(ts TokenSource) ClientOption {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithRateLimit 限制每秒請求數，perSecond <= 0 表示不限制
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithMetrics 記錄請求指標
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger 設置日誌記錄器
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient 創建新的HTTP客戶端
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing scheme or host", baseURL)
	}

	client := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: u,
		logger:  logger.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Get 實現GET請求
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post 實現POST請求
func (c *Client) Post(ctx context.Context, path string, body map[string]any, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Patch 實現PATCH請求
func (c *Client) Patch(ctx context.Context, path string, body map[string]any, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete 實現DELETE請求
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, out)
}

// Do 實現自定義請求
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	ctx, traceID := EnsureTraceID(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	httpReq, err := c.buildRequest(ctx, req, traceID)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("trace_id", traceID),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	// 讀取響應體
	respBody, err := io.ReadAll(resp.Body)
	c.metrics.observe(req.Method, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request done",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("trace_id", traceID),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, respBody, traceID)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request, traceID string) (*http.Request, error) {
	// 構建URL
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(reqURL.Path, "/") + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		reqURL.RawQuery = req.Query.Encode()
	}

	var (
		reqBody     io.Reader
		contentType string
	)
	switch {
	case len(req.Files) > 0:
		buf, ct, err := encodeMultipart(req.Body, req.Files)
		if err != nil {
			return nil, err
		}
		reqBody, contentType = buf, ct
	case req.Body != nil:
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reqBody, contentType = bytes.NewReader(jsonBody), ContentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL.String(), reqBody)
	if err != nil {
		return nil, err
	}

	// 設置默認頭部
	if contentType != "" {
		httpReq.Header.Set(HeaderContentType, contentType)
	}
	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set(HeaderTraceID, traceID)

	if !req.Anonymous && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("load token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
	}

	// 添加自定義頭部
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// encodeMultipart 將欄位與檔案編碼為 multipart/form-data
func encodeMultipart(fields map[string]any, files []FilePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		if v == nil {
			continue
		}
		if err := w.WriteField(k, formValue(v)); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file field %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", f.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func formValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ",")
	default:
		return fmt.Sprint(t)
	}
}
