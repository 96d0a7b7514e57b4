package httpClient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ClientTestSuite 定義測試套件
type ClientTestSuite struct {
	suite.Suite
	server  *httptest.Server
	last    *http.Request
	body    []byte
	status  int
	reply   string
	metrics *Metrics
	reg     *prometheus.Registry
	client  *Client
}

// SetupTest 在每個測試前初始化環境
func (s *ClientTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.reply = `{"statusCode":200,"message":"ok"}`
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.last = r
		s.body, _ = io.ReadAll(r.Body)
		w.Header().Set(HeaderContentType, ContentTypeJSON)
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.reply))
	}))

	s.reg = prometheus.NewRegistry()
	s.metrics = NewMetrics(s.reg)

	var err error
	s.client, err = NewClient(s.server.URL+"/api/v1",
		WithTokenSource(TokenFunc(func(ctx context.Context) (string, error) { return "tok-123", nil })),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestGetSendsQueryAuthAndTrace() {
	s.reply = `{"count":1,"data":[{"id":1}]}`
	var out struct {
		Count int `json:"count"`
	}
	ctx := WithTraceID(context.Background(), "trace-1")

	err := s.client.Get(ctx, "cities/", url.Values{"page": {"2"}, "search": {"jak"}}, &out)

	s.Require().NoError(err)
	s.Equal(1, out.Count)
	s.Equal("/api/v1/cities/", s.last.URL.Path)
	s.Equal("2", s.last.URL.Query().Get("page"))
	s.Equal("jak", s.last.URL.Query().Get("search"))
	s.Equal("Bearer tok-123", s.last.Header.Get(HeaderAuthorization))
	s.Equal("trace-1", s.last.Header.Get(HeaderTraceID))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.requests.WithLabelValues(http.MethodGet, "200")))
}

func (s *ClientTestSuite) TestPatchSendsJSON() {
	err := s.client.Patch(context.Background(), "/skills/7/", map[string]any{"name": "Go"}, nil)
	s.Require().NoError(err)

	s.Equal(http.MethodPatch, s.last.Method)
	s.Equal(ContentTypeJSON, s.last.Header.Get(HeaderContentType))
	var sent map[string]any
	s.Require().NoError(json.Unmarshal(s.body, &sent))
	s.Equal(map[string]any{"name": "Go"}, sent)
}

func (s *ClientTestSuite) TestMultipartWhenFilesPresent() {
	req := &Request{
		Method: http.MethodPost,
		Path:   "/companies/",
		Body:   map[string]any{"name": "Acme", "is_active": true, "logo": nil},
		Files:  []FilePart{{Field: "logo", FileName: "logo.png", Content: strings.NewReader("PNG")}},
	}
	s.Require().NoError(s.client.Do(context.Background(), req, nil))

	s.True(strings.HasPrefix(s.last.Header.Get(HeaderContentType), "multipart/form-data"))
	s.Contains(string(s.body), "Acme")
	s.Contains(string(s.body), `filename="logo.png"`)
	s.Contains(string(s.body), "true")
}

func (s *ClientTestSuite) TestErrorResponses() {
	s.status = http.StatusBadRequest
	s.reply = `{"message":"Name already exists","errors":{"name":["taken"]}}`

	err := s.client.Post(context.Background(), "/cities/", map[string]any{"name": "X"}, nil)

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.Equal("Name already exists", apiErr.UserMessage())
	s.Contains(string(apiErr.Body), "taken")
	s.NotEmpty(apiErr.TraceID)

	s.status = http.StatusUnauthorized
	s.reply = `not json`
	err = s.client.Delete(context.Background(), "/cities/1/", nil)
	s.True(errors.Is(err, ErrUnauthorized))
	s.False(errors.Is(err, ErrNotFound))
	s.Contains(err.Error(), "Unauthorized")
}

func (s *ClientTestSuite) TestAnonymousSkipsAuth() {
	err := s.client.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/auth/login/", Anonymous: true}, nil)
	s.Require().NoError(err)
	s.Empty(s.last.Header.Get(HeaderAuthorization))
}

func (s *ClientTestSuite) TestTokenErrorAbortsRequest() {
	client, err := NewClient(s.server.URL, WithTokenSource(TokenFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("store unavailable")
	})))
	s.Require().NoError(err)
	s.last = nil

	err = client.Get(context.Background(), "/cities/", nil, nil)
	s.Error(err)
	s.Nil(s.last)
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("localhost")
	assert.Error(t, err)
	_, err = NewClient("://bad")
	assert.Error(t, err)
}

func TestTraceMiddleware(t *testing.T) {
	var seen string
	h := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetTraceID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderTraceID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderTraceID, "given")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "given", seen)
	assert.Equal(t, "given", w.Header().Get(HeaderTraceID))
}

func TestConfigOptions(t *testing.T) {
	c, err := NewClient("http://example.com", Config{Timeout: 5 * time.Second, RateLimit: 2, RateBurst: 0}.Options()...)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.client.Timeout)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}
