package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"placement_dashboard/internal/async"
	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/config"
	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/mockapi"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/httpClient"
	"placement_dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := mockapi.New(mockapi.Options{Secret: []byte("cli-secret"), TokenTTL: time.Hour, Seed: true}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	srv.Start(ctx)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})

	cfg := config.Default()
	cfg.API.BaseURL = ts.URL
	cfg.Chat.URL = "ws" + ts.URL[len("http"):] + "/ws/chat/"

	reg := prometheus.NewRegistry()
	provider := auth.NewProvider(auth.NewMemoryStore())
	client, err := httpClient.NewClient(ts.URL,
		httpClient.WithTokenSource(provider),
		httpClient.WithMetrics(httpClient.NewMetrics(reg)))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &CLI{
		cfg:      cfg,
		log:      logger.NewNop(),
		provider: provider,
		auth:     service.NewAuthService(client, provider),
		catalog:  service.NewCatalog(client),
		client:   client,
		toasts:   &async.Recorder{},
		metrics:  reg,
		out:      out,
	}, out
}

func loggedIn(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	c, out := newTestCLI(t)
	require.NoError(t, c.Run(context.Background(), []string{"login", "admin@placement.dev", "Admin@123"}))
	assert.Contains(t, out.String(), "Signed in as admin@placement.dev (superadmin)")
	out.Reset()
	return c, out
}

func TestRunUsage(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "usage: dashboard")

	err := c.Run(context.Background(), []string{"bogus"})
	assert.ErrorIs(t, err, ErrUsage)

	err = c.Run(context.Background(), []string{"list", "planets"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRequestCount(t *testing.T) {
	c, _ := loggedIn(t)
	assert.Equal(t, float64(1), c.RequestCount())

	require.NoError(t, c.Run(context.Background(), []string{"list", "skills"}))
	assert.Equal(t, float64(2), c.RequestCount())
}

func TestListRequiresLogin(t *testing.T) {
	c, _ := newTestCLI(t)

	err := c.Run(context.Background(), []string{"whoami"})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestListCities(t *testing.T) {
	c, out := loggedIn(t)

	require.NoError(t, c.Run(context.Background(), []string{"list", "cities"}))
	s := out.String()
	assert.Contains(t, s, "Cities")
	assert.Contains(t, s, "Mumbai")
	assert.NotContains(t, s, "Lucknow")
	assert.Contains(t, s, "page 1 of 3, 23 records")
	assert.Contains(t, s, "-page 2 for next")

	out.Reset()
	require.NoError(t, c.Run(context.Background(), []string{"list", "cities", "-page", "3"}))
	assert.Contains(t, out.String(), "Nashik")
	assert.Contains(t, out.String(), "-page 2 for previous")

	out.Reset()
	require.NoError(t, c.Run(context.Background(), []string{"list", "cities", "-search", "nashik"}))
	assert.Contains(t, out.String(), "page 1 of 1, 1 records")
}

func TestCreateUpdateDelete(t *testing.T) {
	c, out := loggedIn(t)
	ctx := context.Background()

	require.NoError(t, c.Run(ctx, []string{"create", "cities", "name=Goa", "state=Goa"}))
	assert.Contains(t, out.String(), "[success] City created successfully")

	out.Reset()
	err := c.Run(ctx, []string{"create", "cities", "name=goa"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "[error]")
	assert.Contains(t, out.String(), "name: A record with this name already exists.")

	out.Reset()
	require.NoError(t, c.Run(ctx, []string{"update", "cities", "1", "state=Maharashtra"}))
	assert.Contains(t, out.String(), "[success] City updated successfully")

	out.Reset()
	require.NoError(t, c.Run(ctx, []string{"list", "cities", "-search", "maharashtra"}))
	assert.Contains(t, out.String(), "Mumbai")

	out.Reset()
	require.NoError(t, c.Run(ctx, []string{"delete", "cities", "24"}))
	assert.Contains(t, out.String(), "[success] City deleted successfully")

	err = c.Run(ctx, []string{"delete", "cities", "24"})
	assert.ErrorIs(t, err, crud.ErrRowNotFound)
}

func TestCreateResolvesSearchSelect(t *testing.T) {
	c, out := loggedIn(t)

	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	require.NoError(t, c.Run(context.Background(), []string{
		"create", "companies",
		"name=Acme", "email=hr@acme.dev", "city=Pune", "is_verified=true", "logo=" + logo,
	}))
	assert.Contains(t, out.String(), "[success] Company created successfully")

	out.Reset()
	require.NoError(t, c.Run(context.Background(), []string{"list", "companies", "-search", "acme"}))
	assert.Contains(t, out.String(), "Pune")
	assert.NotContains(t, out.String(), "#")

	out.Reset()
	err := c.Run(context.Background(), []string{"create", "companies", "name=Beta", "is_verified=maybe"})
	assert.EqualError(t, err, "is_verified: expected true or false")

	err = c.Run(context.Background(), []string{"create", "companies", "colour=red"})
	assert.ErrorIs(t, err, crud.ErrUnknownField)
}

func TestEntities(t *testing.T) {
	c, out := newTestCLI(t)
	require.NoError(t, c.Run(context.Background(), []string{"login", "company@placement.dev", "Company@123"}))
	out.Reset()

	require.NoError(t, c.Run(context.Background(), []string{"entities"}))
	s := out.String()
	assert.Contains(t, s, "ENTITY")
	assert.Regexp(t, `companies\s+Companies\s+server\s+yes`, s)
	assert.Regexp(t, `cities\s+Cities\s+\S+\s+-`, s)
}

func TestChatSendAndHistory(t *testing.T) {
	c, out := loggedIn(t)
	ctx := context.Background()

	require.NoError(t, c.Run(ctx, []string{"chat", "contacts"}))
	assert.Contains(t, out.String(), "Acme Corp")

	out.Reset()
	require.NoError(t, c.Run(ctx, []string{"chat", "send", "3", "hello there"}))
	assert.Contains(t, out.String(), "sent #")

	out.Reset()
	require.NoError(t, c.Run(ctx, []string{"chat", "history", "3"}))
	assert.Regexp(t, `1\s+hello there`, out.String())
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"name=Goa", "note=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, []assignment{
		{name: "name", value: "Goa"},
		{name: "note", value: "a=b"},
		{name: "empty", value: ""},
	}, got)

	_, err = parseAssignments([]string{"broken"})
	assert.ErrorIs(t, err, ErrUsage)
	_, err = parseAssignments([]string{"=x"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "a b", clip(" a\n  b "))
	long := clip(string(bytes.Repeat([]byte("x"), 60)))
	assert.Len(t, long, maxCellWidth)
	assert.True(t, len(long) > 3 && long[len(long)-3:] == "...")
}

func TestRenderTableStates(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, renderTable(out, crud.View{Title: "Skills", Columns: []crud.Column{{Key: "name", Label: "Name"}}, Empty: true}))
	assert.Contains(t, out.String(), "ID  NAME")
	assert.Contains(t, out.String(), crud.EmptyText)

	out.Reset()
	require.NoError(t, renderTable(out, crud.View{Title: "Skills", Skeleton: 2}))
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("...")))
}
