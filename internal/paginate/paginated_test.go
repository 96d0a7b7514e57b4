package paginate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// fakeServer 模擬一個總數為 total 的後端集合
type fakeServer struct {
	mu    sync.Mutex
	total int
	fail  bool
	calls []Query
}

func (f *fakeServer) fetch(ctx context.Context, q Query) (*Response[int], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.fail {
		return nil, errors.New("backend down")
	}

	start := (q.Page - 1) * q.PerPage
	end := start + q.PerPage
	if end > f.total {
		end = f.total
	}
	data := []int{}
	for i := start; i < end; i++ {
		data = append(data, i)
	}
	resp := &Response[int]{
		StatusCode:  200,
		HasNextPage: end < f.total,
		Count:       f.total,
		Data:        data,
	}
	if q.Page > 1 {
		resp.Previous = strPtr(fmt.Sprintf("http://api/items/?page=%d", q.Page-1))
	}
	return resp, nil
}

func (f *fakeServer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestPaginatedSecondPage(t *testing.T) {
	srv := &fakeServer{total: 23}
	p := New(srv.fetch, WithPerPage(10), WithInitialPage(2))
	p.Load(context.Background())

	s := p.Snapshot()
	assert.Equal(t, 2, s.Page)
	assert.LessOrEqual(t, len(s.Items), 10)
	assert.True(t, s.HasNext)
	assert.True(t, s.HasPrev)
	assert.Equal(t, 23, s.Count)
	assert.Equal(t, 3, s.TotalPages())
	assert.False(t, s.Loading)
}

func TestPaginatedHasPrevFollowsServer(t *testing.T) {
	// 伺服器未回傳 previous 時，即使 page > 1 也不可往前
	fetch := func(ctx context.Context, q Query) (*Response[int], error) {
		return &Response[int]{Count: 5, Data: []int{1, 2, 3, 4, 5}}, nil
	}
	p := New(fetch, WithInitialPage(3))
	p.Load(context.Background())
	assert.False(t, p.HasPrev())
}

func TestPaginatedFailureResetsState(t *testing.T) {
	srv := &fakeServer{total: 23}
	p := New(srv.fetch, WithPerPage(10))
	p.Load(context.Background())
	require.Equal(t, 10, len(p.Items()))

	srv.fail = true
	p.SetPage(context.Background(), 2)

	s := p.Snapshot()
	assert.Equal(t, 2, s.Page)
	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.Zero(t, s.Count)
	assert.False(t, s.HasNext)
	assert.False(t, s.HasPrev)
}

func TestPaginatedSetPageReloadsOnlyOnChange(t *testing.T) {
	srv := &fakeServer{total: 23}
	p := New(srv.fetch, WithPerPage(10))
	ctx := context.Background()

	p.Load(ctx)
	p.SetPage(ctx, 1)
	assert.Equal(t, 1, srv.callCount())

	p.SetPage(ctx, 3)
	assert.Equal(t, 2, srv.callCount())
	assert.Equal(t, []int{20, 21, 22}, p.Items())
	assert.False(t, p.HasNext())

	p.Refresh(ctx)
	assert.Equal(t, 3, srv.callCount())
	assert.Equal(t, 3, p.Page())
}

func TestPaginatedKeyIsExplicitDependency(t *testing.T) {
	srv := &fakeServer{total: 23}
	p := New(srv.fetch, WithPerPage(10), WithInitialPage(2))
	ctx := context.Background()
	p.Load(ctx)

	p.SetKey(ctx, "")
	assert.Equal(t, 1, srv.callCount(), "same key must not reload")

	p.SetKey(ctx, "java")
	assert.Equal(t, 2, srv.callCount())
	assert.Equal(t, Query{Page: 2, PerPage: 10, Key: "java"}, srv.calls[1])

	p.SetSearch(ctx, "  python ")
	assert.Equal(t, 3, srv.callCount())
	assert.Equal(t, Query{Page: 1, PerPage: 10, Key: "python"}, srv.calls[2])

	p.SetSearch(ctx, "python")
	assert.Equal(t, 3, srv.callCount())
}

func TestPaginatedDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fetch := func(ctx context.Context, q Query) (*Response[int], error) {
		if q.Page == 1 {
			close(started)
			<-release
			return &Response[int]{Count: 100, HasNextPage: true, Data: []int{1}}, nil
		}
		return &Response[int]{Count: 12, Previous: strPtr("?page=1"), Data: []int{11, 12}}, nil
	}

	p := New(fetch, WithPerPage(10))
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		p.Load(ctx)
		close(done)
	}()
	<-started
	assert.True(t, p.Loading())

	p.SetPage(ctx, 2)
	close(release)
	<-done

	s := p.Snapshot()
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, []int{11, 12}, s.Items)
	assert.Equal(t, 12, s.Count)
	assert.False(t, s.HasNext)
	assert.True(t, s.HasPrev)
	assert.False(t, s.Loading)
}

func TestPageFromLink(t *testing.T) {
	tests := []struct {
		name   string
		link   *string
		want   int
		wantOK bool
	}{
		{"Nil", nil, 0, false},
		{"Empty", strPtr(""), 0, false},
		{"WithPage", strPtr("http://api/cities/?page=3&page_size=10"), 3, true},
		{"FirstPageOmitted", strPtr("http://api/cities/?page_size=10"), 1, true},
		{"Invalid", strPtr("http://api/cities/?page=abc"), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PageFromLink(tc.link)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
