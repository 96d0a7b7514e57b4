package paginate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type plan struct {
	Name string
}

func plans(n int) []plan {
	out := make([]plan, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Basic %d", i)
		if i <= 3 {
			name = fmt.Sprintf("Premium %d", i)
		}
		out = append(out, plan{Name: name})
	}
	return out
}

func matchPlan(p plan, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}

func TestClientPaginatedScenario(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context) ([]plan, error) {
		calls++
		return plans(15), nil
	}
	ctx := context.Background()
	c := NewClient(fetch, matchPlan, WithPerPage(10))
	c.Load(ctx)

	s := c.Snapshot()
	assert.Len(t, s.Items, 10)
	assert.Equal(t, 15, s.Count)
	assert.True(t, s.HasNext)
	assert.False(t, s.HasPrev)

	c.SetPage(ctx, 2)
	s = c.Snapshot()
	assert.Len(t, s.Items, 5)
	assert.False(t, s.HasNext)
	assert.True(t, s.HasPrev)

	c.SetSearch(ctx, " premium ")
	s = c.Snapshot()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 3, s.Count)
	assert.Len(t, s.Items, 3)
	assert.False(t, s.HasNext)

	// 搜尋只在本地進行
	c.Load(ctx)
	assert.Equal(t, 1, calls)

	c.Refresh(ctx)
	assert.Equal(t, 2, calls)
}

func TestClientPaginatedFailure(t *testing.T) {
	ok := true
	fetch := func(ctx context.Context) ([]plan, error) {
		if ok {
			return plans(4), nil
		}
		return nil, errors.New("boom")
	}
	ctx := context.Background()
	c := NewClient(fetch, matchPlan)
	c.Load(ctx)
	assert.Equal(t, 4, c.Snapshot().Count)

	ok = false
	c.Refresh(ctx)
	s := c.Snapshot()
	assert.Zero(t, s.Count)
	assert.Empty(t, s.Items)
	assert.False(t, s.HasNext)
	assert.False(t, s.HasPrev)
}

func TestClientPaginatedClampsPageAfterShrink(t *testing.T) {
	n := 11
	fetch := func(ctx context.Context) ([]plan, error) {
		return plans(n), nil
	}
	ctx := context.Background()
	c := NewClient(fetch, matchPlan, WithPerPage(10))
	c.Load(ctx)
	c.SetPage(ctx, 2)
	assert.Len(t, c.Snapshot().Items, 1)

	// 刪除第二頁唯一的一筆
	n = 10
	c.Refresh(ctx)
	s := c.Snapshot()
	assert.Equal(t, 1, s.Page)
	assert.Len(t, s.Items, 10)
	assert.Equal(t, 10, s.Count)
	assert.False(t, s.HasPrev)
	assert.False(t, s.HasNext)

	n = 0
	c.Refresh(ctx)
	s = c.Snapshot()
	assert.Equal(t, 1, s.Page)
	assert.Empty(t, s.Items)
}

func TestPagerSearch(t *testing.T) {
	ctx := context.Background()
	var pagers []Pager[plan]
	pagers = append(pagers,
		NewClient(func(ctx context.Context) ([]plan, error) { return plans(3), nil }, matchPlan, WithPerPage(5)),
		New(func(ctx context.Context, q Query) (*Response[plan], error) {
			return &Response[plan]{}, nil
		}, WithPerPage(5)),
	)
	for _, p := range pagers {
		p.SetSearch(ctx, "  premium ")
		assert.Equal(t, "premium", p.Search())
		assert.Equal(t, 5, p.PerPage())
	}
}

func TestContainsFold(t *testing.T) {
	m := ContainsFold("Jakarta", "ID")
	assert.True(t, m("jak"))
	assert.True(t, m("id"))
	assert.False(t, m("bandung"))
}
