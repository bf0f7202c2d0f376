package browse

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artconsole/internal/transport"
)

func pageOf(items []string, current, last int) transport.Page[string] {
	return transport.Page[string]{
		Data:        items,
		CurrentPage: current,
		LastPage:    last,
		Total:       len(items) * last,
		PerPage:     len(items),
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never held")
}

func TestController_StartFetchesFirstPage(t *testing.T) {
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		return pageOf([]string{"a", "b"}, 1, 1), nil
	}
	c := NewController(fetch)
	defer c.Close()

	c.Start()
	waitFor(t, func() bool { return !c.Loading() })
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.False(t, c.HasMore())
}

func TestController_DebounceCollapsesKeystrokes(t *testing.T) {
	var mu sync.Mutex
	var terms []string
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		mu.Lock()
		terms = append(terms, q.Term)
		mu.Unlock()
		return pageOf(nil, 1, 1), nil
	}
	c := NewController(fetch, WithDebounce[string](20*time.Millisecond))
	defer c.Close()

	c.SetTerm("h")
	c.SetTerm("ha")
	c.SetTerm("harbor")
	assert.Equal(t, "harbor", c.RawTerm(), "raw term updates per keystroke")
	assert.Empty(t, c.Term(), "effective term waits for the quiet interval")

	waitFor(t, func() bool { return c.Term() == "harbor" })
	waitFor(t, func() bool { return !c.Loading() })

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"harbor"}, terms, "intermediate keystrokes never reach the backend")
}

func TestController_DebounceSkipsUnchangedTerm(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return pageOf(nil, 1, 1), nil
	}
	c := NewController(fetch, WithDebounce[string](10*time.Millisecond))
	defer c.Close()

	c.SetTerm("harbor")
	waitFor(t, func() bool { return c.Term() == "harbor" })
	waitFor(t, func() bool { return !c.Loading() })

	// Same term again: the debounce fires but no fetch is issued.
	c.SetTerm("harbor")
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	first := make(chan struct{})
	second := make(chan struct{})
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-first
			return pageOf([]string{"stale"}, 1, 1), nil
		}
		<-second
		return pageOf([]string{"fresh"}, 1, 1), nil
	}
	c := NewController(fetch)
	defer c.Close()

	c.Start()   // generation 1, held
	c.Refresh() // generation 2, held

	close(second)
	waitFor(t, func() bool {
		items := c.Items()
		return len(items) == 1 && items[0] == "fresh"
	})

	// The older fetch finishes afterwards; its result must not land.
	close(first)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"fresh"}, c.Items())
}

func TestController_LoadMoreAppends(t *testing.T) {
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		switch q.Page {
		case 1:
			return pageOf([]string{"a"}, 1, 2), nil
		case 2:
			return pageOf([]string{"b"}, 2, 2), nil
		}
		return transport.Page[string]{}, errors.New("unexpected page")
	}
	c := NewController(fetch)
	defer c.Close()

	c.Start()
	waitFor(t, func() bool { return !c.Loading() })
	require.Equal(t, []string{"a"}, c.Items())
	require.True(t, c.HasMore())

	assert.True(t, c.LoadMore())
	waitFor(t, func() bool { return !c.Loading() })
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.False(t, c.HasMore())

	assert.False(t, c.LoadMore(), "no request past the last page")
}

func TestController_LoadMoreNoOpWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-release
		}
		return pageOf([]string{"a"}, 1, 2), nil
	}
	c := NewController(fetch)
	defer c.Close()

	c.Start()
	assert.False(t, c.LoadMore(), "in-flight fetch blocks load-more")

	close(release)
	waitFor(t, func() bool { return !c.Loading() })
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestController_ReplaceFailureClearsSet(t *testing.T) {
	var fail atomic.Bool
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		if fail.Load() {
			return transport.Page[string]{}, errors.New("backend down")
		}
		return pageOf([]string{"a"}, 1, 1), nil
	}
	c := NewController(fetch)
	defer c.Close()

	c.Start()
	waitFor(t, func() bool { return len(c.Items()) == 1 })

	fail.Store(true)
	c.Refresh()
	waitFor(t, func() bool { return c.Err() != "" })
	assert.Empty(t, c.Items())
	assert.Equal(t, "backend down", c.Err())

	// Retry affordance: a successful refresh clears the error.
	fail.Store(false)
	c.Refresh()
	waitFor(t, func() bool { return len(c.Items()) == 1 })
	assert.Empty(t, c.Err())
}

func TestController_LoadMoreFailureKeepsSet(t *testing.T) {
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		if q.Page > 1 {
			return transport.Page[string]{}, errors.New("backend down")
		}
		return pageOf([]string{"a"}, 1, 2), nil
	}
	c := NewController(fetch)
	defer c.Close()

	c.Start()
	waitFor(t, func() bool { return len(c.Items()) == 1 })

	require.True(t, c.LoadMore())
	waitFor(t, func() bool { return c.Err() != "" })
	assert.Equal(t, []string{"a"}, c.Items(), "accumulated set survives a failed load-more")
}

func TestController_FacetsTriggerImmediateRefetch(t *testing.T) {
	var mu sync.Mutex
	var queries []Query
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		return pageOf(nil, 1, 1), nil
	}
	c := NewController(fetch)
	defer c.Close()

	c.SetFacet("status", "published")
	waitFor(t, func() bool { return !c.Loading() })

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, queries, 1)
	assert.Equal(t, "published", queries[0].Facets["status"])
	assert.Equal(t, 1, queries[0].Page)
}

func TestController_CloseDropsResults(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, q Query) (transport.Page[string], error) {
		<-release
		return pageOf([]string{"late"}, 1, 1), nil
	}
	changed := make(chan struct{}, 10)
	c := NewController(fetch, WithOnChange[string](func() { changed <- struct{}{} }))

	c.Start()
	c.Close()
	close(release)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, c.Items())
	select {
	case <-changed:
		t.Fatal("onChange fired after Close")
	default:
	}
}

func TestQuery_Params(t *testing.T) {
	q := Query{
		Term:    "harbor",
		Facets:  map[string]string{"status": "published", "featured": ""},
		Page:    3,
		PerPage: 25,
	}
	params := q.Params()

	assert.Equal(t, "harbor", params.Get("search"))
	assert.Equal(t, "published", params.Get("status"))
	assert.False(t, params.Has("featured"), "empty facets are omitted")
	assert.Equal(t, "3", params.Get("page"))
	assert.Equal(t, "25", params.Get("per_page"))

	assert.Empty(t, Query{Page: 1}.Params(), "page 1 and empty term produce no params")
}
