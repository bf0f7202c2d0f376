// Package browse implements the search-and-paginate controller behind
// every admin grid and storefront list: a debounced free-text term,
// facet filters, and either replace-per-page or load-more accumulation.
package browse

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"artconsole/internal/transport"
)

// DefaultDebounce is the quiet interval before a typed term becomes
// the effective query term.
const DefaultDebounce = 500 * time.Millisecond

// Query is what one fetch asks the backend for.
type Query struct {
	Term    string
	Facets  map[string]string
	Page    int
	PerPage int
}

// Params serializes the query, omitting empty values rather than
// sending them as empty strings.
func (q Query) Params() url.Values {
	params := url.Values{}
	if q.Term != "" {
		params.Set("search", q.Term)
	}
	for k, v := range q.Facets {
		if v != "" {
			params.Set(k, v)
		}
	}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return params
}

// FetchFunc issues one page fetch. Implementations come from the
// per-entity API modules.
type FetchFunc[T any] func(ctx context.Context, q Query) (transport.Page[T], error)

type Option[T any] func(*Controller[T])

func WithDebounce[T any](d time.Duration) Option[T] {
	return func(c *Controller[T]) { c.debounce = d }
}

func WithPerPage[T any](n int) Option[T] {
	return func(c *Controller[T]) { c.perPage = n }
}

// WithOnChange registers a callback invoked after every state change,
// outside the controller lock. UIs hang their re-render here.
func WithOnChange[T any](fn func()) Option[T] {
	return func(c *Controller[T]) { c.onChange = fn }
}

// Controller owns one list view's state. Every fetch is tagged with a
// generation counter; a response whose generation is no longer current
// is discarded, so a slow response to a stale term can never overwrite
// a newer term's results.
type Controller[T any] struct {
	mu sync.Mutex

	fetch    FetchFunc[T]
	debounce time.Duration
	perPage  int
	onChange func()

	ctx    context.Context
	cancel context.CancelFunc

	rawTerm string
	term    string
	facets  map[string]string
	timer   *time.Timer

	gen      uint64
	inFlight bool
	closed   bool

	items       []T
	currentPage int
	lastPage    int
	total       int
	errMsg      string
}

func NewController[T any](fetch FetchFunc[T], opts ...Option[T]) *Controller[T] {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T]{
		fetch:    fetch,
		debounce: DefaultDebounce,
		facets:   make(map[string]string),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start issues the initial page-1 fetch (the mount event).
func (c *Controller[T]) Start() {
	c.mu.Lock()
	c.refreshLocked()
	c.mu.Unlock()
}

// SetTerm records a keystroke. The raw term updates immediately; the
// effective term (and the fetch it triggers) only after the debounce
// interval passes without further keystrokes.
func (c *Controller[T]) SetTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.rawTerm = term
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.commitTerm(term)
	})
}

func (c *Controller[T]) commitTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || term != c.rawTerm || term == c.term {
		return
	}
	c.term = term
	c.refreshLocked()
}

// SetFacet sets or clears (empty value) a facet filter and refetches
// immediately.
func (c *Controller[T]) SetFacet(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if value == "" {
		delete(c.facets, key)
	} else {
		c.facets[key] = value
	}
	c.refreshLocked()
}

// Refresh re-issues the page-1 replace fetch; also the retry
// affordance after a failed fetch.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.refreshLocked()
}

// refreshLocked starts a replace fetch for page 1 under a fresh
// generation, invalidating any fetch still in flight.
func (c *Controller[T]) refreshLocked() {
	c.gen++
	gen := c.gen
	c.inFlight = true
	c.errMsg = ""
	q := c.queryLocked(1)

	go func() {
		page, err := c.fetch(c.ctx, q)
		c.apply(gen, page, err, false)
	}()
}

// LoadMore fetches the next page and appends it. It is a no-op while
// any fetch is in flight and on the last page: no request is issued.
func (c *Controller[T]) LoadMore() bool {
	c.mu.Lock()
	if c.closed || c.inFlight || !c.hasMoreLocked() {
		c.mu.Unlock()
		return false
	}
	gen := c.gen
	c.inFlight = true
	c.errMsg = ""
	q := c.queryLocked(c.currentPage + 1)
	c.mu.Unlock()

	go func() {
		page, err := c.fetch(c.ctx, q)
		c.apply(gen, page, err, true)
	}()
	return true
}

// apply reconciles a fetch result. Results from an older generation or
// a closed controller are dropped on the floor.
func (c *Controller[T]) apply(gen uint64, page transport.Page[T], err error, appending bool) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.inFlight = false
	if err != nil {
		if !appending {
			// A failed replace fetch clears the set; a failed
			// load-more leaves the accumulated set intact.
			c.items = nil
			c.currentPage = 0
			c.lastPage = 0
			c.total = 0
		}
		c.errMsg = err.Error()
	} else {
		if appending {
			c.items = append(c.items, page.Data...)
		} else {
			c.items = page.Data
		}
		c.currentPage = page.CurrentPage
		c.lastPage = page.LastPage
		c.total = page.Total
	}
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (c *Controller[T]) queryLocked(page int) Query {
	facets := make(map[string]string, len(c.facets))
	for k, v := range c.facets {
		facets[k] = v
	}
	return Query{Term: c.term, Facets: facets, Page: page, PerPage: c.perPage}
}

func (c *Controller[T]) hasMoreLocked() bool {
	return c.currentPage < c.lastPage
}

// Items returns the visible result set.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Controller[T]) RawTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rawTerm
}

// Term returns the effective (debounced) query term.
func (c *Controller[T]) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Controller[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMoreLocked()
}

func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Err returns the inline error message from the last failed fetch.
func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Close cancels in-flight work. No result is applied after Close, so
// a navigated-away view never sees a dangling update.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.cancel()
}
