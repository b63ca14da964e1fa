package tripdata

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/opsdeck/opsdeck/internal/grid"
)

// Query describes one page request against a source: pagination plus the
// filter and sort state the grid holds.
type Query struct {
	Page         int
	PageSize     int
	GlobalFilter string
	Filters      []grid.Filter
	Sort         *grid.SortSpec
}

// Page is one page of results with the total row count after filtering,
// which pagination needs to compute the page count.
type Page struct {
	Rows  []grid.Row
	Total int
}

// Source supplies rows to a grid.
//
// An eager source returns its full row set and the grid pipeline filters
// and sorts client-side. A lazy source applies the query itself and
// returns exactly one page; the pipeline passes its rows through.
type Source interface {
	ID() string
	Lazy() bool
	Fetch(ctx context.Context, q Query) (Page, error)
}

// ---- Eager in-memory source ----

// StaticSource serves a fixed in-memory row set eagerly. Mutations from
// editable cells write back into the row set.
type StaticSource struct {
	id   string
	rows []grid.Row
	key  grid.RowKeyFunc
}

// NewStaticSource creates an eager source over the given rows.
func NewStaticSource(id string, rows []grid.Row, key grid.RowKeyFunc) *StaticSource {
	return &StaticSource{id: id, rows: rows, key: key}
}

func (s *StaticSource) ID() string { return s.id }

func (s *StaticSource) Lazy() bool { return false }

// Fetch returns every row; paging happens downstream of the pipeline.
func (s *StaticSource) Fetch(_ context.Context, _ Query) (Page, error) {
	rows := make([]grid.Row, len(s.rows))
	copy(rows, s.rows)
	return Page{Rows: rows, Total: len(rows)}, nil
}

// UpdateCell writes an edited cell value back to the row with the given
// key. It reports whether a row matched.
func (s *StaticSource) UpdateCell(rowKey, column string, value any) bool {
	for _, row := range s.rows {
		if s.key(row) == rowKey {
			row[column] = value
			return true
		}
	}
	return false
}

// ---- Lazy fetching source with a page cache ----

// FetchFunc loads one page from the backing service.
type FetchFunc func(ctx context.Context, q Query) (Page, error)

// LazySource serves server-processed pages and memoizes them in an LRU
// cache keyed by the full query, so paging back and forth does not
// refetch.
type LazySource struct {
	id    string
	fetch FetchFunc
	cache *lru.Cache
}

// NewLazySource creates a lazy source over fetch with room for cacheSize
// cached pages.
func NewLazySource(id string, cacheSize int, fetch FetchFunc) (*LazySource, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &LazySource{id: id, fetch: fetch, cache: cache}, nil
}

func (s *LazySource) ID() string { return s.id }

func (s *LazySource) Lazy() bool { return true }

func (s *LazySource) Fetch(ctx context.Context, q Query) (Page, error) {
	key := queryKey(q)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(Page), nil
	}
	page, err := s.fetch(ctx, q)
	if err != nil {
		return Page{}, err
	}
	s.cache.Add(key, page)
	return page, nil
}

// Invalidate drops every cached page, for use after a mutation.
func (s *LazySource) Invalidate() {
	s.cache.Purge()
}

// queryKey builds a stable cache key from every query dimension.
func queryKey(q Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "p=%d|s=%d|g=%s", q.Page, q.PageSize, strings.ToLower(q.GlobalFilter))
	for _, f := range q.Filters {
		fmt.Fprintf(&b, "|f=%s:%s:%v", f.Column, f.Operator, f.Value)
	}
	if q.Sort != nil {
		fmt.Fprintf(&b, "|o=%s:%s", q.Sort.Column, q.Sort.Direction)
	}
	return b.String()
}
