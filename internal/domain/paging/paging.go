package paging

import "math"

const MaxPageSize = 100

// MaxPage bounds the page number accepted at the HTTP edge.
const MaxPage = 1_000_000

// Request is a 1-based page request.
type Request struct {
	Page     int
	PageSize int
}

// Normalize clamps page to >= 1 and page_size to (0, MaxPageSize], using def when unset.
func (r Request) Normalize(def int) Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = def
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset is the number of rows to skip. It saturates at math.MaxInt instead
// of overflowing for huge pages.
func (r Request) Offset() int {
	if r.Page <= 1 || r.PageSize <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// PastEnd reports whether the page starts at or after the last of count rows.
func (r Request) PastEnd(count int64) bool {
	return uint64(r.Offset()) >= uint64(max(count, 0))
}

// Page is one window of a listing. Count is the number of matching rows
// before pagination, so an empty Results past the last page still reports it.
type Page[T any] struct {
	Results  []T   `json:"results"`
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func New[T any](results []T, count int64, r Request) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{Results: results, Count: count, Page: r.Page, PageSize: r.PageSize}
}

// Slice paginates an in-memory list already in final order.
func Slice[T any](all []T, r Request) Page[T] {
	if r.PastEnd(int64(len(all))) {
		return New([]T{}, int64(len(all)), r)
	}
	start := r.Offset()
	n := len(all) - start
	if r.PageSize < n {
		n = max(r.PageSize, 0)
	}
	out := make([]T, n)
	copy(out, all[start:start+n])
	return New(out, int64(len(all)), r)
}
