// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows per page.
const PageSize = 50

// MaxPageSize caps ?limit=.
const MaxPageSize = 200

// Page is a 1-based page number and a page size.
type Page struct {
	Number int
	Limit  int
}

// Parse reads ?page= and ?limit= from r. Missing or invalid values fall
// back to page 1 and PageSize; limit is clamped to MaxPageSize.
func Parse(r *http.Request) Page {
	p := Page{Number: 1, Limit: PageSize}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n >= 1 {
		p.Limit = min(n, MaxPageSize)
	}
	return p
}

// Skip is the number of rows before this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// SetHeaders exposes the paging window and total to the client.
func (p Page) SetHeaders(w http.ResponseWriter, total int64) {
	h := w.Header()
	h.Set("X-Total-Count", strconv.FormatInt(total, 10))
	h.Set("X-Page", strconv.Itoa(p.Number))
	h.Set("X-Limit", strconv.Itoa(p.Limit))
}
