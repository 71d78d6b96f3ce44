package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain/search/filter"
)

// MaxQueryLength is the maximum allowed search query length.
const MaxQueryLength = 512

// Request is a validated search query plus its filters.
type Request struct {
	query   string
	filters filter.Set
}

// New validates search parameters. The query is kept verbatim;
// a blank query selects every record before filters apply.
func New(query string, filters filter.Set) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	return Request{query: query, filters: filters}, nil
}

// Query returns the query text as given.
func (r *Request) Query() string { return r.query }

// HasQuery reports whether the request narrows by query text.
func (r *Request) HasQuery() bool { return strings.TrimSpace(r.query) != "" }

// Filters returns the post-query filter set.
func (r *Request) Filters() filter.Set { return r.filters }
