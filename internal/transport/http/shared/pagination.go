package shared

import (
	"net/http"
	"strconv"
)

// Pagination is the offset+limit window shared by every list endpoint.
// Limit -1 means unlimited, the same convention the store's List uses.
type Pagination struct {
	Offset int
	Limit  int
}

// ParsePagination reads the limit and offset query parameters. A limit of -1
// requests everything; maxLimit, when positive, caps what a client may ask
// for, unlimited included. Malformed or out-of-range values fall back to the
// defaults.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	query := r.URL.Query()
	p := Pagination{Limit: defaultLimit}

	if raw := query.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			switch {
			case v > 0:
				p.Limit = v
			case v == -1:
				p.Limit = -1
			}
		}
	}
	if maxLimit > 0 && (p.Limit < 0 || p.Limit > maxLimit) {
		p.Limit = maxLimit
	}

	if raw := query.Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Offset = v
		}
	}
	return p
}
