package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps an explicit limit. A zero limit means the caller asked for
// every matching row.
const MaxLimit = 1000

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts optional limit/offset query parameters. Missing or
// malformed values are treated as absent.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Bounded reports whether a limit was requested.
func (p Params) Bounded() bool {
	return p.Limit > 0
}
