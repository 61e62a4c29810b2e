package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Limits describes the page size an endpoint accepts.
type Limits struct {
	Default int
	Max     int
}

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit int
}

// FromContext reads the limit query parameter. Missing, malformed or
// non-positive values fall back to l.Default; values above l.Max are capped.
func FromContext(c echo.Context, l Limits) Params {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	return Params{Limit: limit}
}
