package composables

import (
	"net/http"
	"strconv"

	"github.com/sasanalk/sasana-portal/pkg/configuration"
)

type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// UsePaginated reads page/limit query parameters, clamped to the
// configured bounds.
func UsePaginated(r *http.Request) PaginationParams {
	conf := configuration.Use()

	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := conf.PageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		if v > conf.MaxPageSize {
			v = conf.MaxPageSize
		}
		limit = v
	}
	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
