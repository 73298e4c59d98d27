package api

import (
	"net/url"
	"strconv"
)

// Pagination is the page metadata the backend attaches to list responses.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PageQuery builds the page/limit query parameters shared by the list
// endpoints.
func PageQuery(page, limit int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	return params
}
