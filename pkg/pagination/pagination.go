// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination windows the catalog list pages (movies, directors,
// actors) and describes the window in the page envelope.
//
// A request selects a window with the "page" and "limit" query parameters.
// Out-of-range input never fails a listing; it falls back to the defaults.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit fits a 4x6 poster grid.
	DefaultLimit = 24
	MaxLimit     = 100
	firstPage    = 1
)

// Params is the requested window. Page is 1-indexed.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the window to an SQL OFFSET.
func (p Params) Offset() int {
	return (max(p.Page, firstPage) - 1) * p.Limit
}

// Meta describes the served window.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// NewMeta builds the metadata for page out of total items.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	meta.HasNext = page < meta.TotalPages
	meta.HasPrev = page > firstPage
	return meta
}

// FromRequest reads the window from the query string.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	params := Params{Page: firstPage, Limit: DefaultLimit}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page >= firstPage {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit >= 1 && limit <= MaxLimit {
		params.Limit = limit
	}

	return params
}
