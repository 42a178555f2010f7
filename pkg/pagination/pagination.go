package pagination

import (
	"net/url"
	"strconv"
)

// Window selects a slice of a listing: skip records, then return at most Limit.
type Window struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Normalize clamps the window to the config bounds. A missing or
// non-positive limit takes the default; a negative skip becomes zero.
func (w *Window) Normalize(cfg Config) {
	if w.Skip < 0 {
		w.Skip = 0
	}
	if w.Limit < 1 {
		w.Limit = cfg.DefaultLimit
	}
	if w.Limit > cfg.MaxLimit {
		w.Limit = cfg.MaxLimit
	}
}

// WindowFromQuery parses the skip and limit query parameters.
// Unparseable values fall back to the defaults.
func WindowFromQuery(values url.Values, cfg Config) Window {
	skip, _ := strconv.Atoi(values.Get("skip"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	w := Window{Skip: skip, Limit: limit}
	w.Normalize(cfg)
	return w
}

// Items returns data, replacing nil with an empty slice so listings
// always encode as a JSON array.
func Items[T any](data []T) []T {
	if data == nil {
		return []T{}
	}
	return data
}
