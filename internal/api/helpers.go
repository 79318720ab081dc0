package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/banglakobita/kobita-server/internal/service"
)

// maxBodyBytes caps JSON request bodies. Uploads have their own limit.
const maxBodyBytes = 1 << 20

// decodeJSON parses a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	return json.UnmarshalRead(r.Body, dst)
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed so the store applies its defaults.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// listOptions builds listing options from the query string. Drafts are
// included only for admin callers.
func listOptions(r *http.Request) service.ListOptions {
	opts := service.ListOptions{
		Page:               queryInt(r, "page"),
		Limit:              queryInt(r, "limit"),
		CategoryID:         r.URL.Query().Get("category"),
		AlbumID:            r.URL.Query().Get("album"),
		IncludeUnpublished: isAdmin(r.Context()),
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		opts.Featured = &featured
	}
	return opts
}
