package vend

import (
	"vend-sync/core/utils"
)

// Response is a decoded Vend API response.
type Response struct {
	// StatusCode is the HTTP status returned by Vend.
	StatusCode int
	// Body is the decoded JSON object. Top-level arrays are stored under "data".
	Body map[string]any
	// Raw is the undecoded response body.
	Raw []byte
}

// Pagination is the {page, pages} block of a listing response.
type Pagination struct {
	Page  int
	Pages int
}

// OK reports whether the remote answered with a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Get returns a top-level body field.
func (r *Response) Get(key string) any {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body[key]
}

// String returns a top-level body field as a string.
func (r *Response) String(key string) string {
	return utils.ToString(r.Get(key))
}

// Data returns the "data" object used by the 2.0 endpoints.
func (r *Response) Data() map[string]any {
	return utils.Map(r.Get("data"))
}

// Items returns the objects of the array stored under key.
func (r *Response) Items(key string) []map[string]any {
	return objects(r.Get(key))
}

// Pagination returns the pagination block, if the response carries one.
func (r *Response) Pagination() (Pagination, bool) {
	block := utils.Map(r.Get("pagination"))
	if block == nil {
		return Pagination{}, false
	}
	return Pagination{
		Page:  utils.ToInt(block["page"]),
		Pages: utils.ToInt(block["pages"]),
	}, true
}

func objects(val any) []map[string]any {
	raw := utils.Slice(val)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m := utils.Map(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}
