package vend

import (
	"context"
	"net/url"
	"strconv"
)

// FetchFunc fetches one page using the given query.
type FetchFunc func(ctx context.Context, query url.Values) (*Response, error)

// Paginate calls fetch until the response no longer reports a later page.
// After each call, if the response carries {page, pages} with page < pages,
// query's "page" is set to page+1 and fetch is called again. Pages are
// 1-indexed and the first call is made with query as given.
//
// The caller owns result accumulation inside fetch. An error from fetch aborts
// pagination and is returned unchanged; whatever the caller accumulated up to
// that point must be discarded.
func Paginate(ctx context.Context, query url.Values, fetch FetchFunc) error {
	if query == nil {
		query = url.Values{}
	}
	for {
		resp, err := fetch(ctx, query)
		if err != nil {
			return err
		}

		p, ok := resp.Pagination()
		if !ok || p.Page >= p.Pages {
			return nil
		}
		query.Set("page", strconv.Itoa(p.Page+1))
	}
}

// listAll pages through path and concatenates the objects stored under key.
func (c *Client) listAll(ctx context.Context, path, key string, query url.Values) ([]map[string]any, error) {
	var items []map[string]any
	err := Paginate(ctx, query, func(ctx context.Context, q url.Values) (*Response, error) {
		resp, err := c.Request(ctx, "GET", path, q, nil)
		if err != nil {
			return nil, err
		}
		if err := Validate(resp); err != nil {
			return nil, err
		}
		items = append(items, resp.Items(key)...)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []map[string]any{}
	}
	return items, nil
}
