package vend

import (
	"context"
	"net/url"
	"strconv"
)

// Resource describes a paginated Vend listing.
type Resource struct {
	// Path is the listing endpoint.
	Path string
	// Key is the response field holding the page's objects.
	Key string
	// PageSize is requested on every page; zero uses the client default.
	PageSize int
}

// Listings polled by the service.
var (
	ResourceCustomers     = Resource{Path: "customers", Key: "customers", PageSize: 100}
	ResourceOutlets       = Resource{Path: "outlets", Key: "outlets", PageSize: 100}
	ResourceProducts      = Resource{Path: "products", Key: "products", PageSize: 100}
	ResourceRegisterSales = Resource{Path: "register_sales", Key: "register_sales", PageSize: 10}
	ResourceSuppliers     = Resource{Path: "supplier", Key: "suppliers"}
	ResourceConsignments  = Resource{Path: "consignment", Key: "consignments"}
	ResourceTaxes         = Resource{Path: "taxes", Key: "taxes"}
)

// List pages through a resource. extra is merged into the query of every page.
func (c *Client) List(ctx context.Context, res Resource, extra url.Values) ([]map[string]any, error) {
	pageSize := res.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}

	query := url.Values{}
	for k, v := range extra {
		query[k] = append([]string(nil), v...)
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	return c.listAll(ctx, res.Path, res.Key, query)
}

// Poll lists a resource changed since the given timestamp; an empty since
// lists everything.
func (c *Client) Poll(ctx context.Context, res Resource, since string) ([]map[string]any, error) {
	extra := url.Values{}
	if since != "" {
		extra.Set("since", since)
	}
	return c.List(ctx, res, extra)
}

// CustomerFilter narrows a customer listing.
type CustomerFilter struct {
	Since string
	Email string
	ID    string
}

// Customers lists customers matching filter.
func (c *Client) Customers(ctx context.Context, filter CustomerFilter) ([]map[string]any, error) {
	extra := url.Values{}
	if filter.Since != "" {
		extra.Set("since", filter.Since)
	}
	if filter.Email != "" {
		extra.Set("email", filter.Email)
	}
	if filter.ID != "" {
		extra.Set("id", filter.ID)
	}
	return c.List(ctx, ResourceCustomers, extra)
}

// Products lists products changed since the given timestamp.
func (c *Client) Products(ctx context.Context, since string) ([]map[string]any, error) {
	return c.Poll(ctx, ResourceProducts, since)
}

// Inventories flattens the per-outlet inventory of products changed since the
// given timestamp.
func (c *Client) Inventories(ctx context.Context, since string) ([]map[string]any, error) {
	products, err := c.Products(ctx, since)
	if err != nil {
		return nil, err
	}

	inventories := []map[string]any{}
	for _, product := range products {
		for _, inv := range objects(product["inventory"]) {
			inventories = append(inventories, map[string]any{
				"id":         inv["outlet_id"],
				"location":   inv["outlet_name"],
				"product_id": product["id"],
				"quantity":   inv["count"],
			})
		}
	}
	return inventories, nil
}
