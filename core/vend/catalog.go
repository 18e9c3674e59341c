package vend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"vend-sync/core/utils"
)

// Inventory update failures that are treated as no-ops: the product is gone
// or owned by Vend, so there is nothing to update.
var tolerableInventoryDetails = map[string]struct{}{
	"Cannot update a deleted product":  {},
	"You cannot edit a SYSTEM product": {},
}

// SendProduct creates or updates a product.
func (c *Client) SendProduct(ctx context.Context, body map[string]any) (*Response, error) {
	return c.postValidated(ctx, "products", body)
}

// SendCustomer creates or updates a customer.
func (c *Client) SendCustomer(ctx context.Context, body map[string]any) (*Response, error) {
	return c.postValidated(ctx, "customers", body)
}

// SendSupplier creates or updates a supplier.
func (c *Client) SendSupplier(ctx context.Context, body map[string]any) (*Response, error) {
	return c.postValidated(ctx, "supplier", body)
}

// SendOrder records a register sale.
func (c *Client) SendOrder(ctx context.Context, body map[string]any) (*Response, error) {
	return c.postValidated(ctx, "register_sales", body)
}

// UpdateInventory posts inventory levels for a product. Updates rejected
// because the product is deleted or system owned are returned unvalidated.
func (c *Client) UpdateInventory(ctx context.Context, payload any) (*Response, error) {
	resp, err := c.Request(ctx, http.MethodPost, "products", nil, payload)
	if err != nil {
		return nil, err
	}
	if _, ok := tolerableInventoryDetails[resp.String("details")]; ok {
		return resp, nil
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) (*Response, error) {
	resp, err := c.Request(ctx, http.MethodDelete, "products/"+escape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FindProductByID returns the product's data, or nil when Vend does not know it.
func (c *Client) FindProductByID(ctx context.Context, id string) (map[string]any, error) {
	resp, err := c.Request(ctx, http.MethodGet, "2.0/products/"+escape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// FindSupplierByID returns the raw supplier response.
func (c *Client) FindSupplierByID(ctx context.Context, id string) (*Response, error) {
	return c.Request(ctx, http.MethodGet, "supplier/"+escape(id), nil, nil)
}

// SearchSKU returns the products matching a SKU.
func (c *Client) SearchSKU(ctx context.Context, sku string) ([]map[string]any, error) {
	resp, err := c.Request(ctx, http.MethodGet, "2.0/search", url.Values{"type": {"products"}, "sku": {sku}}, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	return resp.Items("data"), nil
}

// GetInventoryByID returns a product's inventory levels as {outlet_id, count}.
func (c *Client) GetInventoryByID(ctx context.Context, id string) ([]map[string]any, error) {
	resp, err := c.Request(ctx, http.MethodGet, "2.0/products/"+escape(id)+"/inventory", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}

	levels := []map[string]any{}
	for _, inv := range resp.Items("data") {
		levels = append(levels, map[string]any{
			"outlet_id": inv["outlet_id"],
			"count":     inv["inventory_level"],
		})
	}
	return levels, nil
}

// UploadProductImage downloads imageURL and attaches it to the product.
// It returns nil when the image is empty.
func (c *Client) UploadProductImage(ctx context.Context, id, imageURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url %q: %w", imageURL, err)
	}
	img, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: imageURL, Err: err}
	}
	defer img.Body.Close()
	if img.StatusCode < 200 || img.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to download image %q: status %d", imageURL, img.StatusCode)
	}

	content, err := io.ReadAll(img.Body)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: imageURL, Err: err}
	}
	if len(content) == 0 {
		return nil, nil
	}

	filename := path.Base(req.URL.Path)
	if filename == "" || filename == "/" || filename == "." {
		filename = "image"
	}

	resp, err := c.postMultipart(ctx, "2.0/products/"+escape(id)+"/actions/image_upload", "image", filename, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) postValidated(ctx context.Context, path string, body map[string]any) (*Response, error) {
	resp, err := c.Request(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ProductActive maps Vend's active flag to the 1/0 form the product API expects.
func ProductActive(product map[string]any) int {
	if utils.ToBool(product["active"]) {
		return 1
	}
	return 0
}
