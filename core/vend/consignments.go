package vend

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"vend-sync/core/utils"
)

// Consignment statuses.
const (
	StatusOpen      = "OPEN"
	StatusSent      = "SENT"
	StatusCancelled = "CANCELLED"
	StatusReceived  = "RECEIVED"
)

// CreateConsignment posts a consignment header.
func (c *Client) CreateConsignment(ctx context.Context, body map[string]any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, "consignment", nil, body)
}

// UpdateConsignment replaces a consignment header.
func (c *Client) UpdateConsignment(ctx context.Context, id string, body map[string]any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, "consignment/"+escape(id), nil, body)
}

// CancelConsignment deletes a consignment header.
func (c *Client) CancelConsignment(ctx context.Context, id string, body map[string]any) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, "consignment/"+escape(id), nil, body)
}

// ListConsignmentProducts returns the line items of a consignment in a single
// unpaginated call.
func (c *Client) ListConsignmentProducts(ctx context.Context, consignmentID string) (*Response, error) {
	return c.Request(ctx, http.MethodGet, "consignment_product", url.Values{"consignment_id": {consignmentID}}, nil)
}

// CreateConsignmentProduct posts a line item.
func (c *Client) CreateConsignmentProduct(ctx context.Context, body map[string]any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, "consignment_product", nil, body)
}

// UpdateConsignmentProduct replaces a line item.
func (c *Client) UpdateConsignmentProduct(ctx context.Context, id string, body map[string]any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, "consignment_product/"+escape(id), nil, body)
}

// DeleteConsignmentProduct removes a line item.
func (c *Client) DeleteConsignmentProduct(ctx context.Context, id string) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, "consignment_product/"+escape(id), nil, nil)
}

// GetPurchaseOrder reads a consignment and, unless it is cancelled, attaches
// its line items under data.line_items ordered by sequence_number.
// Cancelled consignments are returned as Vend reported them.
func (c *Client) GetPurchaseOrder(ctx context.Context, consignmentID string) (*Response, error) {
	resp, err := c.Request(ctx, http.MethodGet, "2.0/consignments/"+escape(consignmentID), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}

	data := resp.Data()
	if data == nil || utils.ToString(data["status"]) == StatusCancelled {
		return resp, nil
	}

	receipts, err := c.ListConsignmentProducts(ctx, consignmentID)
	if err != nil {
		return nil, err
	}
	if err := Validate(receipts); err != nil {
		return nil, err
	}

	data["line_items"] = SortBySequence(receipts.Items("consignment_products"))
	return resp, nil
}

// GetPurchaseOrderStatus returns the status of a consignment.
func (c *Client) GetPurchaseOrderStatus(ctx context.Context, consignmentID string) (string, error) {
	resp, err := c.Request(ctx, http.MethodGet, "2.0/consignments/"+escape(consignmentID), nil, nil)
	if err != nil {
		return "", err
	}
	if err := Validate(resp); err != nil {
		return "", err
	}
	return utils.ToString(resp.Data()["status"]), nil
}

// SortBySequence orders line items by sequence_number, keeping the listing
// order for equal numbers. The slice is sorted in place and returned.
func SortBySequence(items []map[string]any) []map[string]any {
	sort.SliceStable(items, func(i, j int) bool {
		return utils.ToInt(items[i]["sequence_number"]) < utils.ToInt(items[j]["sequence_number"])
	})
	return items
}
