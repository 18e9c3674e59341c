package vend

import (
	"context"
	"net/url"

	"vend-sync/core/utils"
)

// PaymentTypeID resolves a payment type name to its id.
func (c *Client) PaymentTypeID(ctx context.Context, name string) (string, bool, error) {
	return c.payments.resolve(ctx, name)
}

// RegisterID resolves a register name to its id.
func (c *Client) RegisterID(ctx context.Context, name string) (string, bool, error) {
	return c.registers.resolve(ctx, name)
}

// ProductID resolves a product handle to its id.
func (c *Client) ProductID(ctx context.Context, handle string) (string, bool, error) {
	return c.products.resolve(ctx, handle)
}

// FindOutletByID returns the id and name of a known outlet.
func (c *Client) FindOutletByID(ctx context.Context, outletID string) (map[string]any, bool, error) {
	outlet, ok, err := c.outlets.resolve(ctx, outletID)
	if err != nil || !ok {
		return nil, ok, err
	}
	return map[string]any{"id": outlet["id"], "name": outlet["name"]}, true, nil
}

// DiscountProductID returns the id of the built-in discount product.
func (c *Client) DiscountProductID(ctx context.Context) (string, bool, error) {
	return c.discount.resolve(ctx, "vend-discount")
}

// ShippingProductID returns the id of the shipping product, if the store has one.
func (c *Client) ShippingProductID(ctx context.Context) (string, bool, error) {
	return c.shipping.resolve(ctx, "shipping")
}

func (c *Client) loadPaymentTypes(ctx context.Context) (map[string]string, error) {
	return c.loadNameIndex(ctx, "payment_types", "payment_types", "name")
}

func (c *Client) loadRegisters(ctx context.Context) (map[string]string, error) {
	return c.loadNameIndex(ctx, "registers", "registers", "name")
}

func (c *Client) loadProductHandles(ctx context.Context) (map[string]string, error) {
	products, err := c.Products(ctx, "")
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(products))
	for _, p := range products {
		index[utils.ToString(p["handle"])] = utils.ToString(p["id"])
	}
	return index, nil
}

func (c *Client) loadOutlets(ctx context.Context) (map[string]map[string]any, error) {
	resp, err := c.Request(ctx, "GET", "outlets", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	index := make(map[string]map[string]any)
	for _, o := range resp.Items("outlets") {
		index[utils.ToString(o["id"])] = o
	}
	return index, nil
}

// loadNameIndex lists path once and indexes the objects under key by field.
func (c *Client) loadNameIndex(ctx context.Context, path, key, field string) (map[string]string, error) {
	resp, err := c.Request(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(resp); err != nil {
		return nil, err
	}
	index := make(map[string]string)
	for _, item := range resp.Items(key) {
		index[utils.ToString(item[field])] = utils.ToString(item["id"])
	}
	return index, nil
}

// loadSpecialProduct looks up a product whose handle and sku are both handle.
func (c *Client) loadSpecialProduct(handle string) func(ctx context.Context) (map[string]string, error) {
	return func(ctx context.Context) (map[string]string, error) {
		query := url.Values{"handle": {handle}, "sku": {handle}}
		resp, err := c.Request(ctx, "GET", "products", query, nil)
		if err != nil {
			return nil, err
		}
		if err := Validate(resp); err != nil {
			return nil, err
		}
		index := map[string]string{}
		if products := resp.Items("products"); len(products) > 0 {
			index[handle] = utils.ToString(products[0]["id"])
		}
		return index, nil
	}
}
