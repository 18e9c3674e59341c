package orders

import (
	"context"
	"fmt"

	"vend-sync/core/vend"

	"github.com/shopspring/decimal"
)

// Sale is an inbound order to be recorded as a register sale.
type Sale struct {
	ID          string       `json:"id" validate:"required"`
	Register    string       `json:"register"`
	PlacedOn    string       `json:"placed_on"`
	Email       string       `json:"email"`
	LineItems   []SaleLine   `json:"line_items" validate:"required,min=1,dive"`
	Adjustments []Adjustment `json:"adjustments"`
	Totals      SaleTotals   `json:"totals"`
	Payments    []Payment    `json:"payments" validate:"dive"`
}

// SaleLine is one sold product. ProductID wins over SKU, which is looked up
// as a product handle.
type SaleLine struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Adjustment is an order level amount; negative values are discounts.
type Adjustment struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// SaleTotals carries the order totals used for the shipping line.
type SaleTotals struct {
	Shipping decimal.Decimal `json:"shipping"`
}

// Payment is a payment applied to the sale.
type Payment struct {
	PaymentMethod string          `json:"payment_method" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// saleLookups is what building a register sale needs from the client.
type saleLookups interface {
	Register() string
	RegisterID(ctx context.Context, name string) (string, bool, error)
	ProductID(ctx context.Context, handle string) (string, bool, error)
	PaymentTypeID(ctx context.Context, name string) (string, bool, error)
	DiscountProductID(ctx context.Context) (string, bool, error)
	ShippingProductID(ctx context.Context) (string, bool, error)
}

func buildRegisterSale(ctx context.Context, lookups saleLookups, sale *Sale) (map[string]any, error) {
	registerName := sale.Register
	if registerName == "" {
		registerName = lookups.Register()
	}
	registerID, ok, err := lookups.RegisterID(ctx, registerName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, vend.NewPreconditionError(fmt.Sprintf("Register %q not found in Vend", registerName))
	}

	products := make([]map[string]any, 0, len(sale.LineItems)+2)
	for i, line := range sale.LineItems {
		productID := line.ProductID
		if productID == "" && line.SKU != "" {
			id, found, err := lookups.ProductID(ctx, line.SKU)
			if err != nil {
				return nil, err
			}
			if found {
				productID = id
			}
		}
		if productID == "" {
			return nil, &vend.PreconditionError{
				Reason: fmt.Sprintf("Product %s of order %s not found in Vend", firstNonEmpty(line.SKU, line.Name), sale.ID),
				Index:  i,
			}
		}
		products = append(products, map[string]any{
			"product_id": productID,
			"quantity":   line.Quantity.InexactFloat64(),
			"price":      line.Price.InexactFloat64(),
		})
	}

	discount := decimal.Zero
	for _, adj := range sale.Adjustments {
		if adj.Value.IsNegative() {
			discount = discount.Add(adj.Value)
		}
	}
	if !discount.IsZero() {
		id, ok, err := lookups.DiscountProductID(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, vend.NewPreconditionError("Discount product not found in Vend")
		}
		products = append(products, map[string]any{"product_id": id, "quantity": 1, "price": discount.InexactFloat64()})
	}

	if sale.Totals.Shipping.IsPositive() {
		id, ok, err := lookups.ShippingProductID(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, vend.NewPreconditionError("Shipping product not found in Vend")
		}
		products = append(products, map[string]any{"product_id": id, "quantity": 1, "price": sale.Totals.Shipping.InexactFloat64()})
	}

	payments := make([]map[string]any, 0, len(sale.Payments))
	for _, p := range sale.Payments {
		id, ok, err := lookups.PaymentTypeID(ctx, p.PaymentMethod)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, vend.NewPreconditionError(fmt.Sprintf("Payment type %q not found in Vend", p.PaymentMethod))
		}
		payments = append(payments, map[string]any{
			"retailer_payment_type_id": id,
			"amount":                   p.Amount.InexactFloat64(),
			"payment_date":             sale.PlacedOn,
		})
	}

	return map[string]any{
		"register_id":            registerID,
		"invoice_number":         sale.ID,
		"sale_date":              sale.PlacedOn,
		"status":                 "CLOSED",
		"register_sale_products": products,
		"register_sale_payments": payments,
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return "(unnamed)"
}
