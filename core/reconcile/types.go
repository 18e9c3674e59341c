package reconcile

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation is the remote action chosen for an order.
type Operation string

const (
	// OperationCreate posts a new consignment and its line items.
	OperationCreate Operation = "CREATE"
	// OperationUpdate replaces the header and every line item of a sent consignment.
	OperationUpdate Operation = "UPDATE"
	// OperationCancel cancels an existing consignment.
	OperationCancel Operation = "CANCEL"
	// OperationAutoReceive marks every line item as fully received.
	OperationAutoReceive Operation = "AUTO_RECEIVE"
)

// Order types and transaction types carried by inbound orders.
const (
	TypeSupplier       = "SUPPLIER"
	TypeOutlet         = "OUTLET"
	TxnTypeNormal      = "NORMAL"
	TxnTypeReceipt     = "RECEIPT"
	TxnTypeAutoReceive = "AUTORECEIVE"
)

// Order is an inbound purchase or transfer order.
type Order struct {
	// ConsignmentID is the Vend consignment id; empty until the order was created.
	ConsignmentID string `json:"consignment_id"`
	// ID is accepted as the consignment id only when the payload has no
	// consignment_id key at all.
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	TxnType         string     `json:"txn_type"`
	OutletID        string     `json:"outlet_id"`
	SourceOutletID  string     `json:"source_outlet_id"`
	SupplierID      string     `json:"supplier_id"`
	DueAt           string     `json:"due_at"`
	Reference       string     `json:"reference"`
	ConsignmentDate string     `json:"consignment_date"`
	TransferName    string     `json:"transfer_name"`
	Vendor          *Vendor    `json:"vendor"`
	LineItems       []LineItem `json:"line_items"`

	// hasConsignmentKey is set when the decoded payload carried
	// consignment_id, even as null.
	hasConsignmentKey bool
}

// UnmarshalJSON decodes an order and records whether consignment_id was sent.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var keys struct {
		ConsignmentID json.RawMessage `json:"consignment_id"`
	}
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*plain)(o)); err != nil {
		return err
	}
	o.hasConsignmentKey = keys.ConsignmentID != nil
	return nil
}

// Vendor names the supplier of a purchase order.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineItem is one product entry of an order.
type LineItem struct {
	ProductID string              `json:"product_id"`
	SKU       string              `json:"sku"`
	Name      string              `json:"name"`
	Quantity  Amount `json:"quantity"`
	Count     Amount `json:"count"`
	Received  Amount `json:"received"`
	UnitPrice Amount `json:"unit_price"`
}

// Amount is an optional number that also accepts an empty string as unset.
type Amount struct {
	decimal.NullDecimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte("null")) {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return a.NullDecimal.UnmarshalJSON(trimmed)
}

// RemoteID returns the consignment id the order refers to, if any. A decoded
// consignment_id key decides on its own, so consignment_id: null means the
// order was never created. id is used only when that key is absent.
func (o *Order) RemoteID() string {
	if id := strings.TrimSpace(o.ConsignmentID); id != "" || o.hasConsignmentKey {
		return id
	}
	return strings.TrimSpace(o.ID)
}

// IsSupplierOrder reports whether the order is placed with a supplier.
func (o *Order) IsSupplierOrder() bool {
	return strings.EqualFold(o.Type, TypeSupplier) || strings.EqualFold(o.TxnType, TypeSupplier)
}

// VendorName returns the vendor name, or "unknown" when the order carries none.
func (o *Order) VendorName() string {
	if o.Vendor == nil || strings.TrimSpace(o.Vendor.Name) == "" {
		return "unknown"
	}
	return o.Vendor.Name
}

// OrderedCount is the quantity, falling back to the count, then zero.
func (l LineItem) OrderedCount() decimal.Decimal {
	switch {
	case l.Quantity.Valid:
		return l.Quantity.Decimal
	case l.Count.Valid:
		return l.Count.Decimal
	default:
		return decimal.Zero
	}
}

// ReceivedCount is the received quantity, defaulting to zero.
func (l LineItem) ReceivedCount() decimal.Decimal {
	if l.Received.Valid {
		return l.Received.Decimal
	}
	return decimal.Zero
}

// Cost is the unit price truncated to a whole number.
func (l LineItem) Cost() int64 {
	if !l.UnitPrice.Valid {
		return 0
	}
	return l.UnitPrice.Decimal.IntPart()
}

func (l LineItem) label() string {
	switch {
	case l.SKU != "":
		return l.SKU
	case l.Name != "":
		return l.Name
	default:
		return "(unnamed)"
	}
}
