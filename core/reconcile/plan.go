package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vend-sync/core/vend"
)

// ErrNoApplicableOperation is wrapped by the precondition error returned for
// an order whose id, status and txn_type match no operation.
var ErrNoApplicableOperation = errors.New("no applicable consignment operation for given payload")

// Plan is the checked outcome of deciding what to do with an order.
type Plan struct {
	// Operation is the action to execute.
	Operation Operation
	// ConsignmentID is the remote id; empty for OperationCreate.
	ConsignmentID string
	// Header is the consignment body sent with every header call.
	Header map[string]any
	// LineItems are the create bodies, indexed like the order's line items.
	// consignment_id is filled in when the calls are made.
	LineItems []map[string]any
}

// Decide picks the operation for an order. The first matching rule wins: a
// missing consignment id creates, CANCELLED cancels, SENT updates and an
// AUTORECEIVE txn_type auto-receives.
func Decide(order *Order) (Operation, error) {
	switch {
	case order.RemoteID() == "":
		return OperationCreate, nil
	case order.Status == vend.StatusCancelled:
		return OperationCancel, nil
	case order.Status == vend.StatusSent:
		return OperationUpdate, nil
	case order.TxnType == TxnTypeAutoReceive:
		return OperationAutoReceive, nil
	}

	return "", &vend.PreconditionError{
		Reason: fmt.Sprintf("%s (consignment %s, status %q, txn_type %q)",
			ErrNoApplicableOperation, order.RemoteID(), order.Status, order.TxnType),
		Index: -1,
		Err:   ErrNoApplicableOperation,
	}
}

// BuildPlan validates an order and decides its operation. It never touches
// the network, so every error it returns means nothing was sent.
func BuildPlan(order *Order) (*Plan, error) {
	if order == nil {
		return nil, vend.NewPreconditionError("order payload is empty")
	}
	if order.IsSupplierOrder() && strings.TrimSpace(order.SupplierID) == "" {
		return nil, vend.NewPreconditionError(
			fmt.Sprintf("Supplier %s not found in Vend, please add it first", order.VendorName()))
	}

	op, err := Decide(order)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Operation:     op,
		ConsignmentID: order.RemoteID(),
		Header:        buildHeader(order),
	}

	if op == OperationCreate || op == OperationUpdate {
		items, err := buildLineItems(order.LineItems)
		if err != nil {
			return nil, err
		}
		plan.LineItems = items
	}

	return plan, nil
}

func buildHeader(order *Order) map[string]any {
	header := map[string]any{}
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			header[key] = val
		}
	}

	set("name", order.Name)
	set("type", order.Type)
	set("status", order.Status)
	set("outlet_id", order.OutletID)
	set("source_outlet_id", order.SourceOutletID)
	set("supplier_id", order.SupplierID)
	set("due_at", order.DueAt)
	set("reference", order.Reference)
	set("consignment_date", order.ConsignmentDate)
	if id := order.RemoteID(); id != "" {
		header["id"] = id
	}
	return header
}

// buildLineItems rejects the whole order if any item lacks a product id.
// sequence_number is the item's position in the order.
func buildLineItems(items []LineItem) ([]map[string]any, error) {
	bodies := make([]map[string]any, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, &vend.PreconditionError{
				Reason: fmt.Sprintf("Missing line item %d (%s), please add this item to Vend", i, item.label()),
				Index:  i,
			}
		}
		bodies[i] = map[string]any{
			"product_id":      item.ProductID,
			"count":           json.Number(item.OrderedCount().String()),
			"received":        json.Number(item.ReceivedCount().String()),
			"cost":            item.Cost(),
			"sequence_number": i,
		}
	}
	return bodies, nil
}
