package orders

import (
	"vend-sync/core/utils"
	"vend-sync/core/vend"
)

// consignmentObject maps a reconciled consignment to the order shape returned
// to the caller.
func consignmentObject(resp *vend.Response) map[string]any {
	obj := map[string]any{
		"id":             resp.String("id"),
		"consignment_id": resp.String("id"),
		"name":           resp.String("name"),
		"type":           resp.String("type"),
		"status":         resp.String("status"),
		"outlet_id":      resp.String("outlet_id"),
	}
	if v := resp.String("supplier_id"); v != "" {
		obj["supplier_id"] = v
	}
	if v := resp.String("source_outlet_id"); v != "" {
		obj["source_outlet_id"] = v
	}
	if v := resp.String("due_at"); v != "" {
		obj["due_at"] = v
	}

	lines := []map[string]any{}
	for _, item := range utils.Slice(resp.Get("line_items")) {
		line := utils.Map(item)
		if line == nil {
			continue
		}
		lines = append(lines, map[string]any{
			"id":              line["id"],
			"product_id":      line["product_id"],
			"quantity":        line["count"],
			"received":        line["received"],
			"unit_price":      line["cost"],
			"sequence_number": line["sequence_number"],
		})
	}
	obj["line_items"] = lines
	return obj
}
