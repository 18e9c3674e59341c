package catalog

import (
	"strings"

	"vend-sync/core/utils"
)

var optionSlots = []string{"one", "two", "three"}

// BuildProduct maps a product (or merged product and variant) payload to a
// Vend product body.
func BuildProduct(payload map[string]any) map[string]any {
	var sku any
	if s := utils.ToString(payload["sku"]); strings.TrimSpace(s) != "" {
		sku = s
	}

	body := map[string]any{
		"source_id":       payload["variant_id"],
		"handle":          payload["handle"],
		"tags":            payload["tags"],
		"name":            payload["name"],
		"description":     payload["description"],
		"track_inventory": payload["track_inventory"],
		"sku":             sku,
		"active":          payload["active"],
		"retail_price":    payload["price"],
		"supply_price":    payload["cost_price"],
		"brand_name":      payload["brand"],
		"department":      payload["department"],
		"category":        payload["category"],
	}
	if id, ok := payload["id"]; ok {
		body["id"] = id
	}
	if inv, ok := payload["inventory"]; ok {
		body["inventory"] = inv
	}

	options := utils.Slice(payload["options"])
	for i, slot := range optionSlots {
		var name, value any
		if i < len(options) {
			if opt := utils.Map(options[i]); len(opt) > 0 {
				name, value = opt["option_name"], opt["option_value"]
			}
		}
		body["variant_option_"+slot+"_name"] = name
		body["variant_option_"+slot+"_value"] = value
	}
	return body
}

// ParseProduct maps a Vend product to the product shape returned by polling.
func ParseProduct(product map[string]any) map[string]any {
	name := utils.ToString(product["name"])
	if i := strings.Index(name, "/"); i >= 0 {
		name = name[:i]
	}

	return map[string]any{
		"id":              product["id"],
		"name":            name,
		"source_id":       product["source_id"],
		"sku":             product["sku"],
		"handle":          product["handle"],
		"description":     product["description"],
		"price":           product["price"],
		"permalink":       product["sku"],
		"track_inventory": product["track_inventory"],
		"meta_keywords":   product["tags"],
		"updated_at":      product["updated_at"],
		"images":          []map[string]any{{"url": product["image"]}},
	}
}

// BuildSupplier maps a vendor payload to a Vend supplier body.
func BuildSupplier(vendor map[string]any) map[string]any {
	address := utils.Map(vendor["address"])
	if address == nil {
		address = map[string]any{}
	}

	return map[string]any{
		"name":        vendor["name"],
		"description": vendor["description"],
		"contact": map[string]any{
			"first_name":          vendor["firstname"],
			"last_name":           vendor["lastname"],
			"company_name":        vendor["company"],
			"email":               vendor["email"],
			"phone":               vendor["phone"],
			"website":             vendor["website"],
			"physical_address1":   address["address1"],
			"physical_address2":   address["address2"],
			"physical_city":       address["city"],
			"physical_postcode":   address["zipcode"],
			"physical_state":      address["state"],
			"physical_country_id": address["country"],
		},
	}
}
