package customers

import (
	"strings"

	"vend-sync/core/utils"
)

// BuildCustomer maps a customer payload to a Vend customer body. The email
// doubles as the customer code.
func BuildCustomer(payload map[string]any) map[string]any {
	address := utils.Map(payload["shipping_address"])
	if address == nil {
		address = map[string]any{}
	}

	return map[string]any{
		"email":               payload["email"],
		"customer_code":       payload["email"],
		"first_name":          address["firstname"],
		"last_name":           address["lastname"],
		"physical_address1":   address["address1"],
		"physical_address2":   address["address2"],
		"physical_postcode":   address["zipcode"],
		"physical_city":       address["city"],
		"physical_state":      address["state"],
		"physical_country_id": address["country"],
	}
}

// ParseCustomer maps a Vend customer to the integration customer shape.
func ParseCustomer(customer map[string]any) map[string]any {
	id := customer["customer_code"]
	if utils.ToString(id) == "" {
		id = customer["id"]
	}
	name := utils.ToString(customer["name"])

	return map[string]any{
		"id":               id,
		"firstname":        FirstName(name),
		"lastname":         LastName(name),
		"email":            customer["email"],
		"shipping_address": address(customer, "physical"),
		"billing_address":  address(customer, "postal"),
	}
}

func address(customer map[string]any, prefix string) map[string]any {
	return map[string]any{
		"address1": customer[prefix+"_address1"],
		"address2": customer[prefix+"_address2"],
		"zipcode":  customer[prefix+"_postcode"],
		"city":     customer[prefix+"_city"],
		"state":    customer[prefix+"_state"],
		"country":  customer[prefix+"_country_id"],
		"phone":    customer["phone"],
	}
}

// FirstName returns the first word of a full name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// LastName returns everything after the first word of a full name.
func LastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
