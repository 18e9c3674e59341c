package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCustomer(t *testing.T) {
	t.Run("WithAddress", func(t *testing.T) {
		body := BuildCustomer(map[string]any{
			"email": "ada@example.test",
			"shipping_address": map[string]any{
				"firstname": "Ada", "lastname": "Lovelace", "address1": "1 Loom St",
				"zipcode": "1010", "city": "Auckland", "country": "NZ",
			},
		})

		assert.Equal(t, "ada@example.test", body["email"])
		assert.Equal(t, "ada@example.test", body["customer_code"])
		assert.Equal(t, "Ada", body["first_name"])
		assert.Equal(t, "Lovelace", body["last_name"])
		assert.Equal(t, "1 Loom St", body["physical_address1"])
		assert.Equal(t, "1010", body["physical_postcode"])
		assert.Equal(t, "NZ", body["physical_country_id"])
		assert.NotContains(t, body, "id")
	})

	t.Run("WithoutAddress", func(t *testing.T) {
		body := BuildCustomer(map[string]any{"email": "ada@example.test"})
		assert.Equal(t, "ada@example.test", body["customer_code"])
		assert.Contains(t, body, "first_name")
		assert.Nil(t, body["first_name"])
		assert.Nil(t, body["physical_city"])
	})
}

func TestParseCustomer(t *testing.T) {
	parsed := ParseCustomer(map[string]any{
		"id":                "c-1",
		"name":              "Ada King Lovelace",
		"email":             "ada@example.test",
		"phone":             "555",
		"physical_city":     "Auckland",
		"postal_city":       "Wellington",
		"postal_country_id": "NZ",
	})

	assert.Equal(t, "c-1", parsed["id"])
	assert.Equal(t, "Ada", parsed["firstname"])
	assert.Equal(t, "King Lovelace", parsed["lastname"])

	shipping := parsed["shipping_address"].(map[string]any)
	assert.Equal(t, "Auckland", shipping["city"])
	assert.Equal(t, "555", shipping["phone"])

	billing := parsed["billing_address"].(map[string]any)
	assert.Equal(t, "Wellington", billing["city"])
	assert.Equal(t, "NZ", billing["country"])

	assert.Equal(t, "code-9", ParseCustomer(map[string]any{"id": "c-1", "customer_code": "code-9"})["id"])
}

func TestNameSplit(t *testing.T) {
	tests := []struct {
		name, first, last string
	}{
		{"", "", ""},
		{"Ada", "Ada", ""},
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"  Ada   King  Lovelace ", "Ada", "King Lovelace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.first, FirstName(tt.name))
			assert.Equal(t, tt.last, LastName(tt.name))
		})
	}
}
