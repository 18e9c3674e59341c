package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildProduct(t *testing.T) {
	t.Run("Options", func(t *testing.T) {
		body := BuildProduct(map[string]any{
			"variant_id": "v-1",
			"handle":     "tee",
			"name":       "Tee",
			"sku":        "TEE-S",
			"price":      19.99,
			"cost_price": 7.5,
			"brand":      "Acme",
			"options": []any{
				map[string]any{"option_name": "Size", "option_value": "S"},
				map[string]any{"option_name": "Color", "option_value": "Red"},
			},
		})

		assert.Equal(t, "v-1", body["source_id"])
		assert.Equal(t, "TEE-S", body["sku"])
		assert.Equal(t, 19.99, body["retail_price"])
		assert.Equal(t, 7.5, body["supply_price"])
		assert.Equal(t, "Acme", body["brand_name"])
		assert.Equal(t, "Size", body["variant_option_one_name"])
		assert.Equal(t, "S", body["variant_option_one_value"])
		assert.Equal(t, "Color", body["variant_option_two_name"])
		assert.Equal(t, "Red", body["variant_option_two_value"])
		assert.Nil(t, body["variant_option_three_name"])
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "inventory")
	})

	t.Run("BlankSKUIsNull", func(t *testing.T) {
		body := BuildProduct(map[string]any{"sku": "  ", "id": nil})
		assert.Nil(t, body["sku"])
		assert.Contains(t, body, "id")
		assert.Nil(t, body["id"])
	})
}

func TestParseProduct(t *testing.T) {
	parsed := ParseProduct(map[string]any{
		"id":    "p1",
		"name":  "Tee / Small",
		"sku":   "TEE-S",
		"tags":  "summer",
		"image": "https://img/tee.png",
	})

	assert.Equal(t, "Tee ", parsed["name"])
	assert.Equal(t, "TEE-S", parsed["permalink"])
	assert.Equal(t, "summer", parsed["meta_keywords"])
	assert.Equal(t, []map[string]any{{"url": "https://img/tee.png"}}, parsed["images"])
}

func TestBuildSupplier(t *testing.T) {
	body := BuildSupplier(map[string]any{
		"name":      "Acme",
		"firstname": "Ada",
		"email":     "ada@acme.test",
		"address":   map[string]any{"city": "Auckland", "country": "NZ"},
	})

	assert.Equal(t, "Acme", body["name"])
	contact := body["contact"].(map[string]any)
	assert.Equal(t, "Ada", contact["first_name"])
	assert.Equal(t, "ada@acme.test", contact["email"])
	assert.Equal(t, "Auckland", contact["physical_city"])
	assert.Equal(t, "NZ", contact["physical_country_id"])
	assert.Nil(t, contact["physical_postcode"])
}
