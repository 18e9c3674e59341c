package endpoint

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"vend-sync/core/batch"
	"vend-sync/core/middleware/rayid"
	"vend-sync/core/vend"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type widget struct {
	Name string `json:"name"`
}

func setupApp(t *testing.T, handler fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(rayid.New())
	app.Post("/", handler)
	return app
}

func call(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestParse(t *testing.T) {
	app := setupApp(t, func(c *fiber.Ctx) error {
		req, err := Parse(c)
		if err != nil {
			return Finish(c, zap.NewNop(), &Result{objects: map[string][]map[string]any{}}, err)
		}
		res := NewResult(req, "Vend")

		var w widget
		if err := req.Object("widget", &w); err != nil {
			return Finish(c, zap.NewNop(), res, err)
		}
		res.SetSummary("got %s", w.Name)
		res.AddObject("widget", map[string]any{"name": w.Name})
		return Finish(c, zap.NewNop(), res, nil)
	})

	t.Run("Success", func(t *testing.T) {
		code, out := call(t, app, `{"request_id": "r-1", "widget": {"name": "bolt"}}`)
		assert.Equal(t, 200, code)
		assert.Equal(t, "r-1", out["request_id"])
		assert.Equal(t, "got bolt", out["summary"])
		assert.Equal(t, []any{map[string]any{"name": "bolt", "channel": "Vend"}}, out["widgets"])
	})

	t.Run("MissingObject", func(t *testing.T) {
		code, out := call(t, app, `{"request_id": "r-2"}`)
		assert.Equal(t, 500, code)
		assert.Equal(t, "r-2", out["request_id"])
		assert.Equal(t, ValidationPrefix+`payload is missing "widget"`, out["summary"])
		assert.NotContains(t, out, "widgets")
	})

	t.Run("RequestIDFallsBackToRayID", func(t *testing.T) {
		_, out := call(t, app, `{"widget": {"name": "nut"}}`)
		assert.NotEmpty(t, out["request_id"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		code, out := call(t, app, `[1, 2`)
		assert.Equal(t, 500, code)
		assert.True(t, strings.HasPrefix(out["summary"].(string), ValidationPrefix))
	})
}

func TestRequest_Empty(t *testing.T) {
	req := &Request{fields: map[string]json.RawMessage{
		"inventory": json.RawMessage(`{}`),
		"product":   json.RawMessage(`{"sku": "A"}`),
		"customer":  json.RawMessage(`null`),
	}}

	assert.True(t, req.Empty("inventory"))
	assert.False(t, req.Empty("product"))
	assert.True(t, req.Empty("customer"))
	assert.False(t, req.Has("customer"))
	assert.True(t, req.Empty("missing"))
}

func TestFinish(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		summary string
	}{
		{
			"EndpointError",
			&vend.EndpointError{Response: &vend.Response{StatusCode: 400, Raw: []byte(`{"error":"Bad"}`)}},
			ValidationPrefix + `{"error":"Bad"}`,
		},
		{
			"PreconditionError",
			vend.NewPreconditionError("Supplier Acme not found in Vend, please add it first"),
			ValidationPrefix + "Supplier Acme not found in Vend, please add it first",
		},
		{
			"BatchOfEndpointErrors",
			&batch.Error{Label: "add line item", Failures: []batch.Failure{{Index: 2, Err: &vend.EndpointError{Response: &vend.Response{StatusCode: 400, Raw: []byte("nope")}}}}},
			ValidationPrefix + "failed to add line item 2: nope",
		},
		{
			"TransportError",
			&vend.TransportError{Method: "GET", Path: "outlets", Err: errors.New("timeout")},
			FaultPrefix + "vend GET outlets: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(t, func(c *fiber.Ctx) error {
				res := NewResult(&Request{RequestID: "r"}, "Vend")
				res.AddObject("purchase_order", map[string]any{"id": "C1"})
				return Finish(c, zap.NewNop(), res, tt.err)
			})

			code, out := call(t, app, `{}`)
			assert.Equal(t, 500, code)
			assert.Equal(t, tt.summary, out["summary"])
			assert.NotContains(t, out, "purchase_orders")
		})
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "purchase_orders", Plural("purchase_order"))
	assert.Equal(t, "inventories", Plural("inventory"))
	assert.Equal(t, "register_sales", Plural("register_sale"))
	assert.Equal(t, "vendors", Plural("vendor"))
	assert.Equal(t, "orders", Plural("orders"))
}

func TestRequest_ObjectValidates(t *testing.T) {
	type ref struct {
		ID string `json:"id" validate:"required"`
	}
	req := &Request{fields: map[string]json.RawMessage{
		"ok":  json.RawMessage(`{"id": "C1"}`),
		"bad": json.RawMessage(`{"name": "PO-1"}`),
	}}

	var good ref
	require.NoError(t, req.Object("ok", &good))
	assert.Equal(t, "C1", good.ID)

	var missing ref
	err := req.Object("bad", &missing)
	require.Error(t, err)
	assert.True(t, vend.IsValidation(err))
	assert.Contains(t, err.Error(), "ID")

	var loose map[string]any
	assert.NoError(t, req.Object("bad", &loose))
}
