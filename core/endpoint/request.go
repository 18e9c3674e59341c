package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"vend-sync/core/middleware/rayid"
	"vend-sync/core/vend"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var payloadValidator = validator.New()

// Request is a decoded integration request.
type Request struct {
	// RequestID is echoed in the response. It falls back to the ray id, then
	// to a fresh UUID.
	RequestID string
	// Parameters holds the optional "parameters" object.
	Parameters map[string]any

	fields map[string]json.RawMessage
}

// Parse decodes the request body. An empty body is accepted and yields a
// request without objects.
func Parse(c *fiber.Ctx) (*Request, error) {
	req := &Request{fields: map[string]json.RawMessage{}}

	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := json.Unmarshal(body, &req.fields); err != nil {
			return nil, vend.NewPreconditionError(fmt.Sprintf("request body is not a JSON object: %v", err))
		}
	}

	if raw, ok := req.fields["request_id"]; ok {
		_ = json.Unmarshal(raw, &req.RequestID)
	}
	if req.RequestID == "" {
		req.RequestID = rayid.Get(c)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if raw, ok := req.fields["parameters"]; ok {
		_ = json.Unmarshal(raw, &req.Parameters)
	}
	return req, nil
}

// Has reports whether the named object is present and not null.
func (r *Request) Has(key string) bool {
	raw, ok := r.fields[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Empty reports whether the named object is missing, null or {}.
func (r *Request) Empty(key string) bool {
	if !r.Has(key) {
		return true
	}
	var m map[string]any
	if err := json.Unmarshal(r.fields[key], &m); err == nil {
		return len(m) == 0
	}
	return false
}

// Object decodes the named object into v. Struct targets are also checked
// against their validate tags.
func (r *Request) Object(key string, v any) error {
	if !r.Has(key) {
		return vend.NewPreconditionError(fmt.Sprintf("payload is missing %q", key))
	}
	if err := json.Unmarshal(r.fields[key], v); err != nil {
		return vend.NewPreconditionError(fmt.Sprintf("invalid %q payload: %v", key, err))
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct {
		if err := payloadValidator.Struct(v); err != nil {
			return vend.NewPreconditionError(fmt.Sprintf("invalid %q payload: %v", key, err))
		}
	}
	return nil
}
