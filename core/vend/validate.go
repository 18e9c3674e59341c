package vend

import (
	"strings"

	"vend-sync/core/utils"
)

// Validate returns an *EndpointError when resp signals a failure.
func Validate(resp *Response) error {
	if HasErrors(resp) {
		return &EndpointError{Response: resp}
	}
	return nil
}

// HasErrors reports whether a response carries an error indicator: an "error"
// or "errors" field, a "status" of "error", or a non-2xx status code.
func HasErrors(resp *Response) bool {
	if resp == nil {
		return true
	}
	if present(resp.Get("error")) || present(resp.Get("errors")) {
		return true
	}
	if strings.EqualFold(resp.String("status"), "error") {
		return true
	}
	return !resp.OK()
}

func present(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return utils.ToString(v) != ""
	}
}
