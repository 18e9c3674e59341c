package endpoint

import (
	"fmt"
	"strings"

	"vend-sync/core/logger"
	"vend-sync/core/vend"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Summary prefixes for failed requests.
const (
	ValidationPrefix = "Validation error has ocurred: "
	FaultPrefix      = "A Vend POS Endpoint error has ocurred: "
)

// Result collects the response of one request.
type Result struct {
	RequestID string
	Summary   string

	channel string
	kinds   []string
	objects map[string][]map[string]any
}

// NewResult starts a response for req. Objects added to it are tagged with channel.
func NewResult(req *Request, channel string) *Result {
	return &Result{
		RequestID: req.RequestID,
		channel:   channel,
		objects:   map[string][]map[string]any{},
	}
}

// SetSummary sets the summary.
func (r *Result) SetSummary(format string, args ...any) {
	r.Summary = fmt.Sprintf(format, args...)
}

// AddObject appends obj to the list named after kind ("purchase_order" is
// listed under "purchase_orders").
func (r *Result) AddObject(kind string, obj map[string]any) {
	if obj == nil {
		return
	}
	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	if r.channel != "" {
		out["channel"] = r.channel
	}

	key := Plural(kind)
	if _, ok := r.objects[key]; !ok {
		r.kinds = append(r.kinds, key)
	}
	r.objects[key] = append(r.objects[key], out)
}

// Objects returns the objects listed under the plural key.
func (r *Result) Objects(key string) []map[string]any {
	return r.objects[key]
}

// Body renders the response document.
func (r *Result) Body() fiber.Map {
	body := fiber.Map{"request_id": r.RequestID}
	if r.Summary != "" {
		body["summary"] = r.Summary
	}
	for _, key := range r.kinds {
		body[key] = r.objects[key]
	}
	return body
}

// Finish writes the result. A non-nil err replaces the summary, drops any
// objects and answers 500.
func Finish(c *fiber.Ctx, l *zap.Logger, res *Result, err error) error {
	if err == nil {
		return c.Status(fiber.StatusOK).JSON(res.Body())
	}

	l = logger.WithRayID(l, c)
	if vend.IsValidation(err) {
		l.Warn("Request rejected", zap.String("path", c.Path()), zap.Error(err))
		res.Summary = ValidationPrefix + err.Error()
	} else {
		l.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
		res.Summary = FaultPrefix + err.Error()
	}
	res.kinds = nil
	res.objects = map[string][]map[string]any{}
	return c.Status(fiber.StatusInternalServerError).JSON(res.Body())
}

// Plural returns the collection name for an object kind.
func Plural(kind string) string {
	switch {
	case strings.HasSuffix(kind, "s"):
		return kind
	case strings.HasSuffix(kind, "y"):
		return strings.TrimSuffix(kind, "y") + "ies"
	default:
		return kind + "s"
	}
}
