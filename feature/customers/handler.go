package customers

import (
	"context"

	"vend-sync/core/endpoint"
	"vend-sync/core/utils"
	"vend-sync/core/vend"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for customers.
type Handler struct {
	service *Service
	channel string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, channel string) *Handler {
	return &Handler{service: service, channel: channel}
}

// RegisterRoutes registers the customer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/add_customer", h.handleSend(h.service.AddCustomer, "The customer %s was sent to Vend POS."))
	app.Post("/update_customer", h.handleSend(h.service.UpdateCustomer, "The customer %s was updated in Vend POS."))
}

type sendFunc func(ctx context.Context, customer map[string]any) (*vend.Response, error)

func (h *Handler) handleSend(send sendFunc, summary string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := endpoint.Parse(c)
		if err != nil {
			return endpoint.Finish(c, h.service.logger, endpoint.NewResult(&endpoint.Request{}, h.channel), err)
		}
		res := endpoint.NewResult(req, h.channel)

		var customer map[string]any
		if err := req.Object("customer", &customer); err != nil {
			return endpoint.Finish(c, h.service.logger, res, err)
		}

		resp, err := send(c.Context(), customer)
		if err != nil {
			return endpoint.Finish(c, h.service.logger, res, err)
		}

		if created := utils.Map(resp.Get("customer")); created != nil {
			res.AddObject("customer", ParseCustomer(created))
		}
		res.SetSummary(summary, utils.ToString(customer["email"]))
		return endpoint.Finish(c, h.service.logger, res, nil)
	}
}
