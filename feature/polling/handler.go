package polling

import (
	"strings"

	"vend-sync/core/endpoint"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for listings.
type Handler struct {
	service *Service
	channel string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, channel string) *Handler {
	return &Handler{service: service, channel: channel}
}

// RegisterRoutes registers one GET route per listing.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	for _, name := range h.service.Sources() {
		app.Get("/get_"+name, h.handleList(name))
	}
}

func (h *Handler) handleList(name string) fiber.Handler {
	label := strings.ReplaceAll(name, "_", " ")

	return func(c *fiber.Ctx) error {
		req, err := endpoint.Parse(c)
		if err != nil {
			return endpoint.Finish(c, h.service.logger, endpoint.NewResult(&endpoint.Request{}, h.channel), err)
		}
		res := endpoint.NewResult(req, h.channel)

		src, items, err := h.service.Fetch(c.Context(), name, c.Query("since"))
		if err != nil {
			return endpoint.Finish(c, h.service.logger, res, err)
		}

		for _, item := range items {
			res.AddObject(src.Kind, item)
		}
		res.SetSummary("Retrieved %d %s from Vend", len(items), label)
		return endpoint.Finish(c, h.service.logger, res, nil)
	}
}
