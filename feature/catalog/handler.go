package catalog

import (
	"vend-sync/core/endpoint"
	"vend-sync/core/logger"
	"vend-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
	channel string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, channel string) *Handler {
	return &Handler{service: service, channel: channel}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/add_product", h.HandleAddProduct)
	app.Post("/update_inventory", h.HandleUpdateInventory)
	app.Post("/add_vendor", h.HandleAddVendor)
}

// HandleAddProduct sends a product and its variants.
func (h *Handler) HandleAddProduct(c *fiber.Ctx) error {
	req, res, err := h.begin(c)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	var product map[string]any
	if err := req.Object("product", &product); err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	sent, err := h.service.AddProduct(c.Context(), product)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	logger.WithRayID(h.service.logger, c).Debug("Product variants sent", zap.Any("name", product["name"]), zap.Int("sent", sent))
	res.SetSummary("The product %s was sent to Vend POS.", utils.ToString(product["name"]))
	return endpoint.Finish(c, h.service.logger, res, nil)
}

// HandleUpdateInventory posts inventory levels. An empty payload is skipped.
func (h *Handler) HandleUpdateInventory(c *fiber.Ctx) error {
	req, res, err := h.begin(c)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	if req.Empty("inventory") {
		res.SetSummary("update inventory skip to Vend")
		return endpoint.Finish(c, h.service.logger, res, nil)
	}

	var inventory map[string]any
	if err := req.Object("inventory", &inventory); err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	resp, err := h.service.UpdateInventory(c.Context(), inventory)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	sku := utils.ToString(inventory["sku"])
	if product := utils.Map(resp.Get("product")); product != nil && utils.ToString(product["sku"]) != "" {
		sku = utils.ToString(product["sku"])
	}
	res.SetSummary("update inventory %s to Vend", sku)
	return endpoint.Finish(c, h.service.logger, res, nil)
}

// HandleAddVendor creates or updates a supplier.
func (h *Handler) HandleAddVendor(c *fiber.Ctx) error {
	req, res, err := h.begin(c)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	var vendor map[string]any
	if err := req.Object("vendor", &vendor); err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	resp, err := h.service.AddVendor(c.Context(), vendor)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}
	res.AddObject("vendor", resp.Body)
	res.SetSummary("Added vendor %s to Vend", resp.String("name"))
	return endpoint.Finish(c, h.service.logger, res, nil)
}

func (h *Handler) begin(c *fiber.Ctx) (*endpoint.Request, *endpoint.Result, error) {
	req, err := endpoint.Parse(c)
	if err != nil {
		return nil, endpoint.NewResult(&endpoint.Request{}, h.channel), err
	}
	return req, endpoint.NewResult(req, h.channel), nil
}
