package orders

import (
	"vend-sync/core/endpoint"
	"vend-sync/core/logger"
	"vend-sync/core/reconcile"
	"vend-sync/core/vend"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// consignmentRef identifies a consignment to read.
type consignmentRef struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
	channel string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, channel string) *Handler {
	return &Handler{service: service, channel: channel}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/add_purchase_order", h.HandleAddPurchaseOrder)
	app.Post("/add_transfer_order", h.HandleAddTransferOrder)
	app.Post("/get_purchase_order", h.handleGet("purchase_order", "Retrieved Consignment %s purchase order from Vend"))
	app.Post("/get_transfer_order", h.handleGet("transfer_order", "Retrieved Consignment %s transfer order from Vend"))
	app.Post("/get_inventory_counts", h.handleGet("inventory_adjustment", "Retrieved inventory count %s from Vend"))
	app.Post("/add_order", h.HandleAddOrder)
}

// HandleAddPurchaseOrder reconciles a purchase order. Cancellations and
// receipts answer without an object.
func (h *Handler) HandleAddPurchaseOrder(c *fiber.Ctx) error {
	req, res, err := h.begin(c)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	var order reconcile.Order
	if err := req.Object("purchase_order", &order); err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	resp, err := h.service.AddPurchaseOrder(c.Context(), &order)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	if order.Status != vend.StatusCancelled && order.TxnType != reconcile.TxnTypeReceipt {
		res.AddObject("purchase_order", consignmentObject(resp))
		res.SetSummary("Added purchase order %s to Vend", resp.String("name"))
	}
	return endpoint.Finish(c, h.service.logger, res, nil)
}

// HandleAddTransferOrder reconciles a transfer order.
func (h *Handler) HandleAddTransferOrder(c *fiber.Ctx) error {
	req, res, err := h.begin(c)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	var order reconcile.Order
	if err := req.Object("transfer_order", &order); err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	resp, skipped, err := h.service.AddTransferOrder(c.Context(), &order)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	if skipped {
		logger.WithRayID(h.service.logger, c).Info("Transfer order already received", zap.String("consignment_id", order.RemoteID()))
	}
	if !skipped && order.Status != vend.StatusCancelled && order.TxnType != reconcile.TxnTypeReceipt {
		res.AddObject("transfer_order", consignmentObject(resp))
		res.SetSummary("Added transfer order %s to Vend", resp.String("name"))
	}
	return endpoint.Finish(c, h.service.logger, res, nil)
}

func (h *Handler) handleGet(kind, summary string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, res, err := h.begin(c)
		if err != nil {
			return endpoint.Finish(c, h.service.logger, res, err)
		}

		var ref consignmentRef
		if err := req.Object(kind, &ref); err != nil {
			return endpoint.Finish(c, h.service.logger, res, err)
		}

		data, err := h.service.GetConsignment(c.Context(), ref.ID)
		if err != nil {
			return endpoint.Finish(c, h.service.logger, res, err)
		}
		if len(data) > 0 {
			res.SetSummary(summary, data["id"])
			res.AddObject(kind, data)
		}
		return endpoint.Finish(c, h.service.logger, res, nil)
	}
}

// HandleAddOrder records a register sale.
func (h *Handler) HandleAddOrder(c *fiber.Ctx) error {
	req, res, err := h.begin(c)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	var sale Sale
	if err := req.Object("order", &sale); err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}

	created, err := h.service.AddSale(c.Context(), &sale)
	if err != nil {
		return endpoint.Finish(c, h.service.logger, res, err)
	}
	res.AddObject("order", created)
	res.SetSummary("The order %s was sent to Vend POS.", sale.ID)
	return endpoint.Finish(c, h.service.logger, res, nil)
}

func (h *Handler) begin(c *fiber.Ctx) (*endpoint.Request, *endpoint.Result, error) {
	req, err := endpoint.Parse(c)
	if err != nil {
		return nil, endpoint.NewResult(&endpoint.Request{}, h.channel), err
	}
	return req, endpoint.NewResult(req, h.channel), nil
}
