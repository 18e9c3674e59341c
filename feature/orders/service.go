package orders

import (
	"context"

	"vend-sync/core/reconcile"
	"vend-sync/core/vend"

	"go.uber.org/zap"
)

// TransferReferences marks transfer order references cancelled.
type TransferReferences interface {
	CancelTransfer(ctx context.Context, name string) (int, error)
}

// Archiver stores reconciled documents.
type Archiver interface {
	Put(ctx context.Context, kind, id string, doc any) (string, error)
}

// Service handles order operations.
type Service struct {
	client  *vend.Client
	engine  *reconcile.Engine
	refs    TransferReferences
	archive Archiver
	logger  *zap.Logger
}

// NewService creates a new orders service. refs and archive are optional.
func NewService(client *vend.Client, refs TransferReferences, archive Archiver, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		engine:  reconcile.NewEngine(client, logger, client.Concurrency()),
		refs:    refs,
		archive: archive,
		logger:  logger,
	}
}

// AddPurchaseOrder reconciles a purchase order with Vend.
func (s *Service) AddPurchaseOrder(ctx context.Context, order *reconcile.Order) (*vend.Response, error) {
	resp, err := s.engine.Reconcile(ctx, order)
	if err != nil {
		return nil, err
	}
	s.archiveConsignment(ctx, "purchase_order", resp)
	return resp, nil
}

// AddTransferOrder reconciles a transfer order with Vend. A receipt for a
// consignment Vend already reports as RECEIVED is not applied again, since
// Vend would add the stock twice; skipped is true in that case.
func (s *Service) AddTransferOrder(ctx context.Context, order *reconcile.Order) (resp *vend.Response, skipped bool, err error) {
	if order.TxnType == reconcile.TxnTypeReceipt && order.RemoteID() != "" {
		status, err := s.client.GetPurchaseOrderStatus(ctx, order.RemoteID())
		if err != nil {
			return nil, false, err
		}
		skipped = status == vend.StatusReceived
	}

	if !skipped {
		resp, err = s.engine.Reconcile(ctx, order)
		if err != nil {
			return nil, false, err
		}
		s.archiveConsignment(ctx, "transfer_order", resp)
	}

	if order.Status == vend.StatusCancelled && s.refs != nil && order.TransferName != "" {
		n, err := s.refs.CancelTransfer(ctx, order.TransferName)
		if err != nil {
			return nil, skipped, err
		}
		s.logger.Info("Cancelled transfer references", zap.String("transfer", order.TransferName), zap.Int("count", n))
	}
	return resp, skipped, nil
}

// GetConsignment reads a consignment and its ordered line items.
func (s *Service) GetConsignment(ctx context.Context, id string) (map[string]any, error) {
	resp, err := s.client.GetPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// AddSale records a register sale and returns the created sale.
func (s *Service) AddSale(ctx context.Context, sale *Sale) (map[string]any, error) {
	body, err := buildRegisterSale(ctx, s.client, sale)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.SendOrder(ctx, body)
	if err != nil {
		return nil, err
	}
	if created, ok := resp.Get("register_sale").(map[string]any); ok {
		return created, nil
	}
	return resp.Body, nil
}

func (s *Service) archiveConsignment(ctx context.Context, kind string, resp *vend.Response) {
	if s.archive == nil {
		return
	}
	key, err := s.archive.Put(ctx, kind, resp.String("id"), resp.Body)
	if err != nil {
		s.logger.Warn("Failed to archive consignment", zap.String("kind", kind), zap.Error(err))
		return
	}
	s.logger.Debug("Archived consignment", zap.String("key", key))
}
