package reconcile

import (
	"context"

	"vend-sync/core/vend"
)

// Remote is the subset of the Vend client the engine drives.
type Remote interface {
	CreateConsignment(ctx context.Context, body map[string]any) (*vend.Response, error)
	UpdateConsignment(ctx context.Context, id string, body map[string]any) (*vend.Response, error)
	CancelConsignment(ctx context.Context, id string, body map[string]any) (*vend.Response, error)
	ListConsignmentProducts(ctx context.Context, consignmentID string) (*vend.Response, error)
	CreateConsignmentProduct(ctx context.Context, body map[string]any) (*vend.Response, error)
	UpdateConsignmentProduct(ctx context.Context, id string, body map[string]any) (*vend.Response, error)
	DeleteConsignmentProduct(ctx context.Context, id string) (*vend.Response, error)
}

var _ Remote = (*vend.Client)(nil)
