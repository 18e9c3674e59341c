package mocks

import (
	"context"

	"vend-sync/core/vend"

	"github.com/stretchr/testify/mock"
)

// Remote is a mock implementation of reconcile.Remote
type Remote struct {
	mock.Mock
}

func response(args mock.Arguments) (*vend.Response, error) {
	if resp, ok := args.Get(0).(*vend.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Remote) CreateConsignment(ctx context.Context, body map[string]any) (*vend.Response, error) {
	return response(m.Called(ctx, body))
}

func (m *Remote) UpdateConsignment(ctx context.Context, id string, body map[string]any) (*vend.Response, error) {
	return response(m.Called(ctx, id, body))
}

func (m *Remote) CancelConsignment(ctx context.Context, id string, body map[string]any) (*vend.Response, error) {
	return response(m.Called(ctx, id, body))
}

func (m *Remote) ListConsignmentProducts(ctx context.Context, consignmentID string) (*vend.Response, error) {
	return response(m.Called(ctx, consignmentID))
}

func (m *Remote) CreateConsignmentProduct(ctx context.Context, body map[string]any) (*vend.Response, error) {
	return response(m.Called(ctx, body))
}

func (m *Remote) UpdateConsignmentProduct(ctx context.Context, id string, body map[string]any) (*vend.Response, error) {
	return response(m.Called(ctx, id, body))
}

func (m *Remote) DeleteConsignmentProduct(ctx context.Context, id string) (*vend.Response, error) {
	return response(m.Called(ctx, id))
}
