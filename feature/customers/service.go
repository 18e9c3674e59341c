package customers

import (
	"context"

	"vend-sync/core/utils"
	"vend-sync/core/vend"

	"go.uber.org/zap"
)

// Service handles customer operations.
type Service struct {
	client *vend.Client
	logger *zap.Logger
}

// NewService creates a new customer service.
func NewService(client *vend.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// AddCustomer creates a customer.
func (s *Service) AddCustomer(ctx context.Context, customer map[string]any) (*vend.Response, error) {
	return s.client.SendCustomer(ctx, BuildCustomer(customer))
}

// UpdateCustomer updates the Vend customer registered under the payload's
// email. When none exists the customer is created.
func (s *Service) UpdateCustomer(ctx context.Context, customer map[string]any) (*vend.Response, error) {
	body := BuildCustomer(customer)

	if email := utils.ToString(customer["email"]); email != "" {
		existing, err := s.client.Customers(ctx, vend.CustomerFilter{Email: email})
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			body["id"] = existing[0]["id"]
		} else {
			s.logger.Debug("No Vend customer for email, creating", zap.String("email", email))
		}
	}
	return s.client.SendCustomer(ctx, body)
}
