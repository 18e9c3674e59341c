package orders

import (
	"vend-sync/core/vend"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new orders feature.
func NewFeature(client *vend.Client, refs TransferReferences, archive Archiver, channel string, logger *zap.Logger) *Feature {
	svc := NewService(client, refs, archive, logger)
	return &Feature{service: svc, handler: NewHandler(svc, channel)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "orders"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
