// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which names the feature,
// reports whether it is enabled and registers its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry of features. Register adds one; LoadAll loads
// every enabled feature in registration order and stops at the first error.
//
// Orders, catalog, customers and polling are each a feature, so they can be
// developed and tested in isolation.
package loader
