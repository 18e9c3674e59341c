package polling

import (
	"context"
	"fmt"
	"sort"

	"vend-sync/core/vend"
	"vend-sync/feature/catalog"
	"vend-sync/feature/customers"

	"go.uber.org/zap"
)

// Source is one pollable listing.
type Source struct {
	// Name is the listing name used in routes, e.g. "purchase_orders".
	Name string
	// Kind is the object kind each item is reported as.
	Kind  string
	fetch func(ctx context.Context, since string) ([]map[string]any, error)
}

// Service polls Vend listings.
type Service struct {
	sources map[string]Source
	logger  *zap.Logger
}

// NewService creates a polling service over client.
func NewService(client *vend.Client, logger *zap.Logger) *Service {
	resource := func(res vend.Resource) func(context.Context, string) ([]map[string]any, error) {
		return func(ctx context.Context, since string) ([]map[string]any, error) {
			return client.Poll(ctx, res, since)
		}
	}

	sources := []Source{
		{Name: "outlets", Kind: "outlet", fetch: resource(vend.ResourceOutlets)},
		{Name: "customers", Kind: "customer", fetch: func(ctx context.Context, since string) ([]map[string]any, error) {
			found, err := client.Customers(ctx, vend.CustomerFilter{Since: since})
			return mapEach(found, customers.ParseCustomer), err
		}},
		{Name: "products", Kind: "product", fetch: func(ctx context.Context, since string) ([]map[string]any, error) {
			found, err := client.Products(ctx, since)
			return mapEach(found, catalog.ParseProduct), err
		}},
		{Name: "purchase_orders", Kind: "purchase_order", fetch: resource(vend.ResourceConsignments)},
		{Name: "vendors", Kind: "vendor", fetch: resource(vend.ResourceSuppliers)},
		{Name: "register_sales", Kind: "register_sale", fetch: resource(vend.ResourceRegisterSales)},
		{Name: "tax_rates", Kind: "tax_rate", fetch: resource(vend.ResourceTaxes)},
		{Name: "inventories", Kind: "inventory", fetch: client.Inventories},
	}

	s := &Service{sources: make(map[string]Source, len(sources)), logger: logger}
	for _, src := range sources {
		s.sources[src.Name] = src
	}
	return s
}

// Sources returns the listing names in alphabetical order.
func (s *Service) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fetch lists the named source.
func (s *Service) Fetch(ctx context.Context, name, since string) (Source, []map[string]any, error) {
	src, ok := s.sources[name]
	if !ok {
		return Source{}, nil, fmt.Errorf("unknown listing %q", name)
	}

	items, err := src.fetch(ctx, since)
	if err != nil {
		return src, nil, err
	}
	s.logger.Debug("Polled Vend listing", zap.String("listing", name), zap.String("since", since), zap.Int("count", len(items)))
	return src, items, nil
}

func mapEach(items []map[string]any, fn func(map[string]any) map[string]any) []map[string]any {
	if items == nil {
		return nil
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
