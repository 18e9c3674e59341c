package catalog

import (
	"context"
	"maps"

	"vend-sync/core/utils"
	"vend-sync/core/vend"
	"vend-sync/core/xref"

	"go.uber.org/zap"
)

// References records sent products.
type References interface {
	Record(ctx context.Context, kind, identifier, vendID string, object map[string]any) (*xref.ExternalReference, error)
}

// Service handles catalog operations.
type Service struct {
	client *vend.Client
	refs   References
	logger *zap.Logger
}

// NewService creates a new catalog service. refs is optional.
func NewService(client *vend.Client, refs References, logger *zap.Logger) *Service {
	return &Service{client: client, refs: refs, logger: logger}
}

// AddProduct sends every changed variant of product and returns how many were sent.
func (s *Service) AddProduct(ctx context.Context, product map[string]any) (int, error) {
	sent := 0
	for _, variant := range objectsOf(product["variants"]) {
		v := maps.Clone(variant)
		v["description"] = product["description"]
		v["name"] = product["name"]
		v["handle"] = product["handle"]
		if old := utils.ToString(variant["old_handle"]); old != "" {
			v["handle"] = old
		}

		changed, err := s.resolveVariant(ctx, v)
		if err != nil {
			return sent, err
		}
		if !changed {
			continue
		}

		body := maps.Clone(product)
		delete(body, "variants")
		maps.Copy(body, v)

		resp, err := s.client.SendProduct(ctx, BuildProduct(body))
		if err != nil {
			return sent, err
		}
		sent++

		created := utils.Map(resp.Get("product"))
		s.record(ctx, utils.ToString(v["sku"]), created)
	}
	return sent, nil
}

// resolveVariant fills in the Vend id, handle and active flag of v and
// reports whether it needs to be sent.
func (s *Service) resolveVariant(ctx context.Context, v map[string]any) (bool, error) {
	id := utils.ToString(v["id"])
	if id == "" {
		return s.verifySKU(ctx, v)
	}

	current, err := s.client.FindProductByID(ctx, id)
	if err != nil {
		return false, err
	}
	if current == nil || current["deleted_at"] != nil {
		s.logger.Info("Product deleted in Vend, recreating", zap.String("id", id), zap.Any("sku", v["sku"]))
		v["id"] = nil
		return s.verifySKU(ctx, v)
	}

	v["active"] = vend.ProductActive(current)
	return utils.ToBool(v["changed"]), nil
}

func (s *Service) verifySKU(ctx context.Context, v map[string]any) (bool, error) {
	sku := utils.ToString(v["sku"])
	if sku == "" {
		return true, nil
	}

	matches, err := s.client.SearchSKU(ctx, sku)
	if err != nil {
		return false, err
	}

	var current map[string]any
	for _, m := range matches {
		if utils.ToString(m["sku"]) == sku {
			current = m
			break
		}
	}
	if current == nil {
		return true, nil
	}

	changed := utils.ToBool(v["changed"]) ||
		utils.ToString(current["sku"]) != sku ||
		utils.ToString(current["id"]) != utils.ToString(v["id"])

	v["id"] = current["id"]
	v["handle"] = current["handle"]
	v["active"] = vend.ProductActive(current)
	return changed, nil
}

func (s *Service) record(ctx context.Context, sku string, product map[string]any) {
	if s.refs == nil || sku == "" || product == nil {
		return
	}
	if _, err := s.refs.Record(ctx, xref.KindProduct, sku, utils.ToString(product["id"]), map[string]any{"vend": product}); err != nil {
		s.logger.Warn("Failed to record product reference", zap.String("sku", sku), zap.Error(err))
	}
}

// UpdateInventory posts inventory levels.
func (s *Service) UpdateInventory(ctx context.Context, inventory map[string]any) (*vend.Response, error) {
	return s.client.UpdateInventory(ctx, inventory)
}

// AddVendor creates or updates a supplier.
func (s *Service) AddVendor(ctx context.Context, vendor map[string]any) (*vend.Response, error) {
	return s.client.SendSupplier(ctx, BuildSupplier(vendor))
}

func objectsOf(val any) []map[string]any {
	var out []map[string]any
	for _, item := range utils.Slice(val) {
		if m := utils.Map(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}
