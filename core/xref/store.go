package xref

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store persists external references.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the references table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&ExternalReference{}); err != nil {
		return fmt.Errorf("failed to migrate external references: %w", err)
	}
	return nil
}

// Find returns the reference for kind and identifier, or nil when there is none.
func (s *Store) Find(ctx context.Context, kind, identifier string) (*ExternalReference, error) {
	var ref ExternalReference
	err := s.db.WithContext(ctx).Where("kind = ? AND identifier = ?", kind, identifier).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s reference %q: %w", kind, identifier, err)
	}
	return &ref, nil
}

// Record creates or replaces the reference for kind and identifier.
func (s *Store) Record(ctx context.Context, kind, identifier, vendID string, object map[string]any) (*ExternalReference, error) {
	ref, err := s.Find(ctx, kind, identifier)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		ref = &ExternalReference{Kind: kind, Identifier: identifier}
	}
	ref.VendID = vendID
	ref.Object = object

	if err := s.db.WithContext(ctx).Save(ref).Error; err != nil {
		return nil, fmt.Errorf("failed to record %s reference %q: %w", kind, identifier, err)
	}
	return ref, nil
}

// CancelTransfer marks the SENT and RECEIVED references of a transfer order
// as cancelled. It returns how many references were changed.
func (s *Store) CancelTransfer(ctx context.Context, name string) (int, error) {
	changed := 0
	for _, suffix := range []string{"SENT", "RECEIVED"} {
		ref, err := s.Find(ctx, KindTransferOrder, name+suffix)
		if err != nil {
			return changed, err
		}
		if ref == nil {
			continue
		}

		if ref.Object == nil {
			ref.Object = map[string]any{}
		}
		vend, _ := ref.Object["vend"].(map[string]any)
		if vend == nil {
			vend = map[string]any{}
		}
		vend["status"] = "CANCELLED"
		ref.Object["vend"] = vend

		if err := s.db.WithContext(ctx).Save(ref).Error; err != nil {
			return changed, fmt.Errorf("failed to cancel transfer reference %q: %w", ref.Identifier, err)
		}
		changed++
	}
	return changed, nil
}
