package xref

import "time"

// Reference kinds.
const (
	KindProduct       = "product"
	KindTransferOrder = "transfer_order"
)

// ExternalReference links a local identifier to its Vend object.
type ExternalReference struct {
	ID         uint           `gorm:"primaryKey"`
	Kind       string         `gorm:"size:64;not null;uniqueIndex:idx_kind_identifier"`
	Identifier string         `gorm:"size:255;not null;uniqueIndex:idx_kind_identifier"`
	VendID     string         `gorm:"size:64;index"`
	Object     map[string]any `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default table name.
func (ExternalReference) TableName() string {
	return "external_references"
}

// VendStatus returns object.vend.status, if present.
func (r *ExternalReference) VendStatus() string {
	vend, _ := r.Object["vend"].(map[string]any)
	status, _ := vend["status"].(string)
	return status
}
