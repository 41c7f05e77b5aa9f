package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord tracks quantity on hand and last purchase cost per product.
// The unique index on product_id makes the one-row-per-product invariant a
// schema guarantee instead of a query-order assumption.
type InventoryRecord struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	Qty       int       `gorm:"column:qty;not null;default:0"`
	PriceRoot int64     `gorm:"column:price_root;not null;default:0"`
	Status    int       `gorm:"column:status;not null;default:1"`
	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
