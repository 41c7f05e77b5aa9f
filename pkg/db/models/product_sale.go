package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/enums"
)

// ProductSale is a time-bounded price override for a product. Several rows
// may exist per product with overlapping windows; the resolver picks the
// winner at read time.
type ProductSale struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Name      string            `gorm:"column:name;not null"`
	PriceSale int64             `gorm:"column:price_sale;not null"`
	DateBegin time.Time         `gorm:"column:date_begin;not null"`
	DateEnd   time.Time         `gorm:"column:date_end;not null"`
	Status    enums.SaleStatus  `gorm:"column:status;not null;default:1"`
	CreatedBy *uuid.UUID        `gorm:"column:created_by;type:uuid"`
	Product   *Product          `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
