package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is a gallery entry attached to a product.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Image     string    `gorm:"column:image;not null"`
	Alt       string    `gorm:"column:alt;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
