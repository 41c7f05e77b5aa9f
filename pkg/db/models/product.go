package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical catalog listing. PriceBuy is the base price in
// whole currency units; the effective sale price is resolved against the
// Sales association at read time and never stored.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Name        string           `gorm:"column:name;not null"`
	Slug        string           `gorm:"column:slug;not null;uniqueIndex"`
	Thumbnail   *string          `gorm:"column:thumbnail"`
	Description *string          `gorm:"column:description"`
	Content     *string          `gorm:"column:content"`
	PriceBuy    int64            `gorm:"column:price_buy;not null"`
	Status      int              `gorm:"column:status;not null;default:1"`
	IsNew       bool             `gorm:"column:is_new;not null;default:false"`
	IsSale      bool             `gorm:"column:is_sale;not null;default:false"`
	CreatedBy   *uuid.UUID       `gorm:"column:created_by;type:uuid"`
	UpdatedBy   *uuid.UUID       `gorm:"column:updated_by;type:uuid"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Sales       []ProductSale    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Store       *InventoryRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
