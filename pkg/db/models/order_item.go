package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one cart line: unit price, quantity, and the computed
// amount (price * qty) at checkout time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Price     int64     `gorm:"column:price;not null"`
	Qty       int       `gorm:"column:qty;not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
