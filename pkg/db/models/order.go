package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/enums"
)

// Order is the checkout header. The total is derived from the item amounts
// and never stored.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID        `gorm:"column:user_id;type:uuid"`
	Name      string            `gorm:"column:name;not null"`
	Email     *string           `gorm:"column:email"`
	Phone     string            `gorm:"column:phone;not null"`
	Address   string            `gorm:"column:address;not null"`
	Note      *string           `gorm:"column:note"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:1"`
	CreatedBy *uuid.UUID        `gorm:"column:created_by;type:uuid"`
	UpdatedBy *uuid.UUID        `gorm:"column:updated_by;type:uuid"`
	User      *User             `gorm:"foreignKey:UserID"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
