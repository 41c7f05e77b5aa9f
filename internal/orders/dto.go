package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
)

// ItemInput is one cart line submitted at checkout.
type ItemInput struct {
	ProductID uuid.UUID
	Qty       int
}

// CreateInput carries validated checkout fields.
type CreateInput struct {
	UserID  *uuid.UUID
	Name    string
	Email   *string
	Phone   string
	Address string
	Note    *string
	Items   []ItemInput
}

// OrderItemDTO is one priced line on an order.
type OrderItemDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Price       int64     `json:"price"`
	Qty         int       `json:"qty"`
	Amount      int64     `json:"amount"`
}

// OrderDTO is the API shape of an order. TotalAmount is derived from the
// item amounts, never stored.
type OrderDTO struct {
	ID          uuid.UUID      `json:"id"`
	UserID      *uuid.UUID     `json:"user_id,omitempty"`
	Name        string         `json:"name"`
	Email       *string        `json:"email"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	Note        *string        `json:"note"`
	Status      int            `json:"status"`
	StatusLabel string         `json:"status_label"`
	TotalAmount int64          `json:"total_amount"`
	Items       []OrderItemDTO `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ToDTO converts an order model into its API shape.
func ToDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:          order.ID,
		UserID:      order.UserID,
		Name:        order.Name,
		Email:       order.Email,
		Phone:       order.Phone,
		Address:     order.Address,
		Note:        order.Note,
		Status:      int(order.Status),
		StatusLabel: order.Status.String(),
		Items:       make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range order.Items {
		line := OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Qty:       item.Qty,
			Amount:    item.Amount,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		dto.TotalAmount += item.Amount
		dto.Items = append(dto.Items, line)
	}
	return dto
}

// ToDTOs converts a slice of order models.
func ToDTOs(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *ToDTO(&orders[i]))
	}
	return out
}
