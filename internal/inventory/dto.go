package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
)

// RecordDTO is the API shape of a stock row.
type RecordDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Qty         int       `json:"qty"`
	PriceRoot   int64     `json:"price_root"`
	Status      int       `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImportItem is one receiving line: quantity is added to stock and the cost
// overwrites the last recorded purchase price.
type ImportItem struct {
	ProductID uuid.UUID
	Qty       int
	PriceRoot int64
}

// UpdateInput overwrites a stock row with absolute values.
type UpdateInput struct {
	Qty       *int
	PriceRoot *int64
	Status    *int
}

// ToDTO converts a stock row into its API shape.
func ToDTO(record *models.InventoryRecord) *RecordDTO {
	if record == nil {
		return nil
	}
	dto := &RecordDTO{
		ID:        record.ID,
		ProductID: record.ProductID,
		Qty:       record.Qty,
		PriceRoot: record.PriceRoot,
		Status:    record.Status,
		UpdatedAt: record.UpdatedAt,
	}
	if record.Product != nil {
		dto.ProductName = record.Product.Name
	}
	return dto
}

// ToDTOs converts a slice of stock rows.
func ToDTOs(records []models.InventoryRecord) []RecordDTO {
	out := make([]RecordDTO, 0, len(records))
	for i := range records {
		out = append(out, *ToDTO(&records[i]))
	}
	return out
}
