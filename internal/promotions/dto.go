package promotions

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
)

// SaleDTO is the API shape of a sale campaign row.
type SaleDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Name        string    `json:"name"`
	PriceSale   int64     `json:"price_sale"`
	DateBegin   time.Time `json:"date_begin"`
	DateEnd     time.Time `json:"date_end"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput carries validated fields for a new sale window.
type CreateInput struct {
	ProductID uuid.UUID
	Name      string
	PriceSale int64
	DateBegin time.Time
	DateEnd   time.Time
	Status    *int
	CreatedBy *uuid.UUID
}

// UpdateInput carries validated fields for a sale update.
type UpdateInput struct {
	Name      *string
	PriceSale *int64
	DateBegin *time.Time
	DateEnd   *time.Time
	Status    *int
}

// BatchItem is one row of a campaign batch upsert. A nil SaleID creates a new
// row; a present SaleID updates that row. A discount, percent or fixed,
// replaces PriceSale with a price computed from the product's base price.
type BatchItem struct {
	SaleID          *uuid.UUID
	ProductID       uuid.UUID
	Name            string
	PriceSale       int64
	DiscountPercent *int64
	DiscountAmount  *int64
	DateBegin       time.Time
	DateEnd         time.Time
}

// ImportRow is one parsed line of a sales CSV upload.
type ImportRow struct {
	ProductID uuid.UUID `json:"product_id"`
	PriceSale int64     `json:"price_sale"`
}

// ToDTO converts a sale model into its API shape.
func ToDTO(sale *models.ProductSale) *SaleDTO {
	if sale == nil {
		return nil
	}
	dto := &SaleDTO{
		ID:        sale.ID,
		ProductID: sale.ProductID,
		Name:      sale.Name,
		PriceSale: sale.PriceSale,
		DateBegin: sale.DateBegin,
		DateEnd:   sale.DateEnd,
		Status:    int(sale.Status),
		CreatedAt: sale.CreatedAt,
	}
	if sale.Product != nil {
		dto.ProductName = sale.Product.Name
	}
	return dto
}

// ToDTOs converts a slice of sale models.
func ToDTOs(sales []models.ProductSale) []SaleDTO {
	out := make([]SaleDTO, 0, len(sales))
	for i := range sales {
		out = append(out, *ToDTO(&sales[i]))
	}
	return out
}

func saleStatus(raw *int) enums.SaleStatus {
	if raw == nil {
		return enums.SaleStatusActive
	}
	return enums.SaleStatus(*raw)
}
