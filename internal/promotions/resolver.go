package promotions

import (
	"strings"
	"time"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
)

// Resolve picks the single effective sale for a product at the given instant,
// or nil when no sale applies. A sale applies when it is active and the
// instant falls inside [date_begin, date_end], both bounds inclusive. When
// several windows overlap the most recently created row wins; equal creation
// times fall back to the greatest ID so the outcome stays deterministic.
func Resolve(sales []models.ProductSale, now time.Time) *models.ProductSale {
	var winner *models.ProductSale
	for i := range sales {
		sale := &sales[i]
		if sale.Status != enums.SaleStatusActive {
			continue
		}
		if now.Before(sale.DateBegin) || now.After(sale.DateEnd) {
			continue
		}
		if winner == nil || beats(sale, winner) {
			winner = sale
		}
	}
	return winner
}

// EffectivePrice returns the price a product sells at right now.
func EffectivePrice(product *models.Product, now time.Time) int64 {
	if product == nil {
		return 0
	}
	if sale := Resolve(product.Sales, now); sale != nil {
		return sale.PriceSale
	}
	return product.PriceBuy
}

func beats(candidate, current *models.ProductSale) bool {
	if candidate.CreatedAt.After(current.CreatedAt) {
		return true
	}
	if candidate.CreatedAt.Before(current.CreatedAt) {
		return false
	}
	return strings.Compare(candidate.ID.String(), current.ID.String()) > 0
}
