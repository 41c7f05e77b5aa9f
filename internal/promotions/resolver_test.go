package promotions

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
)

func saleAt(price int64, begin, end time.Time, createdAt time.Time, status enums.SaleStatus) models.ProductSale {
	return models.ProductSale{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      "campaign",
		PriceSale: price,
		DateBegin: begin,
		DateEnd:   end,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestResolveIgnoresInactiveAndOutOfWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sales := []models.ProductSale{
		saleAt(80000, now.Add(-time.Hour), now.Add(time.Hour), now.Add(-2*time.Hour), enums.SaleStatusInactive),
		saleAt(70000, now.Add(time.Hour), now.Add(2*time.Hour), now.Add(-2*time.Hour), enums.SaleStatusActive),
		saleAt(60000, now.Add(-2*time.Hour), now.Add(-time.Hour), now.Add(-2*time.Hour), enums.SaleStatusActive),
	}

	assert.Nil(t, Resolve(sales, now))
}

func TestResolveWindowBoundsAreInclusive(t *testing.T) {
	begin := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	sales := []models.ProductSale{
		saleAt(80000, begin, end, begin.Add(-time.Hour), enums.SaleStatusActive),
	}

	require.NotNil(t, Resolve(sales, begin))
	require.NotNil(t, Resolve(sales, end))
	assert.Nil(t, Resolve(sales, begin.Add(-time.Second)))
	assert.Nil(t, Resolve(sales, end.Add(time.Second)))
}

func TestResolveMostRecentlyCreatedWins(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older := saleAt(50000, now.Add(-time.Hour), now.Add(time.Hour), now.Add(-3*time.Hour), enums.SaleStatusActive)
	newer := saleAt(90000, now.Add(-time.Hour), now.Add(time.Hour), now.Add(-time.Hour), enums.SaleStatusActive)

	winner := Resolve([]models.ProductSale{older, newer}, now)
	require.NotNil(t, winner)
	assert.Equal(t, newer.ID, winner.ID)
	assert.Equal(t, int64(90000), winner.PriceSale)
}

func TestResolveTieBrokenByGreatestID(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	createdAt := now.Add(-time.Hour)

	a := saleAt(50000, now.Add(-time.Hour), now.Add(time.Hour), createdAt, enums.SaleStatusActive)
	b := saleAt(90000, now.Add(-time.Hour), now.Add(time.Hour), createdAt, enums.SaleStatusActive)
	a.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b.ID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	winner := Resolve([]models.ProductSale{b, a}, now)
	require.NotNil(t, winner)
	assert.Equal(t, b.ID, winner.ID)

	winner = Resolve([]models.ProductSale{a, b}, now)
	require.NotNil(t, winner)
	assert.Equal(t, b.ID, winner.ID)
}

func TestEffectivePriceFallsBackToBase(t *testing.T) {
	now := time.Now().UTC()
	product := &models.Product{PriceBuy: 120000}
	assert.Equal(t, int64(120000), EffectivePrice(product, now))

	product.Sales = []models.ProductSale{
		saleAt(99000, now.Add(-time.Hour), now.Add(time.Hour), now.Add(-time.Hour), enums.SaleStatusActive),
	}
	assert.Equal(t, int64(99000), EffectivePrice(product, now))
}
