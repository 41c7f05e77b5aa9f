package promotions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:promotions?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  thumbnail TEXT,
  description TEXT,
  content TEXT,
  price_buy INTEGER NOT NULL,
  status INTEGER NOT NULL DEFAULT 1,
  is_new INTEGER NOT NULL DEFAULT 0,
  is_sale INTEGER NOT NULL DEFAULT 0,
  created_by TEXT,
  updated_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS product_sales (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price_sale INTEGER NOT NULL,
  date_begin DATETIME NOT NULL,
  date_end DATETIME NOT NULL,
  status INTEGER NOT NULL DEFAULT 1,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	require.NoError(t, conn.Exec("DELETE FROM product_sales").Error)
	require.NoError(t, conn.Exec("DELETE FROM products").Error)
	return conn
}

func newSalesService(t *testing.T, conn *gorm.DB) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(conn),
		Client: db.NewWithConn(conn),
	})
	require.NoError(t, err)
	return svc
}

func seedProduct(t *testing.T, conn *gorm.DB, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Chronograph",
		Slug:       "chronograph-" + uuid.NewString()[:8],
		PriceBuy:   price,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestCreateCapsSalePriceAtBasePrice(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	product := seedProduct(t, conn, 100000)

	begin := time.Now().UTC()
	end := begin.Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), CreateInput{
		ProductID: product.ID,
		Name:      "Flash",
		PriceSale: 150000,
		DateBegin: begin,
		DateEnd:   end,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	dto, err := svc.Create(context.Background(), CreateInput{
		ProductID: product.ID,
		Name:      "Flash",
		PriceSale: 80000,
		DateBegin: begin,
		DateEnd:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(80000), dto.PriceSale)
	assert.Equal(t, 1, dto.Status)
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)

	_, err := svc.Create(context.Background(), CreateInput{
		ProductID: uuid.New(),
		Name:      "Flash",
		PriceSale: 1,
		DateBegin: time.Now(),
		DateEnd:   time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestBatchUpsertCreatesAndUpdates(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	product := seedProduct(t, conn, 100000)

	begin := time.Now().UTC()
	end := begin.Add(72 * time.Hour)

	existing, err := svc.Create(context.Background(), CreateInput{
		ProductID: product.ID,
		Name:      "Summer",
		PriceSale: 90000,
		DateBegin: begin,
		DateEnd:   end,
	})
	require.NoError(t, err)

	out, err := svc.BatchUpsert(context.Background(), []BatchItem{
		{SaleID: &existing.ID, ProductID: product.ID, Name: "Summer v2", PriceSale: 85000, DateBegin: begin, DateEnd: end},
		{ProductID: product.ID, Name: "Clearance", PriceSale: 70000, DateBegin: begin, DateEnd: end},
	}, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Summer v2", out[0].Name)
	assert.Equal(t, int64(85000), out[0].PriceSale)
	assert.Equal(t, existing.ID, out[0].ID)

	var count int64
	require.NoError(t, conn.Model(&models.ProductSale{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestBatchUpsertRollsBackOnFailure(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	product := seedProduct(t, conn, 100000)

	begin := time.Now().UTC()
	end := begin.Add(time.Hour)

	_, err := svc.BatchUpsert(context.Background(), []BatchItem{
		{ProductID: product.ID, Name: "Good", PriceSale: 50000, DateBegin: begin, DateEnd: end},
		{ProductID: product.ID, Name: "Too expensive", PriceSale: 200000, DateBegin: begin, DateEnd: end},
	}, nil)
	require.Error(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.ProductSale{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBatchUpsertAppliesDiscounts(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	product := seedProduct(t, conn, 100000)

	begin := time.Now().UTC()
	end := begin.Add(time.Hour)

	percent := int64(20)
	amount := int64(150000)
	out, err := svc.BatchUpsert(context.Background(), []BatchItem{
		{ProductID: product.ID, Name: "Percent off", DiscountPercent: &percent, DateBegin: begin, DateEnd: end},
		{ProductID: product.ID, Name: "Amount off", DiscountAmount: &amount, DateBegin: begin, DateEnd: end},
	}, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(80000), out[0].PriceSale)
	assert.Equal(t, int64(0), out[1].PriceSale, "fixed discount floors at zero")

	_, err = svc.BatchUpsert(context.Background(), []BatchItem{
		{ProductID: product.ID, Name: "Both", DiscountPercent: &percent, DiscountAmount: &amount, DateBegin: begin, DateEnd: end},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestParseImportSkipsHeaderAndParsesRows(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)

	idA := uuid.New()
	idB := uuid.New()
	csvBody := "product_id,price_sale\n" +
		idA.String() + ",80000\n" +
		idB.String() + ",65000\n"

	rows, err := svc.ParseImport(context.Background(), strings.NewReader(csvBody))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, idA, rows[0].ProductID)
	assert.Equal(t, int64(80000), rows[0].PriceSale)

	var count int64
	require.NoError(t, conn.Model(&models.ProductSale{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "import must not write to the database")
}

func TestParseImportAccumulatesRowErrors(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)

	csvBody := "product_id,price_sale\n" +
		"not-a-uuid,80000\n" +
		uuid.NewString() + ",-5\n"

	_, err := svc.ParseImport(context.Background(), strings.NewReader(csvBody))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	product := seedProduct(t, conn, 100000)

	begin := time.Now().UTC()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			ProductID: product.ID,
			Name:      "Wave",
			PriceSale: 50000,
			DateBegin: begin,
			DateEnd:   begin.Add(time.Hour),
		})
		require.NoError(t, err)
	}

	dtos, meta, err := svc.List(context.Background(), pagination.Params{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, dtos, 2)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}
