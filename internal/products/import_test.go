package products

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
)

func TestImportCreatesProductInventoryAndGallery(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)

	csvBody := strings.Join([]string{
		"name,category,price,qty,cost,description,content,thumbnail",
		"Steel Diver,Watches,200000,5,140000,A diver,Full text,/storage/products/diver.png",
		"Gold Band,Rings,80000,2,,,,",
	}, "\n")

	result, err := svc.Import(context.Background(), strings.NewReader(csvBody), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)

	var products []models.Product
	require.NoError(t, conn.Order("name").Find(&products).Error)
	require.Len(t, products, 2)

	gold, steel := products[0], products[1]
	assert.Equal(t, "Gold Band", gold.Name)
	assert.Equal(t, "Steel Diver", steel.Name)

	var categories []models.Category
	require.NoError(t, conn.Order("name").Find(&categories).Error)
	require.Len(t, categories, 2)
	assert.Equal(t, "Rings", categories[0].Name)

	var steelStock models.InventoryRecord
	require.NoError(t, conn.Where("product_id = ?", steel.ID).First(&steelStock).Error)
	assert.Equal(t, 5, steelStock.Qty)
	assert.Equal(t, int64(140000), steelStock.PriceRoot)

	// missing cost defaults to 70% of price
	var goldStock models.InventoryRecord
	require.NoError(t, conn.Where("product_id = ?", gold.ID).First(&goldStock).Error)
	assert.Equal(t, int64(56000), goldStock.PriceRoot)

	var images int64
	require.NoError(t, conn.Model(&models.ProductImage{}).Count(&images).Error)
	assert.Equal(t, int64(1), images)
}

func TestImportSkipsHeaderAndShortRows(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)

	csvBody := strings.Join([]string{
		"name,category,price",
		"only-two,cells",
		"Steel Diver,Watches,200000",
	}, "\n")

	result, err := svc.Import(context.Background(), strings.NewReader(csvBody), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportAccumulatesRowErrorsAndWritesNothing(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)

	csvBody := strings.Join([]string{
		"name,category,price,qty",
		"Steel Diver,Watches,not-a-price,5",
		"Gold Band,Rings,80000,minus",
	}, "\n")

	_, err := svc.Import(context.Background(), strings.NewReader(csvBody), nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Len(t, details, 2)

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestImportRejectsEmptySpreadsheet(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)

	_, err := svc.Import(context.Background(), strings.NewReader("name,category,price\n"), nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
