package products

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/internal/categories"
	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

type stubThumbStore struct {
	saved   []string
	deleted []string
}

func (s *stubThumbStore) Save(header *multipart.FileHeader, subdir string) (string, error) {
	url := "/storage/" + subdir + "/" + header.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *stubThumbStore) Delete(publicURL string) error {
	s.deleted = append(s.deleted, publicURL)
	return nil
}

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:products?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL,
  status INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
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
CREATE TABLE IF NOT EXISTS product_images (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  image TEXT NOT NULL,
  alt TEXT NOT NULL,
  created_at DATETIME
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
);`, `
CREATE TABLE IF NOT EXISTS inventory_records (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL UNIQUE,
  qty INTEGER NOT NULL DEFAULT 0,
  price_root INTEGER NOT NULL DEFAULT 0,
  status INTEGER NOT NULL DEFAULT 1,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	for _, table := range []string{"inventory_records", "product_sales", "product_images", "products", "categories"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

func newProductsService(t *testing.T, conn *gorm.DB) (*Service, *stubThumbStore) {
	t.Helper()

	catSvc, err := categories.NewService(categories.ServiceParams{Repo: categories.NewRepository(conn)})
	require.NoError(t, err)

	store := &stubThumbStore{}
	svc, err := NewService(ServiceParams{
		Repo:       NewRepository(conn),
		Client:     db.NewWithConn(conn),
		Store:      store,
		Categories: catSvc,
	})
	require.NoError(t, err)
	return svc, store
}

func seedCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.New(), Name: name, Slug: strings.ToLower(name), Status: 1}
	require.NoError(t, conn.Create(category).Error)
	return category
}

func TestCreateIdenticalNamesGetDistinctSlugs(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)
	category := seedCategory(t, conn, "Watches")

	first, err := svc.Create(context.Background(), CreateInput{
		CategoryID: category.ID,
		Name:       "Classic Chronograph",
		PriceBuy:   150000,
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), CreateInput{
		CategoryID: category.ID,
		Name:       "Classic Chronograph",
		PriceBuy:   150000,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.Slug, "classic-chronograph-"))
	assert.True(t, strings.HasPrefix(second.Slug, "classic-chronograph-"))
	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)

	_, err := svc.Create(context.Background(), CreateInput{
		CategoryID: uuid.New(),
		Name:       "Orphan",
		PriceBuy:   1000,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersCompose(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)
	watches := seedCategory(t, conn, "Watches")
	rings := seedCategory(t, conn, "Rings")

	mk := func(name string, categoryID uuid.UUID, price int64, isNew bool) {
		t.Helper()
		_, err := svc.Create(context.Background(), CreateInput{
			CategoryID: categoryID,
			Name:       name,
			PriceBuy:   price,
			IsNew:      isNew,
		})
		require.NoError(t, err)
	}
	mk("Steel Diver", watches.ID, 200000, true)
	mk("Gold Diver", watches.ID, 500000, false)
	mk("Silver Band", rings.ID, 80000, true)

	dtos, meta, err := svc.List(context.Background(), ListQuery{
		CategoryID: &watches.ID,
	})
	require.NoError(t, err)
	assert.Len(t, dtos, 2)
	assert.Equal(t, int64(2), meta.Total)

	isNew := true
	dtos, _, err = svc.List(context.Background(), ListQuery{
		CategoryID: &watches.ID,
		IsNew:      &isNew,
	})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Steel Diver", dtos[0].Name)

	dtos, _, err = svc.List(context.Background(), ListQuery{Keyword: "Diver"})
	require.NoError(t, err)
	assert.Len(t, dtos, 2)

	min, max := int64(100000), int64(300000)
	dtos, _, err = svc.List(context.Background(), ListQuery{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Steel Diver", dtos[0].Name)

	dtos, _, err = svc.List(context.Background(), ListQuery{Sort: enums.ProductSortPriceAsc})
	require.NoError(t, err)
	require.Len(t, dtos, 3)
	assert.Equal(t, "Silver Band", dtos[0].Name)
	assert.Equal(t, "Gold Diver", dtos[2].Name)
}

func TestListPageSizeDefaultsToTwelve(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)
	category := seedCategory(t, conn, "Watches")

	for i := 0; i < 15; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			CategoryID: category.ID,
			Name:       "Model " + string(rune('A'+i)),
			PriceBuy:   1000,
		})
		require.NoError(t, err)
	}

	dtos, meta, err := svc.List(context.Background(), ListQuery{Page: pagination.Params{Page: 1}})
	require.NoError(t, err)
	assert.Len(t, dtos, 12)
	assert.Equal(t, int64(15), meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestGetByIDOrSlugWithRelated(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)
	category := seedCategory(t, conn, "Watches")

	var target *ProductDTO
	for i := 0; i < 6; i++ {
		dto, err := svc.Create(context.Background(), CreateInput{
			CategoryID: category.ID,
			Name:       "Model " + string(rune('A'+i)),
			PriceBuy:   1000,
		})
		require.NoError(t, err)
		if i == 0 {
			target = dto
		}
	}

	detail, err := svc.Get(context.Background(), target.ID.String())
	require.NoError(t, err)
	assert.Equal(t, target.ID, detail.Product.ID)
	assert.Len(t, detail.Related, 4)
	for _, related := range detail.Related {
		assert.NotEqual(t, target.ID, related.ID)
		assert.Equal(t, category.ID, related.CategoryID)
	}

	bySlug, err := svc.Get(context.Background(), target.Slug)
	require.NoError(t, err)
	assert.Equal(t, target.ID, bySlug.Product.ID)

	_, err = svc.Get(context.Background(), "no-such-product")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "product not found", typed.Message())
}

func TestUpdateRenameRegeneratesSlug(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, _ := newProductsService(t, conn)
	category := seedCategory(t, conn, "Watches")

	dto, err := svc.Create(context.Background(), CreateInput{
		CategoryID: category.ID,
		Name:       "Classic",
		PriceBuy:   1000,
	})
	require.NoError(t, err)

	name := "Modern"
	updated, err := svc.Update(context.Background(), dto.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.Slug, "modern-"))
	assert.NotEqual(t, dto.Slug, updated.Slug)
}

type failingUpdateRepo struct {
	Repository
}

func (r *failingUpdateRepo) Update(ctx context.Context, product *models.Product) error {
	return errors.New("write failed")
}

func TestUpdateFailureRemovesStoredThumbnail(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, store := newProductsService(t, conn)
	category := seedCategory(t, conn, "Watches")

	dto, err := svc.Create(context.Background(), CreateInput{
		CategoryID: category.ID,
		Name:       "Classic",
		PriceBuy:   1000,
	})
	require.NoError(t, err)

	catSvc, err := categories.NewService(categories.ServiceParams{Repo: categories.NewRepository(conn)})
	require.NoError(t, err)
	failing, err := NewService(ServiceParams{
		Repo:       &failingUpdateRepo{NewRepository(conn)},
		Client:     db.NewWithConn(conn),
		Store:      store,
		Categories: catSvc,
	})
	require.NoError(t, err)

	_, err = failing.Update(context.Background(), dto.ID, UpdateInput{
		Thumbnail: &multipart.FileHeader{Filename: "replacement.png"},
	})
	require.Error(t, err)

	require.NotEmpty(t, store.saved)
	assert.Contains(t, store.deleted, store.saved[len(store.saved)-1])
}

func TestDeleteRemovesDependentsAndThumbnail(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, store := newProductsService(t, conn)
	category := seedCategory(t, conn, "Watches")

	dto, err := svc.Create(context.Background(), CreateInput{
		CategoryID: category.ID,
		Name:       "Classic",
		PriceBuy:   100000,
	})
	require.NoError(t, err)

	thumb := "/storage/products/classic.png"
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", dto.ID).Update("thumbnail", thumb).Error)
	require.NoError(t, conn.Create(&models.ProductImage{ID: uuid.New(), ProductID: dto.ID, Image: thumb, Alt: "Classic"}).Error)
	require.NoError(t, conn.Create(&models.InventoryRecord{ID: uuid.New(), ProductID: dto.ID, Qty: 3, PriceRoot: 70000}).Error)

	require.NoError(t, svc.Delete(context.Background(), dto.ID))

	for _, model := range []any{&models.Product{}, &models.ProductImage{}, &models.InventoryRecord{}} {
		var count int64
		require.NoError(t, conn.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
	assert.Contains(t, store.deleted, thumb)

	err = svc.Delete(context.Background(), dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
