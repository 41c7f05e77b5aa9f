package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

const relatedLimit = 4

// ListQuery configures catalog list queries. Filters are AND-composed.
type ListQuery struct {
	CategoryID *uuid.UUID
	IsNew      *bool
	IsSale     *bool
	Keyword    string
	PriceMin   *int64
	PriceMax   *int64
	Sort       enums.ProductSort
	Page       pagination.Params
}

// Repository handles product persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) error
	CreateImage(ctx context.Context, image *models.ProductImage) error
	CreateInventory(ctx context.Context, record *models.InventoryRecord) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, int64, error)
	ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a product repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "Images", "Sales", "Store").Create(product).Error
}

func (r *repository) CreateImage(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *repository) CreateInventory(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Omit("Product").Create(record).Error
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "Images", "Sales", "Store").Save(product).Error
}

// Delete removes the product and its dependent rows. Callers run this inside
// a transaction.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", id).Delete(&models.ProductSale{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&models.InventoryRecord{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.preloaded(ctx).Where("products.id = ?", id).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.preloaded(ctx).Where("products.slug = ?", slug).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Product{})
	base = applyFilters(base, query)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listing := applyFilters(r.preloaded(ctx), query)
	switch query.Sort {
	case enums.ProductSortPriceAsc:
		listing = listing.Order("price_buy ASC")
	case enums.ProductSortPriceDesc:
		listing = listing.Order("price_buy DESC")
	default:
		listing = listing.Order("created_at DESC")
	}

	var products []models.Product
	if err := listing.
		Offset(query.Page.Offset()).
		Limit(query.Page.PerPage).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.preloaded(ctx).
		Where("category_id = ?", categoryID).
		Where("products.id <> ?", excludeID).
		Order("created_at DESC").
		Limit(relatedLimit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("Sales").
		Preload("Store")
}

func applyFilters(q *gorm.DB, query ListQuery) *gorm.DB {
	if query.CategoryID != nil {
		q = q.Where("category_id = ?", *query.CategoryID)
	}
	if query.IsNew != nil {
		q = q.Where("is_new = ?", *query.IsNew)
	}
	if query.IsSale != nil {
		q = q.Where("is_sale = ?", *query.IsSale)
	}
	if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
		q = q.Where("name LIKE ?", "%"+keyword+"%")
	}
	if query.PriceMin != nil && query.PriceMax != nil {
		q = q.Where("price_buy BETWEEN ? AND ?", *query.PriceMin, *query.PriceMax)
	} else if query.PriceMin != nil {
		q = q.Where("price_buy >= ?", *query.PriceMin)
	} else if query.PriceMax != nil {
		q = q.Where("price_buy <= ?", *query.PriceMax)
	}
	return q
}
