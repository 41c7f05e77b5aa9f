package promotions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// Repository handles sale persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sale *models.ProductSale) error
	Update(ctx context.Context, sale *models.ProductSale) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductSale, error)
	List(ctx context.Context, params pagination.Params) ([]models.ProductSale, int64, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a sale repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sale *models.ProductSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repository) Update(ctx context.Context, sale *models.ProductSale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductSale{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductSale, error) {
	var sale models.ProductSale
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&sale).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.ProductSale, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProductSale{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []models.ProductSale
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC, id DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}
