package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// Repository handles inventory persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.InventoryRecord) error
	Update(ctx context.Context, record *models.InventoryRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error)
	List(ctx context.Context, params pagination.Params) ([]models.InventoryRecord, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Omit("Product").Create(record).Error
}

func (r *repository) Update(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Omit("Product").Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryRecord{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindByProductID(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.InventoryRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.InventoryRecord
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Order("updated_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
