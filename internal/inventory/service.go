package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// Service orchestrates stock operations. Receiving (Import) adds to the
// quantity on hand while a plain Update overwrites it; the two are distinct
// operations and must stay that way.
type Service struct {
	repo   Repository
	client *db.Client
}

// ServiceParams groups dependencies for the inventory service.
type ServiceParams struct {
	Repo   Repository
	Client *db.Client
}

// NewService builds an inventory service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if params.Client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &Service{repo: params.Repo, client: params.Client}, nil
}

// List returns stock rows most recently touched first.
func (s *Service) List(ctx context.Context, params pagination.Params) ([]RecordDTO, pagination.Meta, error) {
	params = pagination.Normalize(params, pagination.DefaultPerPage)
	records, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stock")
	}
	return ToDTOs(records), pagination.MetaFor(params, total), nil
}

// Import applies a goods receipt in one transaction. Existing rows gain the
// received quantity and take the new cost; missing rows are created.
func (s *Service) Import(ctx context.Context, items []ImportItem, createdBy *uuid.UUID) ([]RecordDTO, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items to import").
			WithDetails(map[string]string{"items": "at least one item is required"})
	}
	for _, item := range items {
		if item.Qty < 0 || item.PriceRoot < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid receipt line").
				WithDetails(map[string]string{"items": "qty and price_root must not be negative"})
		}
	}

	var out []RecordDTO
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, item := range items {
			record, err := repo.FindByProductID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("finding stock for %s: %w", item.ProductID, err)
			}
			if record == nil {
				record = &models.InventoryRecord{
					ID:        uuid.New(),
					ProductID: item.ProductID,
					Qty:       item.Qty,
					PriceRoot: item.PriceRoot,
					Status:    1,
					CreatedBy: createdBy,
				}
				if err := repo.Create(ctx, record); err != nil {
					return fmt.Errorf("creating stock for %s: %w", item.ProductID, err)
				}
			} else {
				record.Qty += item.Qty
				record.PriceRoot = item.PriceRoot
				if err := repo.Update(ctx, record); err != nil {
					return fmt.Errorf("updating stock for %s: %w", item.ProductID, err)
				}
			}
			out = append(out, *ToDTO(record))
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "importing stock")
	}
	return out, nil
}

// Update overwrites a stock row with absolute values.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*RecordDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding stock row")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
	}

	if input.Qty != nil {
		if *input.Qty < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock update").
				WithDetails(map[string]string{"qty": "must not be negative"})
		}
		record.Qty = *input.Qty
	}
	if input.PriceRoot != nil {
		if *input.PriceRoot < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock update").
				WithDetails(map[string]string{"price_root": "must not be negative"})
		}
		record.PriceRoot = *input.PriceRoot
	}
	if input.Status != nil {
		record.Status = *input.Status
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating stock row")
	}
	return ToDTO(record), nil
}

// Delete removes a stock row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding stock row")
	}
	if record == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting stock row")
	}
	return nil
}
