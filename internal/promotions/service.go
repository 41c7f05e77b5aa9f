package promotions

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// Service orchestrates sale campaign operations.
type Service struct {
	repo   Repository
	client *db.Client
}

// ServiceParams groups dependencies for the promotion service.
type ServiceParams struct {
	Repo   Repository
	Client *db.Client
}

// NewService builds a promotion service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if params.Client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &Service{repo: params.Repo, client: params.Client}, nil
}

// List returns sale rows newest first.
func (s *Service) List(ctx context.Context, params pagination.Params) ([]SaleDTO, pagination.Meta, error) {
	params = pagination.Normalize(params, pagination.DefaultPerPage)
	sales, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sales")
	}
	return ToDTOs(sales), pagination.MetaFor(params, total), nil
}

// Create opens a new sale window for a product.
func (s *Service) Create(ctx context.Context, input CreateInput) (*SaleDTO, error) {
	sale, err := s.buildSale(ctx, nil, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating sale")
	}
	return ToDTO(sale), nil
}

// Update edits an existing sale window.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*SaleDTO, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding sale")
	}
	if sale == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}

	if input.Name != nil {
		sale.Name = strings.TrimSpace(*input.Name)
	}
	if input.PriceSale != nil {
		sale.PriceSale = *input.PriceSale
	}
	if input.DateBegin != nil {
		sale.DateBegin = *input.DateBegin
	}
	if input.DateEnd != nil {
		sale.DateEnd = *input.DateEnd
	}
	if input.Status != nil {
		status := enums.SaleStatus(*input.Status)
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sale status").
				WithDetails(map[string]string{"status": "must be 0 or 1"})
		}
		sale.Status = status
	}

	if err := s.validateWindow(ctx, nil, sale); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating sale")
	}
	return ToDTO(sale), nil
}

// Delete removes a sale window.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding sale")
	}
	if sale == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting sale")
	}
	return nil
}

// BatchUpsert applies a campaign edit in one transaction: items carrying a
// sale_id update that row, the rest create new rows. Items carrying a
// discount get their sale price computed from the product's base price.
func (s *Service) BatchUpsert(ctx context.Context, items []BatchItem, createdBy *uuid.UUID) ([]SaleDTO, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items to upsert").
			WithDetails(map[string]string{"items": "at least one item is required"})
	}

	var out []SaleDTO
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, item := range items {
			priceSale, err := s.batchPrice(ctx, tx, item)
			if err != nil {
				return err
			}

			if item.SaleID != nil {
				sale, err := repo.FindByID(ctx, *item.SaleID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding sale")
				}
				if sale == nil {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("sale %s not found", item.SaleID))
				}
				sale.ProductID = item.ProductID
				sale.Name = strings.TrimSpace(item.Name)
				sale.PriceSale = priceSale
				sale.DateBegin = item.DateBegin
				sale.DateEnd = item.DateEnd
				if err := s.validateWindow(ctx, tx, sale); err != nil {
					return err
				}
				if err := repo.Update(ctx, sale); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating sale")
				}
				out = append(out, *ToDTO(sale))
				continue
			}

			sale, err := s.buildSale(ctx, tx, CreateInput{
				ProductID: item.ProductID,
				Name:      item.Name,
				PriceSale: priceSale,
				DateBegin: item.DateBegin,
				DateEnd:   item.DateEnd,
				CreatedBy: createdBy,
			})
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, sale); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating sale")
			}
			out = append(out, *ToDTO(sale))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseImport reads a sales CSV (product_id, price_sale) and returns the
// parsed rows without writing anything; the admin editor posts them back
// through the batch endpoint. The header row is always skipped.
func (s *Service) ParseImport(ctx context.Context, r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []ImportRow
	var rowErrs error
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading csv")
		}
		line++
		if line == 1 {
			continue
		}
		if len(record) < 2 {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: expected 2 columns", line))
			continue
		}

		productID, err := uuid.Parse(strings.TrimSpace(record[0]))
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: invalid product id", line))
			continue
		}
		price, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil || price < 0 {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: invalid price", line))
			continue
		}
		rows = append(rows, ImportRow{ProductID: productID, PriceSale: price})
	}

	if rowErrs != nil {
		details := make(map[string]string)
		for i, err := range multierr.Errors(rowErrs) {
			details[fmt.Sprintf("row_%d", i)] = err.Error()
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales import has invalid rows").
			WithDetails(details)
	}
	return rows, nil
}

// batchPrice resolves the effective sale price for one batch item. An explicit
// price passes through; a discount is applied to the product's base price.
func (s *Service) batchPrice(ctx context.Context, tx *gorm.DB, item BatchItem) (int64, error) {
	if item.DiscountPercent == nil && item.DiscountAmount == nil {
		return item.PriceSale, nil
	}
	if item.DiscountPercent != nil && item.DiscountAmount != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount").
			WithDetails(map[string]string{"discount": "set discount_percent or discount_amount, not both"})
	}

	product, err := s.repo.WithTx(tx).FindProduct(ctx, item.ProductID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
	}
	if product == nil {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if item.DiscountPercent != nil {
		return ApplyPercent(product.PriceBuy, *item.DiscountPercent), nil
	}
	return ApplyFixed(product.PriceBuy, *item.DiscountAmount), nil
}

func (s *Service) buildSale(ctx context.Context, tx *gorm.DB, input CreateInput) (*models.ProductSale, error) {
	status := saleStatus(input.Status)
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sale status").
			WithDetails(map[string]string{"status": "must be 0 or 1"})
	}

	sale := &models.ProductSale{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		Name:      strings.TrimSpace(input.Name),
		PriceSale: input.PriceSale,
		DateBegin: input.DateBegin,
		DateEnd:   input.DateEnd,
		Status:    status,
		CreatedBy: input.CreatedBy,
	}
	if err := s.validateWindow(ctx, tx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// validateWindow checks the date range and caps price_sale at the product's
// base price.
func (s *Service) validateWindow(ctx context.Context, tx *gorm.DB, sale *models.ProductSale) error {
	details := map[string]string{}
	if sale.PriceSale < 0 {
		details["price_sale"] = "must not be negative"
	}
	if sale.DateEnd.Before(sale.DateBegin) {
		details["date_end"] = "must not precede date_begin"
	}

	product, err := s.repo.WithTx(tx).FindProduct(ctx, sale.ProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
	}
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if sale.PriceSale > product.PriceBuy {
		details["price_sale"] = "must not exceed the product price"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid sale").WithDetails(details)
	}
	return nil
}
