package controllers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/api/responses"
	"github.com/tuananhdo/shopora-backend/api/validators"
	salesvc "github.com/tuananhdo/shopora-backend/internal/promotions"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/logger"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// SaleService is the campaign surface the product-sale endpoints depend on.
type SaleService interface {
	List(ctx context.Context, params pagination.Params) ([]salesvc.SaleDTO, pagination.Meta, error)
	Create(ctx context.Context, input salesvc.CreateInput) (*salesvc.SaleDTO, error)
	Update(ctx context.Context, id uuid.UUID, input salesvc.UpdateInput) (*salesvc.SaleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BatchUpsert(ctx context.Context, items []salesvc.BatchItem, createdBy *uuid.UUID) ([]salesvc.SaleDTO, error)
	ParseImport(ctx context.Context, r io.Reader) ([]salesvc.ImportRow, error)
}

type saleCreateRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=255"`
	PriceSale int64     `json:"price_sale" validate:"gte=0"`
	DateBegin time.Time `json:"date_begin" validate:"required"`
	DateEnd   time.Time `json:"date_end" validate:"required"`
	Status    *int      `json:"status,omitempty"`
}

type saleUpdateRequest struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	PriceSale *int64     `json:"price_sale,omitempty" validate:"omitempty,gte=0"`
	DateBegin *time.Time `json:"date_begin,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	Status    *int       `json:"status,omitempty"`
}

type saleBatchRequest struct {
	Items []saleBatchLine `json:"items" validate:"required,min=1,dive"`
}

type saleBatchLine struct {
	SaleID          *uuid.UUID `json:"sale_id,omitempty"`
	ProductID       uuid.UUID  `json:"product_id" validate:"required"`
	Name            string     `json:"name" validate:"required,max=255"`
	PriceSale       int64      `json:"price_sale" validate:"gte=0"`
	DiscountPercent *int64     `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	DiscountAmount  *int64     `json:"discount_amount,omitempty" validate:"omitempty,gte=0"`
	DateBegin       time.Time  `json:"date_begin" validate:"required"`
	DateEnd         time.Time  `json:"date_end" validate:"required"`
}

// SaleIndex lists sale campaigns, newest first.
func SaleIndex(svc SaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r, pagination.DefaultPerPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, meta, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagedPayload{Items: items, Meta: meta})
	}
}

// SaleCreate opens one sale window for a product.
func SaleCreate(svc SaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		var body saleCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.Create(r.Context(), salesvc.CreateInput{
			ProductID: body.ProductID,
			Name:      body.Name,
			PriceSale: body.PriceSale,
			DateBegin: body.DateBegin,
			DateEnd:   body.DateEnd,
			Status:    body.Status,
			CreatedBy: actorID(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// SaleUpdate edits a sale window; absent fields stay untouched.
func SaleUpdate(svc SaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body saleUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.Update(r.Context(), id, salesvc.UpdateInput{
			Name:      body.Name,
			PriceSale: body.PriceSale,
			DateBegin: body.DateBegin,
			DateEnd:   body.DateEnd,
			Status:    body.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

// SaleDelete removes a sale window.
func SaleDelete(svc SaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SaleBatch upserts a campaign: lines with sale_id update, lines without
// create. The whole batch succeeds or fails together.
func SaleBatch(svc SaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		var body saleBatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]salesvc.BatchItem, 0, len(body.Items))
		for _, line := range body.Items {
			items = append(items, salesvc.BatchItem{
				SaleID:          line.SaleID,
				ProductID:       line.ProductID,
				Name:            line.Name,
				PriceSale:       line.PriceSale,
				DiscountPercent: line.DiscountPercent,
				DiscountAmount:  line.DiscountAmount,
				DateBegin:       line.DateBegin,
				DateEnd:         line.DateEnd,
			})
		}

		sales, err := svc.BatchUpsert(r.Context(), items, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sales)
	}
}

// SaleImport parses a sales CSV and returns the rows for review. Nothing is
// written.
func SaleImport(svc SaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		file, err := openImportFile(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()

		rows, err := svc.ParseImport(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
