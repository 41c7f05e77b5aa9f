package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/api/responses"
	"github.com/tuananhdo/shopora-backend/api/validators"
	stocksvc "github.com/tuananhdo/shopora-backend/internal/inventory"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/logger"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// StockService is the inventory surface the product-store endpoints depend on.
type StockService interface {
	List(ctx context.Context, params pagination.Params) ([]stocksvc.RecordDTO, pagination.Meta, error)
	Import(ctx context.Context, items []stocksvc.ImportItem, createdBy *uuid.UUID) ([]stocksvc.RecordDTO, error)
	Update(ctx context.Context, id uuid.UUID, input stocksvc.UpdateInput) (*stocksvc.RecordDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type stockImportRequest struct {
	Items []stockImportLine `json:"items" validate:"required,min=1,dive"`
}

type stockImportLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"gte=0"`
	PriceRoot int64     `json:"price_root" validate:"gte=0"`
}

type stockUpdateRequest struct {
	Qty       *int   `json:"qty,omitempty" validate:"omitempty,gte=0"`
	PriceRoot *int64 `json:"price_root,omitempty" validate:"omitempty,gte=0"`
	Status    *int   `json:"status,omitempty"`
}

// StockIndex lists stock rows, most recently updated first.
func StockIndex(svc StockService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
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

// StockImport receives goods: quantities add to existing rows, the cost
// overwrites the last recorded purchase price.
func StockImport(svc StockService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var body stockImportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]stocksvc.ImportItem, 0, len(body.Items))
		for _, line := range body.Items {
			items = append(items, stocksvc.ImportItem{
				ProductID: line.ProductID,
				Qty:       line.Qty,
				PriceRoot: line.PriceRoot,
			})
		}

		records, err := svc.Import(r.Context(), items, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}

// StockUpdate overwrites a stock row with absolute values.
func StockUpdate(svc StockService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body stockUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, stocksvc.UpdateInput{
			Qty:       body.Qty,
			PriceRoot: body.PriceRoot,
			Status:    body.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// StockDelete removes a stock row.
func StockDelete(svc StockService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
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
