package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/api/responses"
	"github.com/tuananhdo/shopora-backend/api/validators"
	ordersvc "github.com/tuananhdo/shopora-backend/internal/orders"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/logger"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// OrderService is the checkout and fulfillment surface the order endpoints
// depend on.
type OrderService interface {
	Create(ctx context.Context, input ordersvc.CreateInput) (*ordersvc.OrderDTO, error)
	List(ctx context.Context, query ordersvc.ListQuery) ([]ordersvc.OrderDTO, pagination.Meta, error)
	Get(ctx context.Context, id uuid.UUID) (*ordersvc.OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, updatedBy *uuid.UUID) (*ordersvc.OrderDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type checkoutRequest struct {
	Name    string             `json:"name" validate:"required,max=255"`
	Email   *string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string             `json:"phone" validate:"required,max=32"`
	Address string             `json:"address" validate:"required,max=500"`
	Note    *string            `json:"note,omitempty" validate:"omitempty,max=1000"`
	Items   []checkoutItemLine `json:"items" validate:"required,min=1,dive"`
}

type checkoutItemLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
}

type orderStatusRequest struct {
	Status int `json:"status" validate:"required"`
}

// Checkout places an order. It is open to guests; a logged-in caller gets
// attached to the order.
func Checkout(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]ordersvc.ItemInput, 0, len(body.Items))
		for _, line := range body.Items {
			items = append(items, ordersvc.ItemInput{ProductID: line.ProductID, Qty: line.Qty})
		}

		order, err := svc.Create(r.Context(), ordersvc.CreateInput{
			UserID:  actorID(r),
			Name:    body.Name,
			Email:   body.Email,
			Phone:   body.Phone,
			Address: body.Address,
			Note:    body.Note,
			Items:   items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderIndex lists orders newest first, filterable by status and keyword.
func OrderIndex(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var query ordersvc.ListQuery
		var err error

		if query.Page, err = validators.ParsePagination(r, pagination.DefaultPerPage); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query.Keyword = validators.SanitizeString(r.URL.Query().Get("keyword"), 255)

		if raw := r.URL.Query().Get("status"); raw != "" {
			value, err := validators.ParseQueryInt(r, "status", 0, int(enums.OrderStatusNew), int(enums.OrderStatusCancelled))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			status := enums.OrderStatus(value)
			query.Status = &status
		}

		items, meta, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagedPayload{Items: items, Meta: meta})
	}
}

// OrderShow returns one order with its items.
func OrderShow(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderUpdate moves an order through its lifecycle.
func OrderUpdate(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body orderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, enums.OrderStatus(body.Status), actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderDelete removes an order and its items.
func OrderDelete(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
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
