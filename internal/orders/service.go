package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/internal/promotions"
	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

// Service orchestrates checkout and order management.
type Service struct {
	repo   Repository
	client *db.Client
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo   Repository
	Client *db.Client
}

// NewService builds an order service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if params.Client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &Service{repo: params.Repo, client: params.Client}, nil
}

// Create places an order: the header and every item are written in one
// transaction, so a failing item leaves nothing behind. Item prices are
// resolved server-side against the current sale windows.
func (s *Service) Create(ctx context.Context, input CreateInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]string{"items": "at least one item is required"})
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:      uuid.New(),
		UserID:  input.UserID,
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Note:    input.Note,
		Status:  enums.OrderStatusNew,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, order); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		for _, line := range input.Items {
			product, err := repo.FindProductWithSales(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("finding product %s: %w", line.ProductID, err)
			}
			if product == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", line.ProductID))
			}

			price := promotions.EffectivePrice(product, now)
			item := &models.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Price:     price,
				Qty:       line.Qty,
				Amount:    price * int64(line.Qty),
			}
			if err := repo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("creating order item: %w", err)
			}
			order.Items = append(order.Items, *item)
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "placing order")
	}
	return ToDTO(order), nil
}

// List returns orders newest first, filterable by status and a keyword over
// name, phone, and email.
func (s *Service) List(ctx context.Context, query ListQuery) ([]OrderDTO, pagination.Meta, error) {
	query.Page = pagination.Normalize(query.Page, pagination.DefaultPerPage)
	if query.Status != nil && !query.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": "must be between 1 and 5"})
	}

	orders, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return ToDTOs(orders), pagination.MetaFor(query.Page, total), nil
}

// Get returns one order with its items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return ToDTO(order), nil
}

// UpdateStatus moves an order through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, updatedBy *uuid.UUID) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": "must be between 1 and 5"})
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order.Status = status
	order.UpdatedBy = updatedBy
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order")
	}
	return ToDTO(order), nil
}

// Delete removes an order and its items in one transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding order")
	}
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting order")
	}
	return nil
}
