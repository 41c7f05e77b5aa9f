package products

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/internal/categories"
	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

const uploadSubdir = "products"

// thumbnailStore is the slice of pkg/storage the product service needs.
type thumbnailStore interface {
	Save(header *multipart.FileHeader, subdir string) (string, error)
	Delete(publicURL string) error
}

type categoryResolver interface {
	FirstOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*categories.CategoryDTO, error)
}

// Service orchestrates catalog operations.
type Service struct {
	repo       Repository
	client     *db.Client
	store      thumbnailStore
	categories categoryResolver
}

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	Repo       Repository
	Client     *db.Client
	Store      thumbnailStore
	Categories categoryResolver
}

// NewService builds a product service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if params.Client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("upload store is required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("category service is required")
	}
	return &Service{
		repo:       params.Repo,
		client:     params.Client,
		store:      params.Store,
		categories: params.Categories,
	}, nil
}

// List returns a filtered catalog page.
func (s *Service) List(ctx context.Context, query ListQuery) ([]ProductDTO, pagination.Meta, error) {
	query.Page = pagination.Normalize(query.Page, pagination.ProductPerPage)
	products, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return ToDTOs(products, time.Now().UTC()), pagination.MetaFor(query.Page, total), nil
}

// Get looks a product up by ID or slug and attaches same-category
// suggestions.
func (s *Service) Get(ctx context.Context, idOrSlug string) (*ProductDetail, error) {
	product, err := s.findByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	related, err := s.repo.ListRelated(ctx, product.CategoryID, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing related products")
	}

	now := time.Now().UTC()
	return &ProductDetail{
		Product: *ToDTO(product, now),
		Related: ToDTOs(related, now),
	}, nil
}

// Create inserts a product, storing the uploaded thumbnail first. The stored
// file is removed again when the insert fails.
func (s *Service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	if _, err := s.categories.Get(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	id := uuid.New()
	product := &models.Product{
		ID:          id,
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        makeSlug(input.Name, id),
		Description: input.Description,
		Content:     input.Content,
		PriceBuy:    input.PriceBuy,
		Status:      1,
		IsNew:       input.IsNew,
		IsSale:      input.IsSale,
		CreatedBy:   input.CreatedBy,
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	var thumbURL string
	if input.Thumbnail != nil {
		url, err := s.store.Save(input.Thumbnail, uploadSubdir)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "storing thumbnail")
		}
		thumbURL = url
		product.Thumbnail = &thumbURL
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if thumbURL != "" {
			_ = s.store.Delete(thumbURL)
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return ToDTO(product, time.Now().UTC()), nil
}

// Update edits a product. Renames regenerate the slug; a new thumbnail
// replaces the old file best-effort.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if input.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != "" && name != product.Name {
			product.Name = name
			product.Slug = makeSlug(name, product.ID)
		}
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Content != nil {
		product.Content = input.Content
	}
	if input.PriceBuy != nil {
		product.PriceBuy = *input.PriceBuy
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.IsSale != nil {
		product.IsSale = *input.IsSale
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	product.UpdatedBy = input.UpdatedBy

	var oldThumb, newThumb string
	if input.Thumbnail != nil {
		url, err := s.store.Save(input.Thumbnail, uploadSubdir)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "storing thumbnail")
		}
		if product.Thumbnail != nil {
			oldThumb = *product.Thumbnail
		}
		newThumb = url
		product.Thumbnail = &url
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if newThumb != "" {
			_ = s.store.Delete(newThumb)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	if oldThumb != "" {
		_ = s.store.Delete(oldThumb)
	}
	return ToDTO(product, time.Now().UTC()), nil
}

// Delete removes a product and its dependent rows in one transaction, then
// deletes the stored thumbnail best-effort.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
	}
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}

	if product.Thumbnail != nil {
		_ = s.store.Delete(*product.Thumbnail)
	}
	return nil
}

func (s *Service) findByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Product, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)

	if id, err := uuid.Parse(idOrSlug); err == nil {
		product, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
		}
		if product != nil {
			return product, nil
		}
	}

	product, err := s.repo.FindBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
