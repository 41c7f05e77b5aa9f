package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
)

// Service orchestrates category operations.
type Service struct {
	repo Repository
}

// ServiceParams groups dependencies for the category service.
type ServiceParams struct {
	Repo Repository
}

// NewService builds a category service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return ToDTOs(categories), nil
}

// Get returns one category by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding category")
	}
	if category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return ToDTO(category), nil
}

// Create inserts a new category with a generated slug.
func (s *Service) Create(ctx context.Context, input CreateInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	status := 1
	if input.Status != nil {
		status = *input.Status
	}

	category := &models.Category{
		ID:     uuid.New(),
		Name:   name,
		Slug:   slug.Make(name),
		Status: status,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return ToDTO(category), nil
}

// Update renames a category, regenerating its slug.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding category")
	}
	if category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != category.Name {
		category.Name = name
		category.Slug = slug.Make(name)
	}
	if input.Status != nil {
		category.Status = *input.Status
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}
	return ToDTO(category), nil
}

// Delete removes an empty category. Categories that still hold products are
// protected.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding category")
	}
	if category == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	return nil
}

// FirstOrCreateByName returns the category with the given name, creating it
// when missing. Used by the product importer; runs inside the caller's
// transaction when tx is non-nil.
func (s *Service) FirstOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*models.Category, error) {
	repo := s.repo.WithTx(tx)

	existing, err := repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	trimmed := strings.TrimSpace(name)
	category := &models.Category{
		ID:     uuid.New(),
		Name:   trimmed,
		Slug:   slug.Make(trimmed),
		Status: 1,
	}
	if err := repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
