package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/api/responses"
	"github.com/tuananhdo/shopora-backend/api/validators"
	categorysvc "github.com/tuananhdo/shopora-backend/internal/categories"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/logger"
)

// CategoryService is the taxonomy surface the category endpoints depend on.
type CategoryService interface {
	List(ctx context.Context) ([]categorysvc.CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*categorysvc.CategoryDTO, error)
	Create(ctx context.Context, input categorysvc.CreateInput) (*categorysvc.CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input categorysvc.UpdateInput) (*categorysvc.CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status *int   `json:"status,omitempty"`
}

// CategoryIndex lists all categories ordered by name.
func CategoryIndex(svc CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// CategoryShow returns one category.
func CategoryShow(svc CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// CategoryCreate adds a category; the slug derives from the name.
func CategoryCreate(svc CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), categorysvc.CreateInput{Name: body.Name, Status: body.Status})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// CategoryUpdate renames a category, regenerating its slug.
func CategoryUpdate(svc CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, categorysvc.UpdateInput{Name: body.Name, Status: body.Status})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// CategoryDelete removes an empty category; deletion is refused while
// products still reference it.
func CategoryDelete(svc CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
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
