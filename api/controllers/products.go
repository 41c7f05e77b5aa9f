package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/api/middleware"
	"github.com/tuananhdo/shopora-backend/api/responses"
	"github.com/tuananhdo/shopora-backend/api/validators"
	productsvc "github.com/tuananhdo/shopora-backend/internal/products"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/logger"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

const importFileField = "file"

// multipart bodies buffer in memory up to this size before spilling to disk
const multipartMemory = 32 << 20

// ProductService is the catalog surface the product endpoints depend on.
type ProductService interface {
	List(ctx context.Context, query productsvc.ListQuery) ([]productsvc.ProductDTO, pagination.Meta, error)
	Get(ctx context.Context, idOrSlug string) (*productsvc.ProductDetail, error)
	Create(ctx context.Context, input productsvc.CreateInput) (*productsvc.ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input productsvc.UpdateInput) (*productsvc.ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, r io.Reader, createdBy *uuid.UUID) (*productsvc.ImportResult, error)
}

// ProductIndex lists the catalog with filters, sort, and paging.
func ProductIndex(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		query, err := parseProductListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, meta, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagedPayload{Items: items, Meta: meta})
	}
}

// ProductShow returns one product with related suggestions. The id path
// segment accepts either a uuid or a slug.
func ProductShow(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		detail, err := svc.Get(r.Context(), validators.SanitizeString(pathParam(r, "id"), 255))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// ProductCreate accepts a multipart form with an optional thumbnail upload.
func ProductCreate(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.CreatedBy = actorID(r)

		product, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate accepts the same multipart form; absent fields stay untouched.
func ProductUpdate(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseProductUpdateForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.UpdatedBy = actorID(r)

		product, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product with its images, sales, and stock row.
func ProductDelete(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

// ProductImport ingests a CSV spreadsheet of products.
func ProductImport(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		file, err := openImportFile(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()

		result, err := svc.Import(r.Context(), file, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseProductListQuery(r *http.Request) (productsvc.ListQuery, error) {
	var query productsvc.ListQuery
	var err error

	if query.CategoryID, err = validators.ParseQueryUUIDPtr(r, "category_id"); err != nil {
		return query, err
	}
	if query.IsNew, err = validators.ParseQueryBoolPtr(r, "is_new"); err != nil {
		return query, err
	}
	if query.IsSale, err = validators.ParseQueryBoolPtr(r, "is_sale"); err != nil {
		return query, err
	}
	if query.PriceMin, err = validators.ParseQueryInt64Ptr(r, "price_min"); err != nil {
		return query, err
	}
	if query.PriceMax, err = validators.ParseQueryInt64Ptr(r, "price_max"); err != nil {
		return query, err
	}
	if query.Page, err = validators.ParsePagination(r, pagination.ProductPerPage); err != nil {
		return query, err
	}
	query.Keyword = validators.SanitizeString(r.URL.Query().Get("keyword"), 255)
	query.Sort = enums.ParseProductSort(r.URL.Query().Get("sort"))
	return query, nil
}

func parseProductForm(r *http.Request) (*productsvc.CreateInput, error) {
	if err := validators.EnsureMultipartForm(r, multipartMemory); err != nil {
		return nil, err
	}

	categoryID, err := validators.FormUUID(r, "category_id")
	if err != nil {
		return nil, err
	}
	name := validators.FormString(r, "name")
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required").WithDetails(map[string]string{"name": "is required"})
	}
	priceBuy, err := validators.FormInt64(r, "price_buy")
	if err != nil {
		return nil, err
	}
	isNew, err := validators.FormBool(r, "is_new")
	if err != nil {
		return nil, err
	}
	isSale, err := validators.FormBool(r, "is_sale")
	if err != nil {
		return nil, err
	}
	status, err := validators.FormIntPtr(r, "status")
	if err != nil {
		return nil, err
	}

	return &productsvc.CreateInput{
		CategoryID:  categoryID,
		Name:        name,
		Description: validators.FormStringPtr(r, "description"),
		Content:     validators.FormStringPtr(r, "content"),
		PriceBuy:    priceBuy,
		IsNew:       isNew,
		IsSale:      isSale,
		Status:      status,
		Thumbnail:   validators.FormFile(r, "thumbnail"),
	}, nil
}

func parseProductUpdateForm(r *http.Request) (*productsvc.UpdateInput, error) {
	if err := validators.EnsureMultipartForm(r, multipartMemory); err != nil {
		return nil, err
	}

	categoryID, err := validators.FormUUIDPtr(r, "category_id")
	if err != nil {
		return nil, err
	}
	priceBuy, err := validators.FormInt64Ptr(r, "price_buy")
	if err != nil {
		return nil, err
	}
	isNew, err := validators.FormBoolPtr(r, "is_new")
	if err != nil {
		return nil, err
	}
	isSale, err := validators.FormBoolPtr(r, "is_sale")
	if err != nil {
		return nil, err
	}
	status, err := validators.FormIntPtr(r, "status")
	if err != nil {
		return nil, err
	}

	return &productsvc.UpdateInput{
		CategoryID:  categoryID,
		Name:        validators.FormStringPtr(r, "name"),
		Description: validators.FormStringPtr(r, "description"),
		Content:     validators.FormStringPtr(r, "content"),
		PriceBuy:    priceBuy,
		IsNew:       isNew,
		IsSale:      isSale,
		Status:      status,
		Thumbnail:   validators.FormFile(r, "thumbnail"),
	}, nil
}

func openImportFile(r *http.Request) (io.ReadCloser, error) {
	if err := validators.EnsureMultipartForm(r, multipartMemory); err != nil {
		return nil, err
	}
	header := validators.FormFile(r, importFileField)
	if header == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet file is required").WithDetails(map[string]string{importFileField: "is required"})
	}
	file, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading spreadsheet file")
	}
	return file, nil
}

// actorID returns the authenticated user id, nil for anonymous requests.
func actorID(r *http.Request) *uuid.UUID {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
