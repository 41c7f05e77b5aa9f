package products

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/internal/promotions"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
)

// ImageDTO is one gallery entry.
type ImageDTO struct {
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

// ProductDTO is the API shape of a catalog listing. PriceSale is present only
// when a sale window is currently effective.
type ProductDTO struct {
	ID           uuid.UUID  `json:"id"`
	CategoryID   uuid.UUID  `json:"category_id"`
	CategoryName string     `json:"category_name,omitempty"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Thumbnail    *string    `json:"thumbnail"`
	Description  *string    `json:"description"`
	Content      *string    `json:"content,omitempty"`
	PriceBuy     int64      `json:"price_buy"`
	PriceSale    *int64     `json:"price_sale,omitempty"`
	Qty          int        `json:"qty"`
	Status       int        `json:"status"`
	IsNew        bool       `json:"is_new"`
	IsSale       bool       `json:"is_sale"`
	Images       []ImageDTO `json:"images"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProductDetail pairs a product with same-category suggestions.
type ProductDetail struct {
	Product ProductDTO   `json:"product"`
	Related []ProductDTO `json:"related"`
}

// CreateInput carries validated fields for a new product.
type CreateInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Content     *string
	PriceBuy    int64
	IsNew       bool
	IsSale      bool
	Status      *int
	Thumbnail   *multipart.FileHeader
	CreatedBy   *uuid.UUID
}

// UpdateInput carries validated fields for a product update. Nil fields stay
// untouched.
type UpdateInput struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Content     *string
	PriceBuy    *int64
	IsNew       *bool
	IsSale      *bool
	Status      *int
	Thumbnail   *multipart.FileHeader
	UpdatedBy   *uuid.UUID
}

// ToDTO converts a product model into its API shape, resolving the effective
// sale price at the given instant.
func ToDTO(product *models.Product, now time.Time) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Slug:        product.Slug,
		Thumbnail:   product.Thumbnail,
		Description: product.Description,
		Content:     product.Content,
		PriceBuy:    product.PriceBuy,
		Status:      product.Status,
		IsNew:       product.IsNew,
		IsSale:      product.IsSale,
		Images:      make([]ImageDTO, 0, len(product.Images)),
		CreatedAt:   product.CreatedAt,
	}
	if product.Category != nil {
		dto.CategoryName = product.Category.Name
	}
	if product.Store != nil {
		dto.Qty = product.Store.Qty
	}
	if sale := promotions.Resolve(product.Sales, now); sale != nil {
		price := sale.PriceSale
		dto.PriceSale = &price
	}
	for _, image := range product.Images {
		dto.Images = append(dto.Images, ImageDTO{Image: image.Image, Alt: image.Alt})
	}
	return dto
}

// ToDTOs converts a slice of product models.
func ToDTOs(products []models.Product, now time.Time) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *ToDTO(&products[i], now))
	}
	return out
}
