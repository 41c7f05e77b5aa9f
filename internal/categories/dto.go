package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
)

// CategoryDTO is the API shape of a category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput carries validated fields for a new category.
type CreateInput struct {
	Name   string
	Status *int
}

// UpdateInput carries validated fields for a category update.
type UpdateInput struct {
	Name   string
	Status *int
}

// ToDTO converts a category model into its API shape.
func ToDTO(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		Status:    category.Status,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToDTOs converts a slice of category models.
func ToDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *ToDTO(&categories[i]))
	}
	return out
}
