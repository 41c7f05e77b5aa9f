package products

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// makeSlug builds a URL slug from the product name plus a short fragment of
// the product ID, so identical names never collide.
func makeSlug(name string, id uuid.UUID) string {
	return slug.Make(name) + "-" + id.String()[:8]
}
