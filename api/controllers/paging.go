package controllers

import "github.com/tuananhdo/shopora-backend/pkg/pagination"

// pagedPayload wraps list results with their pagination meta inside the data
// envelope.
type pagedPayload struct {
	Items any             `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}
