package validators

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
)

// EnsureMultipartForm parses the request as multipart/form-data if it has not
// been parsed yet.
func EnsureMultipartForm(r *http.Request, maxMemory int64) error {
	if r.MultipartForm != nil {
		return nil
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form").WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}

func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormStringPtr returns nil when the field is absent or blank.
func FormStringPtr(r *http.Request, key string) *string {
	value := FormString(r, key)
	if value == "" {
		return nil
	}
	return &value
}

func FormInt64(r *http.Request, key string) (int64, error) {
	raw := FormString(r, key)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field is required").WithDetails(map[string]any{"field": key})
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

func FormInt64Ptr(r *http.Request, key string) (*int64, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func FormIntPtr(r *http.Request, key string) (*int, error) {
	value, err := FormInt64Ptr(r, key)
	if err != nil || value == nil {
		return nil, err
	}
	v := int(*value)
	return &v, nil
}

func FormBool(r *http.Request, key string) (bool, error) {
	raw := FormString(r, key)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

func FormBoolPtr(r *http.Request, key string) (*bool, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func FormUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := FormString(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a uuid").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

func FormUUIDPtr(r *http.Request, key string) (*uuid.UUID, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a uuid").WithDetails(map[string]any{"field": key})
	}
	return &id, nil
}

// FormFile returns the first uploaded file for the field, or nil when absent.
func FormFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
