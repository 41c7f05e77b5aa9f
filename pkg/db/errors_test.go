package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))

	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`)
	assert.True(t, IsUniqueViolation(pgErr))

	sqliteErr := errors.New("UNIQUE constraint failed: products.slug")
	assert.True(t, IsUniqueViolation(sqliteErr))

	wrapped := fmt.Errorf("creating user: %w", pgErr)
	assert.True(t, IsUniqueViolation(wrapped))
}
