package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
)

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the bearer scheme")
	}
	token := strings.TrimSpace(raw[7:])
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}
	return token, nil
}
