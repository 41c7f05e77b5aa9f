package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/internal/auth"
	"github.com/tuananhdo/shopora-backend/internal/users"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
)

type stubAuthService struct {
	user  *users.UserDTO
	login *auth.LoginResponse
	err   error

	loggedOut []string
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return s.err
}

func (s *stubAuthService) Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func TestAuthRegisterSuccess(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Email: "an@example.com"}
	handler := AuthRegister(&stubAuthService{user: user}, nil)

	payload := `{"name":"An Tran","email":"an@example.com","phone":"0900000001","username":"antran","password":"Secret#12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data *users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data == nil || envelope.Data.Email != user.Email {
		t.Fatalf("expected user in payload got %+v", envelope.Data)
	}
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	handler := AuthRegister(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(`{"password":"Secret#12"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginReturnsToken(t *testing.T) {
	login := &auth.LoginResponse{
		AccessToken: "token-123",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        &users.UserDTO{ID: uuid.New(), Email: "an@example.com"},
	}
	handler := AuthLogin(&stubAuthService{login: login}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{"email":"an@example.com","password":"Secret#12"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data *auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data == nil || envelope.Data.AccessToken != "token-123" {
		t.Fatalf("expected access token in payload got %+v", envelope.Data)
	}
	if envelope.Data.TokenType != "bearer" {
		t.Fatalf("expected bearer token type got %s", envelope.Data.TokenType)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	handler := AuthLogin(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{"email":"an@example.com","password":"wrong-password"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
