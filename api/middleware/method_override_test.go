package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMethodOverrideFromMultipartField(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("_method", "PUT"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.WriteField("name", "Diver 200m"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	writer.Close()

	var seenMethod, seenName string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		seenName = r.FormValue("name")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/products/abc", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seenMethod != http.MethodPut {
		t.Fatalf("expected PUT got %s", seenMethod)
	}
	if seenName != "Diver 200m" {
		t.Fatalf("form body lost after override, got %q", seenName)
	}
}

func TestMethodOverrideFromHeader(t *testing.T) {
	var seen string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	req.Header.Set("X-HTTP-Method-Override", "delete")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != http.MethodDelete {
		t.Fatalf("expected DELETE got %s", seen)
	}
}

func TestMethodOverrideIgnoresUnsafeTargets(t *testing.T) {
	var seen string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	req.Header.Set("X-HTTP-Method-Override", "CONNECT")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != http.MethodPost {
		t.Fatalf("expected POST got %s", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-HTTP-Method-Override", "DELETE")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != http.MethodGet {
		t.Fatalf("override must only apply to POST, got %s", seen)
	}
}
