package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskvine/utils"
)

func TestAuthMiddlewareValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-auth-mw")

	token, err := utils.GenerateAccessToken(42, "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var gotUID uint
	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = utils.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUID != 42 {
		t.Fatalf("expected user id 42 in context, got %d", gotUID)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-auth-mw")

	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-auth-mw")

	token, err := utils.GenerateAccessToken(7, "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-auth-mw")

	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
