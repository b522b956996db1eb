package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type echoPayload struct {
	Name string `json:"name" validate:"required"`
}

func TestValidateJSONRejectsWrongContentType(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	r.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	var p echoPayload
	if err := ValidateJSON(rec, r, &p); err == nil {
		t.Fatal("expected error for wrong content type")
	}
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestValidateJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var p echoPayload
	if err := ValidateJSON(rec, r, &p); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestValidateJSONRunsValidator(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var p echoPayload
	if err := ValidateJSON(rec, r, &p); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestValidateJSONAccepts(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var p echoPayload
	if err := ValidateJSON(rec, r, &p); err != nil {
		t.Fatalf("expected payload to pass, got %v", err)
	}
	if p.Name != "ok" {
		t.Fatalf("expected decoded name, got %q", p.Name)
	}
}
