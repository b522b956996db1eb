package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIPDirectRemote(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("X-Forwarded-For", "10.0.0.1")

	if got := clientIPGeneric(r, nil); got != "203.0.113.7" {
		t.Fatalf("expected remote addr ip, got %q", got)
	}
}

func TestClientIPTrustedProxyXFF(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.5:44321"
	r.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.5")

	got := clientIPGeneric(r, []string{"10.0.0.0/8"})
	if got != "198.51.100.9" {
		t.Fatalf("expected first XFF hop, got %q", got)
	}
}

func TestClientIPUntrustedProxyIgnoresXFF(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.44:9000"
	r.Header.Set("X-Forwarded-For", "198.51.100.9")

	got := clientIPGeneric(r, []string{"10.0.0.0/8"})
	if got != "192.0.2.44" {
		t.Fatalf("expected remote addr ip, got %q", got)
	}
}

func TestClientIPTrustedExactIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.2.3:1111"
	r.Header.Set("X-Real-IP", "198.51.100.20")

	got := clientIPGeneric(r, []string{"10.1.2.3"})
	if got != "198.51.100.20" {
		t.Fatalf("expected X-Real-IP, got %q", got)
	}
}

func TestIPRateLimiterBlocksOverLimit(t *testing.T) {
	l := &IPRateLimiter{
		maxReq:      2,
		window:      time.Minute,
		state:       make(map[string]timestamps),
		cleanupTick: time.Minute,
	}
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.1:1000"
		h.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.1:1000"
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestLockoutProgression(t *testing.T) {
	const uid = uint(987654)
	ResetFailedLogin(uid)

	RecordFailedLogin(uid)
	RecordFailedLogin(uid)
	if locked, _ := IsAccountLocked(uid); locked {
		t.Fatal("two failures should not lock")
	}

	RecordFailedLogin(uid)
	locked, d := IsAccountLocked(uid)
	if !locked {
		t.Fatal("three failures should lock")
	}
	if d <= 0 || d > time.Minute {
		t.Fatalf("unexpected lock duration %v", d)
	}

	ResetFailedLogin(uid)
	if locked, _ := IsAccountLocked(uid); locked {
		t.Fatal("reset should clear lock")
	}
}
