package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushub/grievance/api"
	"github.com/campushub/grievance/internal/models"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestJWTAuthMiddleware(t *testing.T) {
	secret := "testsecret"

	var gotEmail, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = r.Context().Value(api.CtxUserEmail).(string)
		gotRole, _ = r.Context().Value(api.CtxUserRole).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := api.JWTAuthMiddlewareWithSecret(secret)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"MissingHeader", "", http.StatusUnauthorized},
		{"MalformedHeader", "Bearer", http.StatusUnauthorized},
		{"GarbageToken", "Bearer not.a.token", http.StatusUnauthorized},
		{
			"ExpiredToken",
			"Bearer " + signToken(t, secret, jwt.MapClaims{"email": "a@x.com", "exp": time.Now().Add(-time.Hour).Unix()}),
			http.StatusUnauthorized,
		},
		{
			"WrongSecret",
			"Bearer " + signToken(t, "othersecret", jwt.MapClaims{"email": "a@x.com", "exp": time.Now().Add(time.Hour).Unix()}),
			http.StatusUnauthorized,
		},
		{
			"Valid",
			"Bearer " + signToken(t, secret, jwt.MapClaims{"user_id": float64(1), "email": "a@x.com", "role": models.RoleStudent, "exp": time.Now().Add(time.Hour).Unix()}),
			http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotEmail, gotRole = "", ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if gotEmail != "a@x.com" || gotRole != models.RoleStudent {
					t.Fatalf("claims not in context: email=%q role=%q", gotEmail, gotRole)
				}
			}
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := api.AdminOnlyMiddleware(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/admin/dashboard", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student role status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodGet, "/v1/admin/dashboard"))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin role status = %d, want 200", rec.Code)
	}

	// no role in context at all
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous status = %d, want 403", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(api.CtxRequestID).(string)
	})

	rec := httptest.NewRecorder()
	api.RequestIDMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatalf("request id not set in context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("header %q does not match context %q", rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not run on preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	api.CORSMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	api.RecoveryMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
