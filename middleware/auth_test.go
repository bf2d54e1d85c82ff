package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"useradmin/middleware"
	"useradmin/utils"
)

// The missing-cookie rejection happens before any store access, so these run
// with nil pools.
func TestProtectedMissingCookie(t *testing.T) {
	guard := middleware.Protected(&utils.Config{}, nil, nil)
	handler := guard(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session cookie")
	})

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{
			name: "No cookie at all",
		},
		{
			name:   "Empty cookie value",
			cookie: &http.Cookie{Name: "session_id", Value: ""},
		},
		{
			name:   "Unrelated cookie only",
			cookie: &http.Cookie{Name: "other", Value: "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response body: %v", err)
			}
			if body["message"] != "Unauthorized - missing cookie" {
				t.Errorf("message = %q, want %q", body["message"], "Unauthorized - missing cookie")
			}
		})
	}
}

func TestContextAccessorsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/", nil)

	if s := middleware.SessionFromContext(req.Context()); s != nil {
		t.Errorf("SessionFromContext() = %v, want nil", s)
	}
	if u := middleware.UserFromContext(req.Context()); u != nil {
		t.Errorf("UserFromContext() = %v, want nil", u)
	}
}
