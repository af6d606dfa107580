package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fastsales/api/internal/auth"
	"github.com/fastsales/api/internal/daterange"
	"github.com/fastsales/api/internal/middleware"
	"github.com/google/uuid"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2026, 3, 18, 10, 30, 0, 0, time.UTC)

func testResolver(t *testing.T) *daterange.Resolver {
	t.Helper()
	r, err := daterange.New("UTC")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	return r.WithClock(func() time.Time { return fixedNow })
}

// withStaff attaches authenticated claims the way middleware.Authenticate does.
func withStaff(r *http.Request, staffID uuid.UUID) *http.Request {
	claims := &auth.Claims{StaffID: staffID, Username: "cashier"}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	decode(t, rr, &resp)
	return resp["error"]
}
