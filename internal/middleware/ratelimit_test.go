package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fastsales/api/internal/middleware"
)

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	// A near-zero refill rate keeps the test independent of wall time.
	handler := middleware.RateLimit(0.0001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 3)
	for i := range codes {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/sales", nil))
		codes[i] = rr.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests: got %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request: got %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}
