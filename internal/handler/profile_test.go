package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockProfileStore struct {
	staff database.Staff
}

func (m *mockProfileStore) GetStaff(_ context.Context, id uuid.UUID) (database.Staff, error) {
	if id != m.staff.ID {
		return database.Staff{}, pgx.ErrNoRows
	}
	return m.staff, nil
}

func TestProfile(t *testing.T) {
	staff := database.Staff{
		ID:           uuid.New(),
		StaffCode:    "S-001",
		FirstName:    "Ben",
		LastName:     "Tan",
		Username:     "ben",
		PasswordHash: "$2a$10$secret",
	}
	h := handler.NewProfileHandler(&mockProfileStore{staff: staff})
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	tests := []struct {
		name    string
		staffID uuid.UUID
		want    int
	}{
		{"authenticated", staff.ID, http.StatusOK},
		{"unknown staff", uuid.New(), http.StatusNotFound},
		{"no claims", uuid.Nil, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			if tc.staffID != uuid.Nil {
				req = withStaff(req, tc.staffID)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rr.Code)
			}
			if strings.Contains(rr.Body.String(), "secret") {
				t.Error("password hash leaked in response")
			}
		})
	}
}
