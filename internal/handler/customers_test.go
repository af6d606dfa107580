package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// --- Mock Store ---

type mockCustomerStore struct {
	customers []database.Customer
	err       error

	lastList database.ListCustomersParams
}

func (m *mockCustomerStore) ListCustomers(_ context.Context, arg database.ListCustomersParams) ([]database.Customer, error) {
	m.lastList = arg
	if m.err != nil {
		return nil, m.err
	}
	if m.customers == nil {
		return []database.Customer{}, nil
	}
	return m.customers, nil
}

func (m *mockCustomerStore) GetCustomer(_ context.Context, id uuid.UUID) (database.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return database.Customer{}, pgx.ErrNoRows
}

func setupCustomerRouter(store handler.CustomerStore) http.Handler {
	h := handler.NewCustomerHandler(store)
	r := chi.NewRouter()
	r.Route("/customers", h.RegisterRoutes)
	return r
}

// --- Tests ---

func TestListCustomers(t *testing.T) {
	store := &mockCustomerStore{customers: []database.Customer{{
		ID:           uuid.New(),
		FirstName:    "Ana",
		LastName:     "Reyes",
		MiddleName:   pgtype.Text{String: "Cruz", Valid: true},
		MobileNumber: "09170000000",
		CreatedAt:    time.Now(),
	}}}
	router := setupCustomerRouter(store)

	rr := doRequest(t, router, http.MethodGet, "/customers?search=%20rey%20", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if store.lastList.Search.String != "rey" {
		t.Errorf("search: got %q, want trimmed 'rey'", store.lastList.Search.String)
	}
	var resp []map[string]interface{}
	decode(t, rr, &resp)
	if len(resp) != 1 || resp[0]["middle_name"] != "Cruz" {
		t.Errorf("unexpected body: %v", resp)
	}
}

func TestListCustomersEmpty(t *testing.T) {
	store := &mockCustomerStore{}
	router := setupCustomerRouter(store)

	rr := doRequest(t, router, http.MethodGet, "/customers", "")
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected 200 [], got %d %s", rr.Code, rr.Body.String())
	}
	if store.lastList.Search.Valid {
		t.Error("empty search should be NULL")
	}

	store.err = errStore
	if rr := doRequest(t, router, http.MethodGet, "/customers", ""); rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestGetCustomer(t *testing.T) {
	c := database.Customer{ID: uuid.New(), FirstName: "Ana", LastName: "Reyes"}
	router := setupCustomerRouter(&mockCustomerStore{customers: []database.Customer{c}})

	rr := doRequest(t, router, http.MethodGet, "/customers/"+c.ID.String(), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]interface{}
	decode(t, rr, &resp)
	if resp["middle_name"] != nil {
		t.Errorf("middle_name should be null, got %v", resp["middle_name"])
	}

	if rr := doRequest(t, router, http.MethodGet, "/customers/"+uuid.NewString(), ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if rr := doRequest(t, router, http.MethodGet, "/customers/bad", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
