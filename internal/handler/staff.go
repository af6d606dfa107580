package handler

import (
	"context"
	"net/http"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/daterange"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// StaffReports lists headers per responsible staff member.
// Satisfied by *service.ReportService.
type StaffReports interface {
	StaffTransactions(ctx context.Context, staffID uuid.UUID, r daterange.Range) ([]database.SaleRow, error)
}

// StaffHandler handles staff-scoped ledger views.
type StaffHandler struct {
	reports StaffReports
	dates   *daterange.Resolver
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(reports StaffReports, dates *daterange.Resolver) *StaffHandler {
	return &StaffHandler{reports: reports, dates: dates}
}

// RegisterRoutes registers staff endpoints.
// Expected to be mounted at /staff
func (h *StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}/transactions", h.Transactions)
}

// Transactions handles GET /staff/{id}/transactions?start_date=&end_date=.
func (h *StaffHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	q := r.URL.Query()
	sales, err := h.reports.StaffTransactions(r.Context(), id, h.dates.Resolve(q.Get("start_date"), q.Get("end_date")))
	if err != nil {
		writeStoreError(w, "staff transactions", "staff not found", err)
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponses(sales))
}
