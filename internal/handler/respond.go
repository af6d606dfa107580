package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	defaultLimit = 20
	maxLimit     = 100
	// maxPage keeps (page-1)*limit within an int32 offset.
	maxPage = math.MaxInt32/maxLimit + 1
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps a service or store failure onto a response:
// validation → 400, missing row → 404, rejected date bound or other
// rejected value → 400, else 500.
func writeStoreError(w http.ResponseWriter, op, notFound string, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSaleNotFound):
		writeError(w, http.StatusNotFound, service.ErrSaleNotFound.Error())
	case errors.Is(err, service.ErrSaleItemNotFound):
		writeError(w, http.StatusNotFound, service.ErrSaleItemNotFound.Error())
	case errors.Is(err, pgx.ErrNoRows):
		writeError(w, http.StatusNotFound, notFound)
	case database.IsInvalidDate(err):
		writeError(w, http.StatusBadRequest, "invalid date")
	case database.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, "invalid input")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrInvalidSalesChannel) ||
		errors.Is(err, service.ErrMissingStaff) ||
		errors.Is(err, service.ErrInvalidStaffID) ||
		errors.Is(err, service.ErrInvalidCustomerID) ||
		errors.Is(err, service.ErrInvalidProductID) ||
		errors.Is(err, service.ErrInvalidSaleID) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidTimestamp) ||
		errors.Is(err, service.ErrInvalidText)
}

// parsePage reads ?page=&limit=. page defaults to 1 and is capped at
// maxPage, limit defaults to 20 and is capped at 100; unparsable values
// fall back to the defaults.
func parsePage(r *http.Request) (page, limit int) {
	page, limit = 1, defaultLimit
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page > maxPage {
		page = maxPage
	}
	return page, limit
}

// formatCents renders integer cents as a fixed two-decimal amount.
func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
