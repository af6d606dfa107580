package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/daterange"
	"github.com/fastsales/api/internal/middleware"
	"github.com/fastsales/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SaleWriter is the write side of the ledger.
// Satisfied by *service.SaleService.
type SaleWriter interface {
	CreateTransaction(ctx context.Context, req service.CreateTransactionRequest) (*service.TransactionResult, error)
	CreateLineItem(ctx context.Context, in service.LineItemInput) (database.SaleItemRow, error)
	UpdateLineItem(ctx context.Context, id uuid.UUID, in service.LineItemInput) (database.SaleItemRow, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	DeleteLineItem(ctx context.Context, id uuid.UUID) error
}

// TransactionStore defines the database methods needed to read headers.
// Satisfied by *database.Queries; narrow interface for testability.
type TransactionStore interface {
	GetSale(ctx context.Context, id uuid.UUID) (database.SaleRow, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.SaleItemRow, error)
	ListSales(ctx context.Context, arg database.ListSalesParams) ([]database.SaleRow, error)
}

// TransactionHandler handles multi-line sale endpoints.
type TransactionHandler struct {
	writer SaleWriter
	store  TransactionStore
	dates  *daterange.Resolver
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(writer SaleWriter, store TransactionStore, dates *daterange.Resolver) *TransactionHandler {
	return &TransactionHandler{writer: writer, store: store, dates: dates}
}

// RegisterRoutes registers transaction endpoints.
// Expected to be mounted at /sales_transactions
func (h *TransactionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
}

// --- Request types ---

type transactionLineRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int64  `json:"quantity"`
	Discount      int64  `json:"discount"`
	TotalCents    int64  `json:"total_cents"`
	TotalResolved int64  `json:"total_resolved"`
	Note          string `json:"note"`
}

type createTransactionRequest struct {
	CustomerID       string                   `json:"customer_id"`
	DateAndTime      string                   `json:"date_and_time"`
	TotalCents       int64                    `json:"total_cents"`
	Discount         int64                    `json:"discount"`
	TotalResolved    int64                    `json:"total_resolved"`
	SalesChannel     string                   `json:"sales_channel"`
	StaffResponsible string                   `json:"staff_responsible"`
	CompanyBranch    string                   `json:"company_branch"`
	CarNumber        string                   `json:"car_number"`
	ReceiptNumber    string                   `json:"receipt_number"`
	SaleItems        []transactionLineRequest `json:"sale_items"`
}

// --- Handlers ---

// Create handles POST /sales_transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.TransactionLine, len(req.SaleItems))
	for i, item := range req.SaleItems {
		items[i] = service.TransactionLine{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Discount:      item.Discount,
			TotalCents:    item.TotalCents,
			TotalResolved: item.TotalResolved,
			Note:          item.Note,
		}
	}

	result, err := h.writer.CreateTransaction(r.Context(), service.CreateTransactionRequest{
		CustomerID:       req.CustomerID,
		DateAndTime:      req.DateAndTime,
		TotalCents:       req.TotalCents,
		Discount:         req.Discount,
		TotalResolved:    req.TotalResolved,
		SalesChannel:     req.SalesChannel,
		StaffResponsible: req.StaffResponsible,
		AuthStaffID:      middleware.StaffIDFromContext(r.Context()),
		CompanyBranch:    req.CompanyBranch,
		CarNumber:        req.CarNumber,
		ReceiptNumber:    req.ReceiptNumber,
		Items:            items,
	})
	if err != nil {
		writeStoreError(w, "create transaction", "sale not found", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSaleDetailResponse(result.Sale, result.Items))
}

// List handles GET /sales_transactions?query=&start_date=&end_date=&page=&limit=.
// Date bounds are optional and inclusive; no total count is returned.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := parsePage(r)

	sales, err := h.store.ListSales(r.Context(), database.ListSalesParams{
		Query: q.Get("query"),
		Window: database.DateWindow{
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
			TimeZone:  h.dates.TimeZone(),
		},
		Limit:  uint64(limit),
		Offset: uint64((page - 1) * limit),
	})
	if err != nil {
		writeStoreError(w, "list transactions", "sale not found", err)
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponses(sales))
}

// Get handles GET /sales_transactions/{id}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.store.GetSale(r.Context(), id)
	if err != nil {
		writeStoreError(w, "get transaction", "sale not found", err)
		return
	}

	items, err := h.store.ListSaleItemsBySale(r.Context(), id)
	if err != nil {
		writeStoreError(w, "list transaction items", "sale not found", err)
		return
	}

	writeJSON(w, http.StatusOK, toSaleDetailResponse(sale, items))
}

// Delete handles DELETE /sales_transactions/{id}. Lines are removed with
// their header.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	if err := h.writer.DeleteTransaction(r.Context(), id); err != nil {
		writeStoreError(w, "delete transaction", "sale not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
