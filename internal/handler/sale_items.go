package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/daterange"
	"github.com/fastsales/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SaleItemStore defines the database methods needed by the flat line
// endpoints. Satisfied by *database.Queries.
type SaleItemStore interface {
	GetSaleItem(ctx context.Context, id uuid.UUID) (database.SaleItemRow, error)
	ListSaleItems(ctx context.Context, arg database.ListSaleItemsParams) ([]database.SaleItemRow, error)
	SumSaleItemsTotal(ctx context.Context, w database.DateWindow) (int64, error)
}

// SaleItemHandler serves the legacy single-line /sales endpoints.
type SaleItemHandler struct {
	writer SaleWriter
	store  SaleItemStore
	dates  *daterange.Resolver
}

// NewSaleItemHandler creates a new SaleItemHandler.
func NewSaleItemHandler(writer SaleWriter, store SaleItemStore, dates *daterange.Resolver) *SaleItemHandler {
	return &SaleItemHandler{writer: writer, store: store, dates: dates}
}

// RegisterRoutes registers line endpoints. Mount report routes on /stats
// before calling this so "stats" is not taken for an id.
func (h *SaleItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type saleItemRequest struct {
	SaleID        string `json:"sale_id"`
	ProductID     string `json:"product_id"`
	CustomerID    string `json:"customer_id"`
	DateOfSale    string `json:"date_of_sale"`
	Quantity      int64  `json:"quantity"`
	Discount      int64  `json:"discount"`
	TotalCents    int64  `json:"total_cents"`
	TotalResolved int64  `json:"total_resolved"`
	Note          string `json:"note"`
}

func (req saleItemRequest) toInput() service.LineItemInput {
	return service.LineItemInput{
		SaleID:        req.SaleID,
		ProductID:     req.ProductID,
		CustomerID:    req.CustomerID,
		DateOfSale:    req.DateOfSale,
		Quantity:      req.Quantity,
		Discount:      req.Discount,
		TotalCents:    req.TotalCents,
		TotalResolved: req.TotalResolved,
		Note:          req.Note,
	}
}

type saleItemListResponse struct {
	Sales                 []saleItemResponse `json:"sales"`
	TotalSalesPeriodCents int64              `json:"total_sales_period_cents"`
	TotalSalesPeriod      string             `json:"total_sales_period"`
	StartDate             string             `json:"start_date"`
	EndDate               string             `json:"end_date"`
	Page                  int                `json:"page"`
	Limit                 int                `json:"limit"`
}

// List handles GET /sales?start_date=&end_date=&page=&limit=. The period
// total covers the whole window, not just the returned page.
func (h *SaleItemHandler) List(w http.ResponseWriter, r *http.Request) {
	rng := h.dates.Resolve(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	window := service.Window(rng)
	page, limit := parsePage(r)

	items, err := h.store.ListSaleItems(r.Context(), database.ListSaleItemsParams{
		Window: window,
		Limit:  uint64(limit),
		Offset: uint64((page - 1) * limit),
	})
	if err != nil {
		writeStoreError(w, "list sale items", "sale item not found", err)
		return
	}

	total, err := h.store.SumSaleItemsTotal(r.Context(), window)
	if err != nil {
		writeStoreError(w, "sum sale items", "sale item not found", err)
		return
	}

	writeJSON(w, http.StatusOK, saleItemListResponse{
		Sales:                 toSaleItemResponses(items),
		TotalSalesPeriodCents: total,
		TotalSalesPeriod:      formatCents(total),
		StartDate:             rng.Start,
		EndDate:               rng.End,
		Page:                  page,
		Limit:                 limit,
	})
}

// Create handles POST /sales.
func (h *SaleItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req saleItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.writer.CreateLineItem(r.Context(), req.toInput())
	if err != nil {
		writeStoreError(w, "create sale item", "sale item not found", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSaleItemResponse(item))
}

// Get handles GET /sales/{id}.
func (h *SaleItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale item ID")
		return
	}

	item, err := h.store.GetSaleItem(r.Context(), id)
	if err != nil {
		writeStoreError(w, "get sale item", "sale item not found", err)
		return
	}

	writeJSON(w, http.StatusOK, toSaleItemResponse(item))
}

// Update handles PUT /sales/{id}. The line is re-snapshotted.
func (h *SaleItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale item ID")
		return
	}

	var req saleItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.writer.UpdateLineItem(r.Context(), id, req.toInput())
	if err != nil {
		writeStoreError(w, "update sale item", "sale item not found", err)
		return
	}

	writeJSON(w, http.StatusOK, toSaleItemResponse(item))
}

// Delete handles DELETE /sales/{id}. The header is left untouched.
func (h *SaleItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale item ID")
		return
	}

	if err := h.writer.DeleteLineItem(r.Context(), id); err != nil {
		writeStoreError(w, "delete sale item", "sale item not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
