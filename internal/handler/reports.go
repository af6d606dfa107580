package handler

import (
	"context"
	"net/http"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/daterange"
	"github.com/fastsales/api/internal/service"
	"github.com/go-chi/chi/v5"
)

// ReportService is the read side behind the stats endpoints.
// Satisfied by *service.ReportService.
type ReportService interface {
	Today(ctx context.Context) (database.GetSalesSummaryForDateRow, error)
	Week(ctx context.Context) ([]service.DailyBucket, error)
	TopProducts(ctx context.Context, r daterange.Range) ([]database.GetTopProductsRow, error)
	SalesByProduct(ctx context.Context, r daterange.Range) ([]database.GetSalesByProductRow, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	reports ReportService
	dates   *daterange.Resolver
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(reports ReportService, dates *daterange.Resolver) *ReportsHandler {
	return &ReportsHandler{reports: reports, dates: dates}
}

// RegisterRoutes registers report endpoints.
// Expected to be mounted at /sales/stats
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/today", h.Today)
	r.Get("/week", h.Week)
	r.Get("/top_products", h.TopProducts)
	r.Get("/by_product", h.SalesByProduct)
}

// --- Response types ---

type summaryResponse struct {
	TotalSalesCents int64  `json:"total_sales_cents"`
	TotalSales      string `json:"total_sales"`
	Count           int64  `json:"count"`
}

type dailySalesResponse struct {
	Date            string `json:"date"`
	TotalSalesCents int64  `json:"total_sales_cents"`
	Count           int64  `json:"count"`
}

type topProductResponse struct {
	ProductName     string `json:"product_name"`
	TotalSalesCents int64  `json:"total_sales_cents"`
	TotalSales      string `json:"total_sales"`
}

type productSalesResponse struct {
	ProductName      string `json:"product_name"`
	TotalQuantity    int64  `json:"total_quantity"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	TotalAmount      string `json:"total_amount"`
}

// --- Handlers ---

// Today returns the resolved total and line count for the current local day.
func (h *ReportsHandler) Today(w http.ResponseWriter, r *http.Request) {
	row, err := h.reports.Today(r.Context())
	if err != nil {
		writeStoreError(w, "today summary", "not found", err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalSalesCents: row.TotalSalesCents,
		TotalSales:      formatCents(row.TotalSalesCents),
		Count:           row.Count,
	})
}

// Week returns one entry per day from Monday through today.
func (h *ReportsHandler) Week(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.reports.Week(r.Context())
	if err != nil {
		writeStoreError(w, "weekly sales", "not found", err)
		return
	}

	resp := make([]dailySalesResponse, len(buckets))
	for i, b := range buckets {
		resp[i] = dailySalesResponse{
			Date:            b.Date,
			TotalSalesCents: b.TotalSalesCents,
			Count:           b.Count,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// TopProducts returns the best sellers for ?start_date=&end_date=.
func (h *ReportsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.TopProducts(r.Context(), h.resolve(r))
	if err != nil {
		writeStoreError(w, "top products", "not found", err)
		return
	}

	resp := make([]topProductResponse, len(rows))
	for i, row := range rows {
		resp[i] = topProductResponse{
			ProductName:     row.ProductName,
			TotalSalesCents: row.TotalSalesCents,
			TotalSales:      formatCents(row.TotalSalesCents),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// SalesByProduct returns quantity and revenue per product for the window.
func (h *ReportsHandler) SalesByProduct(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.SalesByProduct(r.Context(), h.resolve(r))
	if err != nil {
		writeStoreError(w, "sales by product", "not found", err)
		return
	}

	resp := make([]productSalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = productSalesResponse{
			ProductName:      row.ProductName,
			TotalQuantity:    row.TotalQuantity,
			TotalAmountCents: row.TotalAmountCents,
			TotalAmount:      formatCents(row.TotalAmountCents),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportsHandler) resolve(r *http.Request) daterange.Range {
	q := r.URL.Query()
	return h.dates.Resolve(q.Get("start_date"), q.Get("end_date"))
}
