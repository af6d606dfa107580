package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/daterange"
	"github.com/fastsales/api/internal/events"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ReportStore defines the aggregate queries behind the report endpoints.
// Satisfied by *database.Queries.
type ReportStore interface {
	GetSalesSummaryForDate(ctx context.Context, arg database.GetSalesSummaryForDateParams) (database.GetSalesSummaryForDateRow, error)
	GetDailySales(ctx context.Context, w database.DateWindow) ([]database.GetDailySalesRow, error)
	GetTopProducts(ctx context.Context, w database.DateWindow) ([]database.GetTopProductsRow, error)
	GetSalesByProduct(ctx context.Context, w database.DateWindow) ([]database.GetSalesByProductRow, error)
	ListSalesByStaff(ctx context.Context, arg database.ListSalesByStaffParams) ([]database.SaleRow, error)
}

// DailyBucket is one day of the weekly series.
type DailyBucket struct {
	Date            string
	TotalSalesCents int64
	Count           int64
}

// ReportService derives read-only reports from the ledger. Product reports
// are cached per window until the next ledger event.
type ReportService struct {
	store ReportStore
	dates *daterange.Resolver
	cache *cache.Cache
	// gen counts invalidations; a load only stores its rows when no
	// ledger event arrived while it ran.
	gen atomic.Uint64
}

// NewReportService creates a ReportService. A ttl <= 0 disables caching.
func NewReportService(store ReportStore, dates *daterange.Resolver, ttl time.Duration) *ReportService {
	s := &ReportService{store: store, dates: dates}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Window converts a resolved range into query bounds.
func Window(r daterange.Range) database.DateWindow {
	return database.DateWindow{StartDate: r.Start, EndDate: r.End, TimeZone: r.TimeZone}
}

// Today sums the resolved totals and counts the lines dated today.
func (s *ReportService) Today(ctx context.Context) (database.GetSalesSummaryForDateRow, error) {
	row, err := s.store.GetSalesSummaryForDate(ctx, database.GetSalesSummaryForDateParams{
		TimeZone: s.dates.TimeZone(),
		Day:      daterange.Format(s.dates.Today()),
	})
	if err != nil {
		return row, fmt.Errorf("get today summary: %w", err)
	}
	return row, nil
}

// Week returns one bucket per day from Monday through today, in order,
// with zeros for days without sales.
func (s *ReportService) Week(ctx context.Context) ([]DailyBucket, error) {
	start := s.dates.WeekStart()
	today := s.dates.Today()

	rows, err := s.store.GetDailySales(ctx, database.DateWindow{
		StartDate: daterange.Format(start),
		EndDate:   daterange.Format(today),
		TimeZone:  s.dates.TimeZone(),
	})
	if err != nil {
		return nil, fmt.Errorf("get daily sales: %w", err)
	}

	byDate := make(map[string]database.GetDailySalesRow, len(rows))
	for _, row := range rows {
		if row.SaleDate.Valid {
			byDate[row.SaleDate.Time.Format("2006-01-02")] = row
		}
	}

	var buckets []DailyBucket
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := daterange.Format(d)
		row := byDate[key]
		buckets = append(buckets, DailyBucket{
			Date:            key,
			TotalSalesCents: row.TotalSalesCents,
			Count:           row.Count,
		})
	}
	return buckets, nil
}

// TopProducts returns the 20 best-selling products by resolved revenue.
func (s *ReportService) TopProducts(ctx context.Context, r daterange.Range) ([]database.GetTopProductsRow, error) {
	return cached(s, "top_products", r, func() ([]database.GetTopProductsRow, error) {
		rows, err := s.store.GetTopProducts(ctx, Window(r))
		if err != nil {
			return nil, fmt.Errorf("get top products: %w", err)
		}
		return rows, nil
	})
}

// SalesByProduct returns quantity and revenue for every product sold.
func (s *ReportService) SalesByProduct(ctx context.Context, r daterange.Range) ([]database.GetSalesByProductRow, error) {
	return cached(s, "by_product", r, func() ([]database.GetSalesByProductRow, error) {
		rows, err := s.store.GetSalesByProduct(ctx, Window(r))
		if err != nil {
			return nil, fmt.Errorf("get sales by product: %w", err)
		}
		return rows, nil
	})
}

// StaffTransactions lists the headers a staff member was responsible for.
func (s *ReportService) StaffTransactions(ctx context.Context, staffID uuid.UUID, r daterange.Range) ([]database.SaleRow, error) {
	rows, err := s.store.ListSalesByStaff(ctx, database.ListSalesByStaffParams{
		StaffID: staffID,
		Window:  Window(r),
	})
	if err != nil {
		return nil, fmt.Errorf("list sales by staff: %w", err)
	}
	return rows, nil
}

// Notify implements events.Notifier: any ledger change invalidates every
// cached report.
func (s *ReportService) Notify(_ context.Context, _ events.LedgerEvent) {
	if s.cache != nil {
		s.gen.Add(1)
		s.cache.Flush()
	}
}

func cached[T any](s *ReportService, name string, r daterange.Range, load func() ([]T, error)) ([]T, error) {
	if s.cache == nil {
		return load()
	}
	key := name + "|" + r.Start + "|" + r.End + "|" + r.TimeZone
	if v, ok := s.cache.Get(key); ok {
		if rows, ok := v.([]T); ok {
			return rows, nil
		}
	}
	gen := s.gen.Load()
	rows, err := load()
	if err != nil {
		return nil, err
	}
	if s.gen.Load() == gen {
		s.cache.SetDefault(key, rows)
	}
	return rows, nil
}
