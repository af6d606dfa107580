package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getSalesSummaryForDate = `-- name: GetSalesSummaryForDate :one
SELECT COALESCE(SUM(si.total_resolved), 0)::bigint AS total_sales_cents,
       COUNT(*) AS count
FROM sale_items si
WHERE (si.date_of_sale AT TIME ZONE $1::text)::date = $2::text::date`

type GetSalesSummaryForDateParams struct {
	TimeZone string
	Day      string
}

type GetSalesSummaryForDateRow struct {
	TotalSalesCents int64 `json:"total_sales_cents"`
	Count           int64 `json:"count"`
}

func (q *Queries) GetSalesSummaryForDate(ctx context.Context, arg GetSalesSummaryForDateParams) (GetSalesSummaryForDateRow, error) {
	row := q.db.QueryRow(ctx, getSalesSummaryForDate, arg.TimeZone, arg.Day)
	var i GetSalesSummaryForDateRow
	err := row.Scan(&i.TotalSalesCents, &i.Count)
	return i, err
}

const getDailySales = `-- name: GetDailySales :many
SELECT (si.date_of_sale AT TIME ZONE $1::text)::date AS sale_date,
       COALESCE(SUM(si.total_resolved), 0)::bigint AS total_sales_cents,
       COUNT(*) AS count
FROM sale_items si
WHERE (si.date_of_sale AT TIME ZONE $1::text)::date BETWEEN $2::text::date AND $3::text::date
GROUP BY sale_date
ORDER BY sale_date`

type GetDailySalesRow struct {
	SaleDate        pgtype.Date `json:"sale_date"`
	TotalSalesCents int64       `json:"total_sales_cents"`
	Count           int64       `json:"count"`
}

// GetDailySales returns only the days that have lines; callers fill gaps.
func (q *Queries) GetDailySales(ctx context.Context, w DateWindow) ([]GetDailySalesRow, error) {
	rows, err := q.db.Query(ctx, getDailySales, w.TimeZone, w.StartDate, w.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetDailySalesRow{}
	for rows.Next() {
		var i GetDailySalesRow
		if err := rows.Scan(&i.SaleDate, &i.TotalSalesCents, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTopProducts = `-- name: GetTopProducts :many
SELECT COALESCE(si.product_name, p.name)::text AS product_name,
       COALESCE(SUM(si.total_resolved), 0)::bigint AS total_sales_cents
FROM sale_items si
LEFT JOIN products p ON p.id = si.product_id
WHERE (si.date_of_sale AT TIME ZONE $1::text)::date BETWEEN $2::text::date AND $3::text::date
  AND COALESCE(si.product_name, p.name) IS NOT NULL
GROUP BY 1
ORDER BY total_sales_cents DESC, product_name
LIMIT 20`

type GetTopProductsRow struct {
	ProductName     string `json:"product_name"`
	TotalSalesCents int64  `json:"total_sales_cents"`
}

func (q *Queries) GetTopProducts(ctx context.Context, w DateWindow) ([]GetTopProductsRow, error) {
	rows, err := q.db.Query(ctx, getTopProducts, w.TimeZone, w.StartDate, w.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetTopProductsRow{}
	for rows.Next() {
		var i GetTopProductsRow
		if err := rows.Scan(&i.ProductName, &i.TotalSalesCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getSalesByProduct = `-- name: GetSalesByProduct :many
SELECT COALESCE(si.product_name, p.name)::text AS product_name,
       COALESCE(SUM(si.quantity), 0)::bigint AS total_quantity,
       COALESCE(SUM(si.total_resolved), 0)::bigint AS total_amount_cents
FROM sale_items si
LEFT JOIN products p ON p.id = si.product_id
WHERE (si.date_of_sale AT TIME ZONE $1::text)::date BETWEEN $2::text::date AND $3::text::date
  AND COALESCE(si.product_name, p.name) IS NOT NULL
GROUP BY 1
ORDER BY total_amount_cents DESC, product_name`

type GetSalesByProductRow struct {
	ProductName      string `json:"product_name"`
	TotalQuantity    int64  `json:"total_quantity"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

func (q *Queries) GetSalesByProduct(ctx context.Context, w DateWindow) ([]GetSalesByProductRow, error) {
	rows, err := q.db.Query(ctx, getSalesByProduct, w.TimeZone, w.StartDate, w.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetSalesByProductRow{}
	for rows.Next() {
		var i GetSalesByProductRow
		if err := rows.Scan(&i.ProductName, &i.TotalQuantity, &i.TotalAmountCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
