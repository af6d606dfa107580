package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createSale = `-- name: CreateSale :one
INSERT INTO sales AS s (
    id, customer_id, date_and_time, total_cents, discount, total_resolved,
    sales_channel, staff_responsible, company_branch, car_number, receipt_number
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + saleColumns

type CreateSaleParams struct {
	ID               uuid.UUID
	CustomerID       pgtype.UUID
	DateAndTime      pgtype.Timestamptz
	TotalCents       int64
	Discount         int64
	TotalResolved    int64
	SalesChannel     SalesChannel
	StaffResponsible uuid.UUID
	CompanyBranch    string
	CarNumber        string
	ReceiptNumber    string
}

func (q *Queries) CreateSale(ctx context.Context, arg CreateSaleParams) (Sale, error) {
	row := q.db.QueryRow(ctx, createSale,
		arg.ID,
		arg.CustomerID,
		arg.DateAndTime,
		arg.TotalCents,
		arg.Discount,
		arg.TotalResolved,
		string(arg.SalesChannel),
		arg.StaffResponsible,
		arg.CompanyBranch,
		arg.CarNumber,
		arg.ReceiptNumber,
	)
	return scanSale(row)
}

const getSale = `-- name: GetSale :one
SELECT ` + saleRowColumns + `
FROM sales s
LEFT JOIN customers c ON c.id = s.customer_id
WHERE s.id = $1`

func (q *Queries) GetSale(ctx context.Context, id uuid.UUID) (SaleRow, error) {
	row := q.db.QueryRow(ctx, getSale, id)
	return scanSaleRow(row)
}

const deleteSale = `-- name: DeleteSale :execrows
DELETE FROM sales WHERE id = $1`

// DeleteSale removes a header; its lines go with it (ON DELETE CASCADE).
func (q *Queries) DeleteSale(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSale, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (q *Queries) ListSales(ctx context.Context, arg ListSalesParams) ([]SaleRow, error) {
	query, args, err := listSalesQuery(arg).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sales: %w", err)
	}
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSaleRow)
}

func (q *Queries) ListSalesByStaff(ctx context.Context, arg ListSalesByStaffParams) ([]SaleRow, error) {
	query, args, err := listSalesByStaffQuery(arg).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sales by staff: %w", err)
	}
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSaleRow)
}

const createSaleItem = `-- name: CreateSaleItem :one
INSERT INTO sale_items AS si (
    id, sale_id, product_id, customer_id, date_of_sale, quantity, discount,
    total_cents, total_resolved, note, product_name, unit_price_cents
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + saleItemColumns

type CreateSaleItemParams struct {
	ID             uuid.UUID
	SaleID         pgtype.UUID
	ProductID      uuid.UUID
	CustomerID     pgtype.UUID
	DateOfSale     pgtype.Timestamptz
	Quantity       int64
	Discount       int64
	TotalCents     int64
	TotalResolved  int64
	Note           pgtype.Text
	ProductName    pgtype.Text
	UnitPriceCents pgtype.Int8
}

func (q *Queries) CreateSaleItem(ctx context.Context, arg CreateSaleItemParams) (SaleItem, error) {
	row := q.db.QueryRow(ctx, createSaleItem,
		arg.ID,
		arg.SaleID,
		arg.ProductID,
		arg.CustomerID,
		arg.DateOfSale,
		arg.Quantity,
		arg.Discount,
		arg.TotalCents,
		arg.TotalResolved,
		arg.Note,
		arg.ProductName,
		arg.UnitPriceCents,
	)
	return scanSaleItem(row)
}

const updateSaleItem = `-- name: UpdateSaleItem :execrows
UPDATE sale_items SET
    product_id = $2,
    customer_id = $3,
    date_of_sale = $4,
    quantity = $5,
    discount = $6,
    total_cents = $7,
    total_resolved = $8,
    note = $9,
    product_name = $10,
    unit_price_cents = $11
WHERE id = $1`

type UpdateSaleItemParams struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	CustomerID     pgtype.UUID
	DateOfSale     pgtype.Timestamptz
	Quantity       int64
	Discount       int64
	TotalCents     int64
	TotalResolved  int64
	Note           pgtype.Text
	ProductName    pgtype.Text
	UnitPriceCents pgtype.Int8
}

func (q *Queries) UpdateSaleItem(ctx context.Context, arg UpdateSaleItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateSaleItem,
		arg.ID,
		arg.ProductID,
		arg.CustomerID,
		arg.DateOfSale,
		arg.Quantity,
		arg.Discount,
		arg.TotalCents,
		arg.TotalResolved,
		arg.Note,
		arg.ProductName,
		arg.UnitPriceCents,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getSaleItem = `-- name: GetSaleItem :one
SELECT ` + saleItemRowColumns + `
FROM sale_items si
LEFT JOIN products p ON p.id = si.product_id
WHERE si.id = $1`

func (q *Queries) GetSaleItem(ctx context.Context, id uuid.UUID) (SaleItemRow, error) {
	row := q.db.QueryRow(ctx, getSaleItem, id)
	return scanSaleItemRow(row)
}

const listSaleItemsBySale = `-- name: ListSaleItemsBySale :many
SELECT ` + saleItemRowColumns + `
FROM sale_items si
LEFT JOIN products p ON p.id = si.product_id
WHERE si.sale_id = $1
ORDER BY si.date_of_sale, si.id`

func (q *Queries) ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]SaleItemRow, error) {
	rows, err := q.db.Query(ctx, listSaleItemsBySale, saleID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSaleItemRow)
}

const deleteSaleItem = `-- name: DeleteSaleItem :execrows
DELETE FROM sale_items WHERE id = $1`

// DeleteSaleItem removes one line. The header and its stored totals are
// left untouched.
func (q *Queries) DeleteSaleItem(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSaleItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (q *Queries) ListSaleItems(ctx context.Context, arg ListSaleItemsParams) ([]SaleItemRow, error) {
	query, args, err := listSaleItemsQuery(arg).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sale items: %w", err)
	}
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSaleItemRow)
}

// SumSaleItemsTotal returns SUM(total_cents) over every line in the window,
// regardless of paging.
func (q *Queries) SumSaleItemsTotal(ctx context.Context, w DateWindow) (int64, error) {
	query, args, err := sumSaleItemsQuery(w).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum sale items: %w", err)
	}
	var total int64
	err = q.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}
