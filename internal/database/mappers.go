package database

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// MappingError reports a stored value that has no counterpart in the Go model.
type MappingError struct {
	Column string
	Value  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("unexpected %s value %q", e.Column, e.Value)
}

func parseSalesChannel(raw string) (SalesChannel, error) {
	ch := SalesChannel(raw)
	if !ch.Valid() {
		return "", &MappingError{Column: "sales_channel", Value: raw}
	}
	return ch, nil
}

const saleColumns = `s.id, s.customer_id, s.date_and_time, s.total_cents, s.discount, s.total_resolved,
       s.sales_channel, s.staff_responsible, s.company_branch, s.car_number, s.receipt_number`

const saleRowColumns = saleColumns + `,
       CASE WHEN c.id IS NULL THEN NULL ELSE c.first_name || ' ' || c.last_name END AS customer_name`

const saleItemColumns = `si.id, si.sale_id, si.product_id, si.customer_id, si.date_of_sale, si.quantity,
       si.discount, si.total_cents, si.total_resolved, si.note, si.product_name, si.unit_price_cents`

const saleItemRowColumns = `si.id, si.sale_id, si.product_id, si.customer_id, si.date_of_sale, si.quantity,
       si.discount, si.total_cents, si.total_resolved, si.note,
       COALESCE(si.product_name, p.name) AS product_name,
       COALESCE(si.unit_price_cents, p.price_cents) AS unit_price_cents`

func scanSale(row pgx.Row, extra ...any) (Sale, error) {
	var i Sale
	var channel string
	dest := []any{
		&i.ID,
		&i.CustomerID,
		&i.DateAndTime,
		&i.TotalCents,
		&i.Discount,
		&i.TotalResolved,
		&channel,
		&i.StaffResponsible,
		&i.CompanyBranch,
		&i.CarNumber,
		&i.ReceiptNumber,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return i, err
	}
	ch, err := parseSalesChannel(channel)
	if err != nil {
		return i, err
	}
	i.SalesChannel = ch
	return i, nil
}

func scanSaleRow(row pgx.Row) (SaleRow, error) {
	var i SaleRow
	sale, err := scanSale(row, &i.CustomerName)
	if err != nil {
		return i, err
	}
	i.Sale = sale
	return i, nil
}

func scanSaleItem(row pgx.Row) (SaleItem, error) {
	var i SaleItem
	err := row.Scan(
		&i.ID,
		&i.SaleID,
		&i.ProductID,
		&i.CustomerID,
		&i.DateOfSale,
		&i.Quantity,
		&i.Discount,
		&i.TotalCents,
		&i.TotalResolved,
		&i.Note,
		&i.ProductName,
		&i.UnitPriceCents,
	)
	return i, err
}

func scanSaleItemRow(row pgx.Row) (SaleItemRow, error) {
	i, err := scanSaleItem(row)
	return SaleItemRow(i), err
}

// collect drains rows through scan. The result is never nil so handlers
// encode an empty set as [].
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		i, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
