package database

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DateWindow is an inclusive pair of calendar dates (YYYY-MM-DD) evaluated in
// TimeZone. Empty bounds are left open. Bounds are cast by PostgreSQL, so a
// malformed value fails the query with a class 22 error.
type DateWindow struct {
	StartDate string
	EndDate   string
	TimeZone  string
}

// localDate renders the calendar date of a timestamptz column in tz.
func localDate(column string) string {
	return "(" + column + " AT TIME ZONE ?::text)::date"
}

func withWindow(b sq.SelectBuilder, column string, w DateWindow) sq.SelectBuilder {
	if w.StartDate != "" {
		b = b.Where(sq.Expr(localDate(column)+" >= ?::text::date", w.TimeZone, w.StartDate))
	}
	if w.EndDate != "" {
		b = b.Where(sq.Expr(localDate(column)+" <= ?::text::date", w.TimeZone, w.EndDate))
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ListSalesParams filters the transaction header list.
type ListSalesParams struct {
	Query  string
	Window DateWindow
	Limit  uint64
	Offset uint64
}

func listSalesQuery(arg ListSalesParams) sq.SelectBuilder {
	b := psql.Select(saleRowColumns).
		From("sales s").
		LeftJoin("customers c ON c.id = s.customer_id")
	if q := strings.TrimSpace(arg.Query); q != "" {
		pattern := containsPattern(q)
		b = b.Where(sq.Or{
			sq.ILike{"c.first_name": pattern},
			sq.ILike{"c.last_name": pattern},
			sq.ILike{"s.receipt_number": pattern},
		})
	}
	b = withWindow(b, "s.date_and_time", arg.Window)
	return b.OrderBy("s.date_and_time DESC", "s.id").
		Limit(arg.Limit).
		Offset(arg.Offset)
}

// ListSaleItemsParams pages the flat line list over a window.
type ListSaleItemsParams struct {
	Window DateWindow
	Limit  uint64
	Offset uint64
}

func saleItemsBase(columns string, w DateWindow) sq.SelectBuilder {
	b := psql.Select(columns).
		From("sale_items si").
		LeftJoin("products p ON p.id = si.product_id")
	return withWindow(b, "si.date_of_sale", w)
}

func listSaleItemsQuery(arg ListSaleItemsParams) sq.SelectBuilder {
	return saleItemsBase(saleItemRowColumns, arg.Window).
		OrderBy("si.date_of_sale DESC", "si.id").
		Limit(arg.Limit).
		Offset(arg.Offset)
}

// sumSaleItemsQuery shares its predicate with listSaleItemsQuery so the
// period total always covers exactly the rows the list pages through.
func sumSaleItemsQuery(w DateWindow) sq.SelectBuilder {
	return saleItemsBase("COALESCE(SUM(si.total_cents), 0)::bigint", w)
}

// ListSalesByStaffParams selects one staff member's headers in a window.
type ListSalesByStaffParams struct {
	StaffID uuid.UUID
	Window  DateWindow
}

func listSalesByStaffQuery(arg ListSalesByStaffParams) sq.SelectBuilder {
	b := psql.Select(saleRowColumns).
		From("sales s").
		LeftJoin("customers c ON c.id = s.customer_id").
		// sq.Eq would expand the [16]byte uuid into an IN list.
		Where(sq.Expr("s.staff_responsible = ?", arg.StaffID))
	return withWindow(b, "s.date_and_time", arg.Window).
		OrderBy("s.date_and_time DESC", "s.id")
}
