package database

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestListSalesQuery_NoFilters(t *testing.T) {
	query, args, err := listSalesQuery(ListSalesParams{Limit: 20}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if strings.Contains(query, "WHERE") {
		t.Errorf("expected no WHERE clause, got %s", query)
	}
	if !strings.Contains(query, "ORDER BY s.date_and_time DESC") {
		t.Errorf("expected newest-first ordering, got %s", query)
	}
	if !strings.Contains(query, "LIMIT 20") {
		t.Errorf("expected LIMIT 20, got %s", query)
	}
	if len(args) != 0 {
		t.Errorf("args: got %d, want 0", len(args))
	}
}

func TestListSalesQuery_TextAndWindow(t *testing.T) {
	query, args, err := listSalesQuery(ListSalesParams{
		Query: "ana",
		Window: DateWindow{
			StartDate: "2024-03-01",
			EndDate:   "2024-03-31",
			TimeZone:  "UTC",
		},
		Limit:  10,
		Offset: 30,
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	for _, want := range []string{
		"c.first_name ILIKE $1",
		"c.last_name ILIKE $2",
		"s.receipt_number ILIKE $3",
		"(s.date_and_time AT TIME ZONE $4::text)::date >= $5::text::date",
		"(s.date_and_time AT TIME ZONE $6::text)::date <= $7::text::date",
		"LIMIT 10",
		"OFFSET 30",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q:\n%s", want, query)
		}
	}

	if len(args) != 7 {
		t.Fatalf("args: got %d, want 7", len(args))
	}
	if args[0] != "%ana%" {
		t.Errorf("pattern: got %v, want %%ana%%", args[0])
	}
	if args[4] != "2024-03-01" || args[6] != "2024-03-31" {
		t.Errorf("date args: got %v and %v", args[4], args[6])
	}
}

func TestListSalesQuery_OnlyStartBound(t *testing.T) {
	query, args, err := listSalesQuery(ListSalesParams{
		Window: DateWindow{StartDate: "2024-03-01", TimeZone: "UTC"},
		Limit:  20,
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if strings.Contains(query, "<=") {
		t.Errorf("expected no upper bound, got %s", query)
	}
	if len(args) != 2 {
		t.Errorf("args: got %d, want 2", len(args))
	}
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ana", "%ana%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSumSaleItemsQuery_SharesListPredicate(t *testing.T) {
	w := DateWindow{StartDate: "2024-01-01", EndDate: "2024-01-31", TimeZone: "Europe/Berlin"}

	listSQL, listArgs, err := listSaleItemsQuery(ListSaleItemsParams{Window: w, Limit: 20, Offset: 40}).ToSql()
	if err != nil {
		t.Fatalf("list ToSql: %v", err)
	}
	sumSQL, sumArgs, err := sumSaleItemsQuery(w).ToSql()
	if err != nil {
		t.Fatalf("sum ToSql: %v", err)
	}

	where := func(q string) string {
		i := strings.Index(q, "WHERE")
		if i < 0 {
			t.Fatalf("no WHERE in %s", q)
		}
		rest := q[i:]
		if j := strings.Index(rest, " ORDER BY"); j >= 0 {
			rest = rest[:j]
		}
		return rest
	}
	if where(listSQL) != where(sumSQL) {
		t.Errorf("predicates differ:\nlist: %s\nsum:  %s", where(listSQL), where(sumSQL))
	}
	if strings.Contains(sumSQL, "LIMIT") || strings.Contains(sumSQL, "OFFSET") {
		t.Errorf("sum must not be paged: %s", sumSQL)
	}
	if len(listArgs) != len(sumArgs) {
		t.Errorf("args: list %d, sum %d", len(listArgs), len(sumArgs))
	}
	if !strings.Contains(sumSQL, "COALESCE(SUM(si.total_cents), 0)::bigint") {
		t.Errorf("sum expression missing: %s", sumSQL)
	}
}

func TestListSalesByStaffQuery(t *testing.T) {
	staffID := uuid.New()
	query, args, err := listSalesByStaffQuery(ListSalesByStaffParams{
		StaffID: staffID,
		Window:  DateWindow{StartDate: "2024-02-01", EndDate: "2024-02-29", TimeZone: "UTC"},
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if !strings.Contains(query, "s.staff_responsible = $1") {
		t.Errorf("missing staff predicate: %s", query)
	}
	if strings.Contains(query, "LIMIT") {
		t.Errorf("staff listing is unpaginated: %s", query)
	}
	if args[0] != staffID {
		t.Errorf("staff arg: got %v, want %v", args[0], staffID)
	}
}

func TestParseSalesChannel(t *testing.T) {
	if ch, err := parseSalesChannel("web"); err != nil || ch != SalesChannelWeb {
		t.Errorf("web: got %v, %v", ch, err)
	}
	_, err := parseSalesChannel("kiosk")
	me, ok := err.(*MappingError)
	if !ok {
		t.Fatalf("expected *MappingError, got %T", err)
	}
	if me.Column != "sales_channel" || me.Value != "kiosk" {
		t.Errorf("unexpected mapping error: %+v", me)
	}
}
