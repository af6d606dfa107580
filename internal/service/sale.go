package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/enum"
	"github.com/fastsales/api/internal/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Errors returned by the sale service.
var (
	ErrEmptyItems          = errors.New("sale_items are required")
	ErrInvalidSalesChannel = errors.New("invalid sales_channel, expected mobile or web")
	ErrMissingStaff        = errors.New("staff_responsible is required")
	ErrInvalidStaffID      = errors.New("invalid staff_responsible")
	ErrInvalidCustomerID   = errors.New("invalid customer_id")
	ErrInvalidProductID    = errors.New("invalid product_id")
	ErrInvalidSaleID       = errors.New("invalid sale_id")
	ErrInvalidQuantity     = errors.New("quantity must be > 0")
	ErrInvalidTimestamp    = errors.New("invalid timestamp, expected RFC3339")
	ErrInvalidText         = errors.New("text fields must not contain NUL bytes")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrSaleItemNotFound    = errors.New("sale item not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SaleStore defines the DB methods needed to write the ledger.
// Satisfied by *database.Queries (and its WithTx variant).
type SaleStore interface {
	ProductReader
	CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (database.SaleRow, error)
	DeleteSale(ctx context.Context, id uuid.UUID) (int64, error)
	CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	UpdateSaleItem(ctx context.Context, arg database.UpdateSaleItemParams) (int64, error)
	GetSaleItem(ctx context.Context, id uuid.UUID) (database.SaleItemRow, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.SaleItemRow, error)
	DeleteSaleItem(ctx context.Context, id uuid.UUID) (int64, error)
}

// NewSaleStore creates a SaleStore from a DBTX (pool or tx).
type NewSaleStore func(db database.DBTX) SaleStore

// CreateTransactionRequest is the input for recording a multi-line sale.
// Totals are stored exactly as supplied.
type CreateTransactionRequest struct {
	CustomerID       string
	DateAndTime      string // RFC3339, defaults to now
	TotalCents       int64
	Discount         int64
	TotalResolved    int64
	SalesChannel     string
	StaffResponsible string // defaults to AuthStaffID
	AuthStaffID      uuid.UUID
	CompanyBranch    string
	CarNumber        string
	ReceiptNumber    string
	Items            []TransactionLine
}

// TransactionLine is one line of a multi-line sale. Its date and customer
// are taken from the header.
type TransactionLine struct {
	ProductID     string
	Quantity      int64
	Discount      int64
	TotalCents    int64
	TotalResolved int64
	Note          string
}

// TransactionResult is the committed header with its resolved lines.
type TransactionResult struct {
	Sale  database.SaleRow
	Items []database.SaleItemRow
}

// LineItemInput is a standalone line for the legacy single-line endpoints.
type LineItemInput struct {
	SaleID        string // create only; empty leaves the line without a header
	ProductID     string
	CustomerID    string
	DateOfSale    string // RFC3339, defaults to now
	Quantity      int64
	Discount      int64
	TotalCents    int64
	TotalResolved int64
	Note          string
}

// SaleService writes the sales ledger.
type SaleService struct {
	pool     TxBeginner
	store    SaleStore
	newStore NewSaleStore
	notifier events.Notifier
	now      func() time.Time
}

// NewSaleService creates a SaleService. store runs single statements on the
// pool; newStore binds a store to a transaction.
func NewSaleService(pool TxBeginner, store SaleStore, newStore NewSaleStore, notifier events.Notifier) *SaleService {
	if notifier == nil {
		notifier = events.Nop{}
	}
	return &SaleService{
		pool:     pool,
		store:    store,
		newStore: newStore,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateTransaction validates req, then writes the header and every line in
// one database transaction, snapshotting each line's product. The result is
// re-read inside the transaction so it reflects exactly what was committed.
// Any failure rolls back the whole sale.
func (s *SaleService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*TransactionResult, error) {
	header, lines, err := s.prepareTransaction(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := store.CreateSale(ctx, header); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	for i, line := range lines {
		snap, err := ResolveSnapshot(ctx, store, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}
		line.ProductName = snap.ProductName
		line.UnitPriceCents = snap.UnitPriceCents
		if _, err := store.CreateSaleItem(ctx, line); err != nil {
			return nil, fmt.Errorf("item[%d]: create sale item: %w", i, err)
		}
	}

	sale, err := store.GetSale(ctx, header.ID)
	if err != nil {
		return nil, fmt.Errorf("reload sale: %w", err)
	}
	items, err := store.ListSaleItemsBySale(ctx, header.ID)
	if err != nil {
		return nil, fmt.Errorf("reload sale items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.notifier.Notify(ctx, events.LedgerEvent{
		Event:      enum.LedgerActionCreated,
		Entity:     enum.LedgerEntitySale,
		SaleID:     &header.ID,
		LineCount:  len(items),
		OccurredAt: s.now(),
	})

	return &TransactionResult{Sale: sale, Items: items}, nil
}

func (s *SaleService) prepareTransaction(req CreateTransactionRequest) (database.CreateSaleParams, []database.CreateSaleItemParams, error) {
	var header database.CreateSaleParams

	if len(req.Items) == 0 {
		return header, nil, ErrEmptyItems
	}

	channel := database.SalesChannel(req.SalesChannel)
	if !channel.Valid() {
		return header, nil, ErrInvalidSalesChannel
	}

	staffID := req.AuthStaffID
	if req.StaffResponsible != "" {
		id, err := uuid.Parse(req.StaffResponsible)
		if err != nil {
			return header, nil, ErrInvalidStaffID
		}
		staffID = id
	}
	if staffID == uuid.Nil {
		return header, nil, ErrMissingStaff
	}

	customerID, err := parseOptionalUUID(req.CustomerID, ErrInvalidCustomerID)
	if err != nil {
		return header, nil, err
	}

	at, err := s.parseTimestamp(req.DateAndTime)
	if err != nil {
		return header, nil, err
	}

	if hasNUL(req.CompanyBranch, req.CarNumber, req.ReceiptNumber) {
		return header, nil, ErrInvalidText
	}

	header = database.CreateSaleParams{
		ID:               uuid.New(),
		CustomerID:       customerID,
		DateAndTime:      at,
		TotalCents:       req.TotalCents,
		Discount:         req.Discount,
		TotalResolved:    req.TotalResolved,
		SalesChannel:     channel,
		StaffResponsible: staffID,
		CompanyBranch:    req.CompanyBranch,
		CarNumber:        req.CarNumber,
		ReceiptNumber:    req.ReceiptNumber,
	}

	lines := make([]database.CreateSaleItemParams, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return header, nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return header, nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidProductID)
		}
		if hasNUL(item.Note) {
			return header, nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidText)
		}
		lines = append(lines, database.CreateSaleItemParams{
			ID:            uuid.New(),
			SaleID:        pgtype.UUID{Bytes: header.ID, Valid: true},
			ProductID:     productID,
			CustomerID:    customerID,
			DateOfSale:    at,
			Quantity:      item.Quantity,
			Discount:      item.Discount,
			TotalCents:    item.TotalCents,
			TotalResolved: item.TotalResolved,
			Note:          optionalText(item.Note),
		})
	}

	return header, lines, nil
}

// CreateLineItem records a single line, optionally attached to an existing
// header. The line is snapshotted like any other.
func (s *SaleService) CreateLineItem(ctx context.Context, in LineItemInput) (database.SaleItemRow, error) {
	var row database.SaleItemRow

	saleID, err := parseOptionalUUID(in.SaleID, ErrInvalidSaleID)
	if err != nil {
		return row, err
	}
	productID, customerID, at, err := s.validateLine(in)
	if err != nil {
		return row, err
	}

	snap, err := ResolveSnapshot(ctx, s.store, productID)
	if err != nil {
		return row, err
	}

	item, err := s.store.CreateSaleItem(ctx, database.CreateSaleItemParams{
		ID:             uuid.New(),
		SaleID:         saleID,
		ProductID:      productID,
		CustomerID:     customerID,
		DateOfSale:     at,
		Quantity:       in.Quantity,
		Discount:       in.Discount,
		TotalCents:     in.TotalCents,
		TotalResolved:  in.TotalResolved,
		Note:           optionalText(in.Note),
		ProductName:    snap.ProductName,
		UnitPriceCents: snap.UnitPriceCents,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return row, ErrSaleNotFound
		}
		return row, fmt.Errorf("create sale item: %w", err)
	}

	row, err = s.store.GetSaleItem(ctx, item.ID)
	if err != nil {
		return row, fmt.Errorf("reload sale item: %w", err)
	}

	s.notifyItem(ctx, enum.LedgerActionCreated, item.ID, item.SaleID)
	return row, nil
}

// UpdateLineItem replaces a line's fields and takes a fresh snapshot of the
// (possibly different) product. The header is not recomputed.
func (s *SaleService) UpdateLineItem(ctx context.Context, id uuid.UUID, in LineItemInput) (database.SaleItemRow, error) {
	var row database.SaleItemRow

	productID, customerID, at, err := s.validateLine(in)
	if err != nil {
		return row, err
	}

	snap, err := ResolveSnapshot(ctx, s.store, productID)
	if err != nil {
		return row, err
	}

	n, err := s.store.UpdateSaleItem(ctx, database.UpdateSaleItemParams{
		ID:             id,
		ProductID:      productID,
		CustomerID:     customerID,
		DateOfSale:     at,
		Quantity:       in.Quantity,
		Discount:       in.Discount,
		TotalCents:     in.TotalCents,
		TotalResolved:  in.TotalResolved,
		Note:           optionalText(in.Note),
		ProductName:    snap.ProductName,
		UnitPriceCents: snap.UnitPriceCents,
	})
	if err != nil {
		return row, fmt.Errorf("update sale item: %w", err)
	}
	if n == 0 {
		return row, ErrSaleItemNotFound
	}

	row, err = s.store.GetSaleItem(ctx, id)
	if err != nil {
		return row, fmt.Errorf("reload sale item: %w", err)
	}

	s.notifyItem(ctx, enum.LedgerActionUpdated, id, row.SaleID)
	return row, nil
}

// DeleteTransaction removes a header together with all of its lines.
func (s *SaleService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.DeleteSale(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if n == 0 {
		return ErrSaleNotFound
	}

	s.notifier.Notify(ctx, events.LedgerEvent{
		Event:      enum.LedgerActionDeleted,
		Entity:     enum.LedgerEntitySale,
		SaleID:     &id,
		OccurredAt: s.now(),
	})
	return nil
}

// DeleteLineItem removes one line. Its header, sibling lines and the
// header's stored totals are left as they are.
func (s *SaleService) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.DeleteSaleItem(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	if n == 0 {
		return ErrSaleItemNotFound
	}

	s.notifyItem(ctx, enum.LedgerActionDeleted, id, pgtype.UUID{})
	return nil
}

func (s *SaleService) validateLine(in LineItemInput) (uuid.UUID, pgtype.UUID, pgtype.Timestamptz, error) {
	if in.Quantity <= 0 {
		return uuid.Nil, pgtype.UUID{}, pgtype.Timestamptz{}, ErrInvalidQuantity
	}
	productID, err := uuid.Parse(in.ProductID)
	if err != nil {
		return uuid.Nil, pgtype.UUID{}, pgtype.Timestamptz{}, ErrInvalidProductID
	}
	customerID, err := parseOptionalUUID(in.CustomerID, ErrInvalidCustomerID)
	if err != nil {
		return uuid.Nil, pgtype.UUID{}, pgtype.Timestamptz{}, err
	}
	at, err := s.parseTimestamp(in.DateOfSale)
	if err != nil {
		return uuid.Nil, pgtype.UUID{}, pgtype.Timestamptz{}, err
	}
	if hasNUL(in.Note) {
		return uuid.Nil, pgtype.UUID{}, pgtype.Timestamptz{}, ErrInvalidText
	}
	return productID, customerID, at, nil
}

func (s *SaleService) notifyItem(ctx context.Context, action string, itemID uuid.UUID, saleID pgtype.UUID) {
	e := events.LedgerEvent{
		Event:      action,
		Entity:     enum.LedgerEntitySaleItem,
		SaleItemID: &itemID,
		OccurredAt: s.now(),
	}
	if saleID.Valid {
		id := uuid.UUID(saleID.Bytes)
		e.SaleID = &id
	}
	s.notifier.Notify(ctx, e)
}

func (s *SaleService) parseTimestamp(v string) (pgtype.Timestamptz, error) {
	if v == "" {
		return pgtype.Timestamptz{Time: s.now(), Valid: true}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return pgtype.Timestamptz{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, v)
	}
	return pgtype.Timestamptz{Time: t, Valid: true}, nil
}

func parseOptionalUUID(v string, invalid error) (pgtype.UUID, error) {
	if v == "" {
		return pgtype.UUID{}, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return pgtype.UUID{}, invalid
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

// hasNUL reports whether any value holds a NUL byte, which PostgreSQL
// text columns reject.
func hasNUL(values ...string) bool {
	for _, v := range values {
		if strings.IndexByte(v, 0) >= 0 {
			return true
		}
	}
	return false
}

func optionalText(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}
