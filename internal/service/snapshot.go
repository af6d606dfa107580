package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastsales/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProductReader reads a live catalog row.
type ProductReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
}

// Snapshot is the product name and unit price copied onto a line when it is
// written. Both fields are NULL when the product does not exist.
type Snapshot struct {
	ProductName    pgtype.Text
	UnitPriceCents pgtype.Int8
}

// ResolveSnapshot reads the product as it is right now. A missing product is
// not an error: the line is still written, with a NULL snapshot.
func ResolveSnapshot(ctx context.Context, store ProductReader, productID uuid.UUID) (Snapshot, error) {
	product, err := store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	return Snapshot{
		ProductName:    pgtype.Text{String: product.Name, Valid: true},
		UnitPriceCents: pgtype.Int8{Int64: product.PriceCents, Valid: true},
	}, nil
}
