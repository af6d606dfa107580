package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, description, price_cents, product_type, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var i Product
	var productType string
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.PriceCents,
		&productType,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return i, err
	}
	i.ProductType = ProductType(productType)
	if !i.ProductType.Valid() {
		return i, &MappingError{Column: "product_type", Value: productType}
	}
	return i, nil
}

const getProduct = `-- name: GetProduct :one
SELECT ` + productColumns + `
FROM products
WHERE id = $1`

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	return scanProduct(row)
}

const listProducts = `-- name: ListProducts :many
SELECT ` + productColumns + `
FROM products
WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
ORDER BY name
LIMIT $2 OFFSET $3`

type ListProductsParams struct {
	Search pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts, arg.Search, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProduct)
}

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, description, price_cents, product_type)
VALUES ($1, $2, $3, $4)
RETURNING ` + productColumns

type CreateProductParams struct {
	Name        string
	Description string
	PriceCents  int64
	ProductType ProductType
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.Name,
		arg.Description,
		arg.PriceCents,
		string(arg.ProductType),
	)
	return scanProduct(row)
}

const updateProduct = `-- name: UpdateProduct :one
UPDATE products SET
    name = $2,
    description = $3,
    price_cents = $4,
    product_type = $5,
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	ProductType ProductType
}

// UpdateProduct edits the live catalog. Lines already recorded keep their
// snapshot and are not affected.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.PriceCents,
		string(arg.ProductType),
	)
	return scanProduct(row)
}

const customerColumns = `id, first_name, last_name, middle_name, mobile_number, email, created_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.MiddleName,
		&i.MobileNumber,
		&i.Email,
		&i.CreatedAt,
	)
	return i, err
}

const getCustomer = `-- name: GetCustomer :one
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1`

func (q *Queries) GetCustomer(ctx context.Context, id uuid.UUID) (Customer, error) {
	row := q.db.QueryRow(ctx, getCustomer, id)
	return scanCustomer(row)
}

const listCustomers = `-- name: ListCustomers :many
SELECT ` + customerColumns + `
FROM customers
WHERE ($1::text IS NULL
       OR first_name ILIKE '%' || $1 || '%'
       OR last_name ILIKE '%' || $1 || '%'
       OR mobile_number ILIKE '%' || $1 || '%')
ORDER BY last_name, first_name
LIMIT $2 OFFSET $3`

type ListCustomersParams struct {
	Search pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListCustomers(ctx context.Context, arg ListCustomersParams) ([]Customer, error) {
	rows, err := q.db.Query(ctx, listCustomers, arg.Search, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCustomer)
}

const createCustomer = `-- name: CreateCustomer :one
INSERT INTO customers (first_name, last_name, middle_name, mobile_number, email)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + customerColumns

type CreateCustomerParams struct {
	FirstName    string
	LastName     string
	MiddleName   pgtype.Text
	MobileNumber string
	Email        string
}

func (q *Queries) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error) {
	row := q.db.QueryRow(ctx, createCustomer,
		arg.FirstName,
		arg.LastName,
		arg.MiddleName,
		arg.MobileNumber,
		arg.Email,
	)
	return scanCustomer(row)
}

const staffColumns = `id, staff_code, first_name, last_name, mobile_number, photo_link, username, password_hash, created_at`

func scanStaff(row pgx.Row) (Staff, error) {
	var i Staff
	err := row.Scan(
		&i.ID,
		&i.StaffCode,
		&i.FirstName,
		&i.LastName,
		&i.MobileNumber,
		&i.PhotoLink,
		&i.Username,
		&i.PasswordHash,
		&i.CreatedAt,
	)
	return i, err
}

const getStaff = `-- name: GetStaff :one
SELECT ` + staffColumns + `
FROM staff
WHERE id = $1`

func (q *Queries) GetStaff(ctx context.Context, id uuid.UUID) (Staff, error) {
	row := q.db.QueryRow(ctx, getStaff, id)
	return scanStaff(row)
}

const upsertStaff = `-- name: UpsertStaff :one
INSERT INTO staff (staff_code, first_name, last_name, mobile_number, username, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
RETURNING ` + staffColumns

type UpsertStaffParams struct {
	StaffCode    string
	FirstName    string
	LastName     string
	MobileNumber string
	Username     string
	PasswordHash string
}

func (q *Queries) UpsertStaff(ctx context.Context, arg UpsertStaffParams) (Staff, error) {
	row := q.db.QueryRow(ctx, upsertStaff,
		arg.StaffCode,
		arg.FirstName,
		arg.LastName,
		arg.MobileNumber,
		arg.Username,
		arg.PasswordHash,
	)
	return scanStaff(row)
}
