package database

import (
	"time"

	"github.com/fastsales/api/internal/enum"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SalesChannel string

const (
	SalesChannelMobile SalesChannel = enum.SalesChannelMobile
	SalesChannelWeb    SalesChannel = enum.SalesChannelWeb
)

func (e SalesChannel) Valid() bool {
	switch e {
	case SalesChannelMobile, SalesChannelWeb:
		return true
	}
	return false
}

type ProductType string

const (
	ProductTypePhysicalGood ProductType = enum.ProductTypePhysicalGood
	ProductTypeService      ProductType = enum.ProductTypeService
)

func (e ProductType) Valid() bool {
	switch e {
	case ProductTypePhysicalGood, ProductTypeService:
		return true
	}
	return false
}

type Customer struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	MiddleName   pgtype.Text `json:"middle_name"`
	MobileNumber string      `json:"mobile_number"`
	Email        string      `json:"email"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Product struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PriceCents  int64       `json:"price_cents"`
	ProductType ProductType `json:"product_type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Staff struct {
	ID           uuid.UUID `json:"id"`
	StaffCode    string    `json:"staff_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MobileNumber string    `json:"mobile_number"`
	PhotoLink    string    `json:"photo_link"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sale is a transaction header row as stored.
type Sale struct {
	ID               uuid.UUID    `json:"id"`
	CustomerID       pgtype.UUID  `json:"customer_id"`
	DateAndTime      time.Time    `json:"date_and_time"`
	TotalCents       int64        `json:"total_cents"`
	Discount         int64        `json:"discount"`
	TotalResolved    int64        `json:"total_resolved"`
	SalesChannel     SalesChannel `json:"sales_channel"`
	StaffResponsible uuid.UUID    `json:"staff_responsible"`
	CompanyBranch    string       `json:"company_branch"`
	CarNumber        string       `json:"car_number"`
	ReceiptNumber    string       `json:"receipt_number"`
}

// SaleRow is a header joined with the customer's display name.
type SaleRow struct {
	Sale
	CustomerName pgtype.Text `json:"customer_name"`
}

// SaleItem is a line row as stored; ProductName and UnitPriceCents are the
// snapshot taken at write time and are NULL when the product was missing.
type SaleItem struct {
	ID             uuid.UUID   `json:"id"`
	SaleID         pgtype.UUID `json:"sale_id"`
	ProductID      uuid.UUID   `json:"product_id"`
	CustomerID     pgtype.UUID `json:"customer_id"`
	DateOfSale     time.Time   `json:"date_of_sale"`
	Quantity       int64       `json:"quantity"`
	Discount       int64       `json:"discount"`
	TotalCents     int64       `json:"total_cents"`
	TotalResolved  int64       `json:"total_resolved"`
	Note           pgtype.Text `json:"note"`
	ProductName    pgtype.Text `json:"product_name"`
	UnitPriceCents pgtype.Int8 `json:"unit_price_cents"`
}

// SaleItemRow is a line as read: ProductName and UnitPriceCents fall back to
// the live catalog when the snapshot is NULL.
type SaleItemRow SaleItem
