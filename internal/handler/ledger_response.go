package handler

import (
	"time"

	"github.com/fastsales/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type saleItemResponse struct {
	ID                   uuid.UUID  `json:"id"`
	SaleID               *uuid.UUID `json:"sale_id"`
	ProductID            uuid.UUID  `json:"product_id"`
	CustomerID           *uuid.UUID `json:"customer_id"`
	DateOfSale           time.Time  `json:"date_of_sale"`
	Quantity             int64      `json:"quantity"`
	Discount             int64      `json:"discount"`
	TotalCents           int64      `json:"total_cents"`
	TotalResolved        int64      `json:"total_resolved"`
	TotalResolvedDisplay string     `json:"total_resolved_display"`
	Note                 *string    `json:"note"`
	ProductName          *string    `json:"product_name"`
	UnitPriceCents       *int64     `json:"unit_price_cents"`
}

type saleResponse struct {
	ID                   uuid.UUID  `json:"id"`
	CustomerID           *uuid.UUID `json:"customer_id"`
	CustomerName         *string    `json:"customer_name"`
	DateAndTime          time.Time  `json:"date_and_time"`
	TotalCents           int64      `json:"total_cents"`
	Discount             int64      `json:"discount"`
	TotalResolved        int64      `json:"total_resolved"`
	TotalResolvedDisplay string     `json:"total_resolved_display"`
	SalesChannel         string     `json:"sales_channel"`
	StaffResponsible     uuid.UUID  `json:"staff_responsible"`
	CompanyBranch        string     `json:"company_branch"`
	CarNumber            string     `json:"car_number"`
	ReceiptNumber        string     `json:"receipt_number"`
}

type saleDetailResponse struct {
	saleResponse
	SaleItems []saleItemResponse `json:"sale_items"`
}

func optUUID(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}

func optString(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func optInt64(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func toSaleItemResponse(i database.SaleItemRow) saleItemResponse {
	return saleItemResponse{
		ID:                   i.ID,
		SaleID:               optUUID(i.SaleID),
		ProductID:            i.ProductID,
		CustomerID:           optUUID(i.CustomerID),
		DateOfSale:           i.DateOfSale,
		Quantity:             i.Quantity,
		Discount:             i.Discount,
		TotalCents:           i.TotalCents,
		TotalResolved:        i.TotalResolved,
		TotalResolvedDisplay: formatCents(i.TotalResolved),
		Note:                 optString(i.Note),
		ProductName:          optString(i.ProductName),
		UnitPriceCents:       optInt64(i.UnitPriceCents),
	}
}

func toSaleItemResponses(items []database.SaleItemRow) []saleItemResponse {
	resp := make([]saleItemResponse, len(items))
	for i, item := range items {
		resp[i] = toSaleItemResponse(item)
	}
	return resp
}

func toSaleResponse(s database.SaleRow) saleResponse {
	return saleResponse{
		ID:                   s.ID,
		CustomerID:           optUUID(s.CustomerID),
		CustomerName:         optString(s.CustomerName),
		DateAndTime:          s.DateAndTime,
		TotalCents:           s.TotalCents,
		Discount:             s.Discount,
		TotalResolved:        s.TotalResolved,
		TotalResolvedDisplay: formatCents(s.TotalResolved),
		SalesChannel:         string(s.SalesChannel),
		StaffResponsible:     s.StaffResponsible,
		CompanyBranch:        s.CompanyBranch,
		CarNumber:            s.CarNumber,
		ReceiptNumber:        s.ReceiptNumber,
	}
}

func toSaleResponses(sales []database.SaleRow) []saleResponse {
	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toSaleResponse(s)
	}
	return resp
}

func toSaleDetailResponse(s database.SaleRow, items []database.SaleItemRow) saleDetailResponse {
	return saleDetailResponse{
		saleResponse: toSaleResponse(s),
		SaleItems:    toSaleItemResponses(items),
	}
}
