package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// SaleItemRequest línea de venta en la petición de cobro.
type SaleItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	Total       decimal.Decimal `json:"total" validate:"required"`
}

// CompleteSaleRequest entrada para concretar una venta sobre una visita.
type CompleteSaleRequest struct {
	VisitID       string            `json:"visit_id" validate:"required"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
	TotalAmount   decimal.Decimal   `json:"total_amount" validate:"required"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash terminal"`
}

// CompleteSaleResponse salida tras concretar la venta.
type CompleteSaleResponse struct {
	SaleID        string `json:"sale_id"`
	ReceiptNumber string `json:"receipt_number"`
	PaymentMethod string `json:"payment_method"`
}

// VisitResponse salida de una visita del tablero.
type VisitResponse struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	SellerID      string          `json:"seller_id"`
	Title         string          `json:"title"`
	SaleAmount    decimal.Decimal `json:"sale_amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	SaleID        *string         `json:"sale_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToVisitResponse mapea la entidad a la respuesta pública.
func ToVisitResponse(v *entity.Visit) VisitResponse {
	return VisitResponse{
		ID:            v.ID,
		StoreID:       v.StoreID,
		SellerID:      v.SellerID,
		Title:         v.Title,
		SaleAmount:    v.SaleAmount,
		PaymentMethod: v.PaymentMethod,
		SaleID:        v.SaleID,
		CreatedAt:     v.CreatedAt,
	}
}

// SaleResponse salida de una venta completada.
type SaleResponse struct {
	ID            string            `json:"id"`
	StoreID       string            `json:"store_id"`
	SellerID      string            `json:"seller_id"`
	ReceiptNumber string            `json:"receipt_number"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method"`
	Items         []entity.SaleItem `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToSaleResponse mapea la entidad a la respuesta pública.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		StoreID:       s.StoreID,
		SellerID:      s.SellerID,
		ReceiptNumber: s.ReceiptNumber,
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		PaymentMethod: s.PaymentMethod,
		Items:         s.Items,
		CreatedAt:     s.CreatedAt,
	}
}
