package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentTerminal = "terminal"
)

// ValidPaymentMethod valida el método de pago contra el enum cerrado.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentTerminal
}

// SaleItem es una línea de venta. Total = Price × Quantity.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// Sale representa una transacción completada. Es inmutable: se crea una vez
// y el núcleo nunca la actualiza ni la borra.
// Invariante: la suma de los totales de línea, neta del descuento aplicado
// antes del envío, es igual a TotalAmount.
type Sale struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	SellerID      string          `json:"seller_id"`
	ReceiptNumber string          `json:"receipt_number"` // único, solo para mostrar
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"` // cash | terminal
	Items         []SaleItem      `json:"items_data"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ItemsTotal suma los totales de línea (antes de descuento).
func (s *Sale) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}
