package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Visit es el marcador de una venta en curso o completada, con alcance de
// tienda. Se crea al iniciar el flujo de venta y se actualiza exactamente
// una vez cuando la venta se concreta.
// Invariante: SaleID == nil ⇔ SaleAmount == 0 y PaymentMethod == "".
type Visit struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	SellerID      string          `json:"seller_id"`
	Title         string          `json:"title"` // etiqueta secuencial, ej. "Visita #3"
	SaleAmount    decimal.Decimal `json:"sale_amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	SaleID        *string         `json:"sale_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Linked indica si la visita ya tiene una venta asociada.
func (v *Visit) Linked() bool { return v.SaleID != nil }

// LinkageValid verifica el invariante de enlace visita-venta.
func (v *Visit) LinkageValid() bool {
	if v.SaleID == nil {
		return v.SaleAmount.IsZero() && v.PaymentMethod == ""
	}
	return !v.SaleAmount.IsZero() && v.PaymentMethod != ""
}
