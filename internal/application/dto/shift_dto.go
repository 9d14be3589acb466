package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ShiftResponse salida de un turno.
type ShiftResponse struct {
	ID               string          `json:"id"`
	StoreID          string          `json:"store_id"`
	UserID           string          `json:"user_id"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          *time.Time      `json:"end_time,omitempty"`
	Active           bool            `json:"active"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	PendingAutoClose bool            `json:"pending_auto_close"`
}

// ToShiftResponse mapea la entidad a la respuesta pública.
func ToShiftResponse(s *entity.Shift, pendingAutoClose bool) ShiftResponse {
	return ShiftResponse{
		ID:               s.ID,
		StoreID:          s.StoreID,
		UserID:           s.UserID,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Active:           s.Active,
		TotalSales:       s.TotalSales,
		PendingAutoClose: pendingAutoClose,
	}
}
