package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift representa un turno de trabajo de un vendedor en una tienda.
// Invariante: como máximo un turno con Active=true por (UserID, StoreID);
// un usuario no puede tener turnos activos en dos tiendas a la vez.
// TotalSales se calcula solo al cerrar, sumando las ventas del rango
// [StartTime, EndTime] desde la fuente de verdad (nunca se acumula).
type Shift struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"store_id"`
	UserID     string          `json:"user_id"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    *time.Time      `json:"end_time,omitempty"` // nil mientras el turno está abierto
	Active     bool            `json:"active"`
	TotalSales decimal.Decimal `json:"total_sales"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IsOpen indica si el turno sigue abierto.
func (s *Shift) IsOpen() bool { return s.Active && s.EndTime == nil }

// AutoCloseBoundary devuelve la medianoche local del día siguiente al inicio
// del turno: ningún turno debe seguir activo pasada esa frontera.
func (s *Shift) AutoCloseBoundary() time.Time {
	start := s.StartTime.Local()
	return time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, start.Location())
}
