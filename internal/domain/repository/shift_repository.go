package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ShiftRepository define el puerto de persistencia de turnos.
// Los turnos nunca se borran: solo se insertan y se cierran.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	// FindActive busca el turno con Active=true para (userID, storeID).
	// Devuelve nil sin error si no hay ninguno.
	FindActive(ctx context.Context, userID, storeID string) (*entity.Shift, error)
	// FindOpen busca un turno con end_time NULL para el usuario. Es el
	// fallback cuando el esquema no tiene la columna active.
	FindOpen(ctx context.Context, userID string) (*entity.Shift, error)
	// Close escribe end_time, active=false y el total final del turno.
	Close(ctx context.Context, shiftID string, endTime time.Time, total decimal.Decimal) error
}
