package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia de ventas.
// Las ventas son inmutables: no hay update ni delete en este puerto.
type SaleRepository interface {
	// Create inserta la venta. El ID lo asigna el caller antes de llamar,
	// igual que en el resto de las entidades.
	Create(ctx context.Context, sale *entity.Sale) error
	ListByStore(ctx context.Context, storeID string) ([]entity.Sale, error)
	ListAll(ctx context.Context) ([]entity.Sale, error)
	// SumInRange suma total_amount de las ventas de (storeID, sellerID) con
	// created_at dentro de [from, to]. Fuente de verdad del total del turno.
	SumInRange(ctx context.Context, storeID, sellerID string, from, to time.Time) (decimal.Decimal, error)
}
