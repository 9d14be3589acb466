package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// VisitRepository define el puerto de persistencia de visitas.
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	ListByStore(ctx context.Context, storeID string) ([]entity.Visit, error)
	ListAll(ctx context.Context) ([]entity.Visit, error)
	CountByStore(ctx context.Context, storeID string) (int64, error)
	// Link enlaza la visita con su venta: sale_id, sale_amount y método de pago.
	Link(ctx context.Context, visitID, saleID string, amount decimal.Decimal, paymentMethod string) error
	// DeleteByStore purga todas las visitas de una tienda (inicio/cierre de turno).
	DeleteByStore(ctx context.Context, storeID string) (int64, error)
}
