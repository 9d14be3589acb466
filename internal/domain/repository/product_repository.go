package repository

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ProductRepository define el puerto de lectura y descuento de stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]entity.Product, error)
	ListAll(ctx context.Context) ([]entity.Product, error)
	// DecrementStock descuenta qty de forma condicional y atómica:
	// UPDATE ... SET quantity = quantity - qty WHERE id = $1 AND quantity >= qty.
	// Devuelve ErrInsufficientStock si no afectó ninguna fila.
	DecrementStock(ctx context.Context, productID string, qty int64) error
}
