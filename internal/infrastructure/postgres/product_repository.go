package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID devuelve un producto por id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := selectProducts + ` WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Category, &p.Price, &p.Quantity,
		&p.Description, &p.Brand, &p.Model, &p.Barcode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByStore devuelve los productos de una tienda.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string) ([]entity.Product, error) {
	query := selectProducts + ` WHERE store_id = $1 ORDER BY name`
	return r.list(ctx, query, storeID)
}

// ListAll devuelve todos los productos (vista del dueño).
func (r *ProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	query := selectProducts + ` ORDER BY name`
	return r.list(ctx, query)
}

// DecrementStock descuenta qty de forma condicional y atómica. Si la fila no
// tiene stock suficiente el update no afecta filas y se devuelve
// ErrInsufficientStock, lo que dentro de la transacción de venta fuerza el
// rollback completo. El stock nunca queda negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID string, qty int64) error {
	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`
	tag, err := r.q.Exec(ctx, query, productID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

const selectProducts = `
	SELECT id, store_id, name, category, price, quantity,
	       COALESCE(description, ''), brand, model, COALESCE(barcode, ''), created_at, updated_at
	FROM products`

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.Name, &p.Category, &p.Price, &p.Quantity,
			&p.Description, &p.Brand, &p.Model, &p.Barcode, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
