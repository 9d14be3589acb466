package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implementación de VisitRepository sobre PostgreSQL (usable con pool o tx).
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador de visitas. Pasar pool o tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

// Create inserta una visita recién abierta (sin venta enlazada).
func (r *VisitRepo) Create(ctx context.Context, visit *entity.Visit) error {
	query := `
		INSERT INTO visits (id, store_id, seller_id, title, sale_amount, payment_method, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(ctx, query,
		visit.ID, visit.StoreID, visit.SellerID, visit.Title,
		visit.SaleAmount, visit.PaymentMethod, visit.SaleID, visit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// ListByStore devuelve las visitas de una tienda ordenadas por creación.
func (r *VisitRepo) ListByStore(ctx context.Context, storeID string) ([]entity.Visit, error) {
	query := selectVisits + ` WHERE store_id = $1 ORDER BY created_at`
	return r.list(ctx, query, storeID)
}

// ListAll devuelve todas las visitas (vista del dueño).
func (r *VisitRepo) ListAll(ctx context.Context) ([]entity.Visit, error) {
	query := selectVisits + ` ORDER BY created_at`
	return r.list(ctx, query)
}

// CountByStore cuenta las visitas de la tienda (para la etiqueta secuencial).
func (r *VisitRepo) CountByStore(ctx context.Context, storeID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM visits WHERE store_id = $1`, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}

// Link enlaza la visita con su venta: sale_id, sale_amount y método de pago.
func (r *VisitRepo) Link(ctx context.Context, visitID, saleID string, amount decimal.Decimal, paymentMethod string) error {
	query := `
		UPDATE visits
		SET sale_id = $2, sale_amount = $3, payment_method = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, visitID, saleID, amount, paymentMethod)
	if err != nil {
		return fmt.Errorf("link visit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("link visit %s: no afectó filas", visitID)
	}
	return nil
}

// DeleteByStore purga todas las visitas de la tienda. Devuelve filas afectadas.
func (r *VisitRepo) DeleteByStore(ctx context.Context, storeID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM visits WHERE store_id = $1`, storeID)
	if err != nil {
		return 0, fmt.Errorf("delete visits: %w", err)
	}
	return tag.RowsAffected(), nil
}

const selectVisits = `
	SELECT id, store_id, seller_id, title, sale_amount, COALESCE(payment_method, ''), sale_id, created_at
	FROM visits`

func (r *VisitRepo) list(ctx context.Context, query string, args ...any) ([]entity.Visit, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []entity.Visit
	for rows.Next() {
		var v entity.Visit
		if err := rows.Scan(
			&v.ID, &v.StoreID, &v.SellerID, &v.Title,
			&v.SaleAmount, &v.PaymentMethod, &v.SaleID, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
