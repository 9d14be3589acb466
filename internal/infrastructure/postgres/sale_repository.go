package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Los ítems viajan en items_data (JSONB), como en el esquema original de ventas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta con el id ya asignado por el caller, igual que
// el resto de los adaptadores. Un número de recibo repetido es el reenvío
// del mismo ticket y se devuelve como ErrDuplicateReceipt.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO sales (id, store_id, seller_id, receipt_number, total_amount, discount, payment_method, items_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		sale.ID, sale.StoreID, sale.SellerID, sale.ReceiptNumber,
		sale.TotalAmount, sale.Discount, sale.PaymentMethod, items, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReceipt
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByStore devuelve las ventas de una tienda, más antiguas primero.
func (r *SaleRepo) ListByStore(ctx context.Context, storeID string) ([]entity.Sale, error) {
	query := selectSales + ` WHERE store_id = $1 ORDER BY created_at`
	return r.list(ctx, query, storeID)
}

// ListAll devuelve todas las ventas (vista del dueño).
func (r *SaleRepo) ListAll(ctx context.Context) ([]entity.Sale, error) {
	query := selectSales + ` ORDER BY created_at`
	return r.list(ctx, query)
}

// SumInRange suma total_amount de las ventas de (storeID, sellerID) dentro de
// [from, to]. Es la fuente de verdad del total del turno.
func (r *SaleRepo) SumInRange(ctx context.Context, storeID, sellerID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE store_id = $1 AND seller_id = $2 AND created_at >= $3 AND created_at <= $4`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, storeID, sellerID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

const selectSales = `
	SELECT id, store_id, seller_id, receipt_number, total_amount, discount, payment_method, items_data, created_at
	FROM sales`

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []entity.Sale
	for rows.Next() {
		var s entity.Sale
		var items []byte
		if err := rows.Scan(
			&s.ID, &s.StoreID, &s.SellerID, &s.ReceiptNumber,
			&s.TotalAmount, &s.Discount, &s.PaymentMethod, &items, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &s.Items); err != nil {
				return nil, fmt.Errorf("unmarshal items: %w", err)
			}
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
