package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación de ShiftRepository sobre PostgreSQL (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de turnos. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create inserta un turno nuevo (abierto).
func (r *ShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	query := `
		INSERT INTO shifts (id, store_id, user_id, start_time, active, total_sales, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		shift.ID, shift.StoreID, shift.UserID, shift.StartTime, shift.Active, shift.TotalSales, shift.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// FindActive busca el turno activo de (userID, storeID). Devuelve nil sin
// error si no hay. Si el esquema no tiene la columna active devuelve
// domain.ErrSchemaMismatch para que el caller use FindOpen.
func (r *ShiftRepo) FindActive(ctx context.Context, userID, storeID string) (*entity.Shift, error) {
	query := `
		SELECT id, store_id, user_id, start_time, end_time, active, total_sales, created_at
		FROM shifts
		WHERE user_id = $1 AND store_id = $2 AND active = true
		ORDER BY start_time DESC
		LIMIT 1`
	shift, err := r.scanOne(ctx, query, userID, storeID)
	if err != nil && IsUndefinedColumn(err) {
		return nil, domain.ErrSchemaMismatch
	}
	return shift, err
}

// FindOpen busca un turno con end_time NULL para el usuario (fallback de
// esquemas sin columna active, por eso no la referencia). Devuelve nil sin
// error si no hay.
func (r *ShiftRepo) FindOpen(ctx context.Context, userID string) (*entity.Shift, error) {
	query := `
		SELECT id, store_id, user_id, start_time, end_time, total_sales, created_at
		FROM shifts
		WHERE user_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`
	var s entity.Shift
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.StoreID, &s.UserID, &s.StartTime, &s.EndTime, &s.TotalSales, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open shift: %w", err)
	}
	s.Active = s.EndTime == nil
	return &s, nil
}

// Close escribe end_time, active=false y el total final del turno.
func (r *ShiftRepo) Close(ctx context.Context, shiftID string, endTime time.Time, total decimal.Decimal) error {
	query := `
		UPDATE shifts
		SET end_time = $2, active = false, total_sales = $3
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, shiftID, endTime, total)
	if err != nil {
		return fmt.Errorf("close shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("close shift %s: no afectó filas", shiftID)
	}
	return nil
}

func (r *ShiftRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Shift, error) {
	var s entity.Shift
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.StoreID, &s.UserID, &s.StartTime, &s.EndTime, &s.Active, &s.TotalSales, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return &s, nil
}
