// Package shift implementa el ciclo de vida del turno: apertura, cierre,
// restauración y cierre automático por medianoche. La máquina de estados es
// NoShift → Activo → NoShift; no existe estado de pausa.
package shift

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/diagnostics"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// ShiftCache es el snapshot de recuperación del turno en el caché local.
type ShiftCache interface {
	SaveShift(ctx context.Context, userID string, shift *entity.Shift)
	Shift(ctx context.Context, userID string) *entity.Shift
	ClearShift(ctx context.Context, userID string)
}

// UseCase gestiona turnos garantizando el invariante de turno activo único
// por (usuario, tienda).
type UseCase struct {
	shifts  repository.ShiftRepository
	visits  repository.VisitRepository
	sales   repository.SaleRepository
	monitor *connectivity.Monitor
	cache   ShiftCache
	diag    *diagnostics.Reporter
	log     *logger.Logger

	now func() time.Time
}

// NewUseCase construye el caso de uso de turnos.
func NewUseCase(
	shifts repository.ShiftRepository,
	visits repository.VisitRepository,
	sales repository.SaleRepository,
	monitor *connectivity.Monitor,
	cache ShiftCache,
	diag *diagnostics.Reporter,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		shifts:  shifts,
		visits:  visits,
		sales:   sales,
		monitor: monitor,
		cache:   cache,
		diag:    diag,
		log:     log,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Start abre un turno para la sesión. Precondiciones: online y sin turno en
// memoria. Purga las visitas de la tienda (un turno nuevo empieza con el
// tablero limpio) y consulta si ya hay un turno activo en la base: si lo
// hay lo adopta en lugar de crear una fila nueva (defensa contra doble
// click o estado viejo del cliente).
func (uc *UseCase) Start(ctx context.Context, s *session.Session) (*entity.Shift, error) {
	if !uc.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	if s.Shift() != nil {
		return nil, domain.ErrShiftAlreadyOpen
	}

	userID := s.User().ID
	storeID := s.StoreID()

	if _, err := uc.visits.DeleteByStore(ctx, storeID); err != nil {
		uc.log.Error().Err(err).Str("store_id", storeID).Msg("abrir turno: purgar visitas")
		uc.report("start_shift.purge_visits", userID, storeID, err)
		return nil, domain.ErrGateway
	}
	s.ClearVisits()

	existing, err := uc.findActive(ctx, userID, storeID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("abrir turno: consultar turno existente")
		uc.report("start_shift.find_active", userID, storeID, err)
		return nil, domain.ErrGateway
	}
	if existing != nil {
		// Ya había un turno abierto en la base: se adopta, no se duplica.
		uc.log.Warn().Str("shift_id", existing.ID).Msg("abrir turno: adoptando turno ya activo")
		uc.adopt(ctx, s, existing)
		return existing, nil
	}

	now := uc.now()
	shift := &entity.Shift{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		UserID:     userID,
		StartTime:  now,
		Active:     true,
		TotalSales: decimal.Zero,
		CreatedAt:  now,
	}
	if err := uc.shifts.Create(ctx, shift); err != nil {
		// Sin transición parcial: la sesión queda en NoShift y la operación
		// es reintentable por el caller.
		uc.log.Error().Err(err).Str("user_id", userID).Msg("abrir turno: insertar")
		uc.report("start_shift.insert", userID, storeID, err)
		return nil, domain.ErrGateway
	}

	uc.adopt(ctx, s, shift)
	uc.log.Info().Str("shift_id", shift.ID).Str("store_id", storeID).Msg("turno abierto")
	return shift, nil
}

// End cierra el turno de la sesión. El total final se recalcula desde las
// ventas persistidas en [start, now] para (tienda, vendedor): nunca se usa
// el acumulado en memoria, para no arrastrar actualizaciones perdidas.
func (uc *UseCase) End(ctx context.Context, s *session.Session) error {
	if !uc.monitor.IsOnline() {
		return domain.ErrOffline
	}
	shift := s.Shift()
	if shift == nil {
		return domain.ErrNoActiveShift
	}

	now := uc.now()
	total, err := uc.sales.SumInRange(ctx, shift.StoreID, shift.UserID, shift.StartTime, now)
	if err != nil {
		uc.log.Error().Err(err).Str("shift_id", shift.ID).Msg("cerrar turno: sumar ventas")
		uc.report("end_shift.sum_sales", shift.UserID, shift.StoreID, err)
		return domain.ErrGateway
	}

	if err := uc.shifts.Close(ctx, shift.ID, now, total); err != nil {
		uc.log.Error().Err(err).Str("shift_id", shift.ID).Msg("cerrar turno: escribir cierre")
		uc.report("end_shift.close", shift.UserID, shift.StoreID, err)
		return domain.ErrGateway
	}

	// El turno ya quedó cerrado; la purga de visitas es best-effort.
	if _, err := uc.visits.DeleteByStore(ctx, shift.StoreID); err != nil {
		uc.log.Warn().Err(err).Str("store_id", shift.StoreID).Msg("cerrar turno: purgar visitas")
	}

	s.CancelAutoClose()
	s.SetShift(nil)
	s.SetPendingAutoClose(false)
	s.ClearVisits()
	uc.cache.ClearShift(ctx, shift.UserID)

	uc.log.Info().
		Str("shift_id", shift.ID).
		Str("total", total.String()).
		Msg("turno cerrado")
	return nil
}

// Restore recupera el turno activo al autenticarse o reiniciar: primero por
// la bandera active, con fallback por end_time NULL si el esquema no tiene
// la columna, y con fallback al snapshot local si la red falla. Si ninguna
// fuente tiene candidato, la sesión queda en NoShift.
func (uc *UseCase) Restore(ctx context.Context, s *session.Session) {
	userID := s.User().ID
	storeID := s.StoreID()

	shift, err := uc.findActive(ctx, userID, storeID)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("restaurar turno: consulta falló, usando snapshot local")
		shift = uc.cache.Shift(ctx, userID)
	}
	if shift == nil {
		return
	}
	uc.adopt(ctx, s, shift)
	uc.log.Info().Str("shift_id", shift.ID).Msg("turno restaurado")
}

// findActive consulta el turno activo con el fallback de esquema legado.
func (uc *UseCase) findActive(ctx context.Context, userID, storeID string) (*entity.Shift, error) {
	shift, err := uc.shifts.FindActive(ctx, userID, storeID)
	if errors.Is(err, domain.ErrSchemaMismatch) {
		return uc.shifts.FindOpen(ctx, userID)
	}
	return shift, err
}

// adopt fija el turno en la sesión, guarda el snapshot de recuperación y
// programa el cierre por medianoche.
func (uc *UseCase) adopt(ctx context.Context, s *session.Session, shift *entity.Shift) {
	s.SetShift(shift)
	uc.cache.SaveShift(ctx, shift.UserID, shift)
	uc.ScheduleAutoClose(s)
}

func (uc *UseCase) report(op, userID, storeID string, err error) {
	if uc.diag == nil {
		return
	}
	uc.diag.Report(diagnostics.Event{
		Operation: op,
		Message:   "gateway error",
		UserID:    userID,
		StoreID:   storeID,
		Detail:    err.Error(),
	})
}
