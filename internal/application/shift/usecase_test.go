package shift_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
	"github.com/tu-usuario/tienda-pos/internal/application/shift"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts map[string]*entity.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]*entity.Shift)}
}

func (r *fakeShiftRepo) Create(_ context.Context, s *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.shifts[s.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) FindActive(_ context.Context, userID, storeID string) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.UserID == userID && s.StoreID == storeID && s.Active {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) FindOpen(_ context.Context, userID string) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.UserID == userID && s.EndTime == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) Close(_ context.Context, shiftID string, endTime time.Time, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[shiftID]
	if !ok {
		return domain.ErrNotFound
	}
	end := endTime
	s.EndTime = &end
	s.Active = false
	s.TotalSales = total
	return nil
}

type fakeVisitRepo struct {
	mu     sync.Mutex
	visits []entity.Visit
	purged int
}

func (r *fakeVisitRepo) Create(_ context.Context, v *entity.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, *v)
	return nil
}

func (r *fakeVisitRepo) ListByStore(_ context.Context, storeID string) ([]entity.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Visit
	for _, v := range r.visits {
		if v.StoreID == storeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) ListAll(_ context.Context) ([]entity.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Visit(nil), r.visits...), nil
}

func (r *fakeVisitRepo) CountByStore(_ context.Context, storeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.visits {
		if v.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

func (r *fakeVisitRepo) Link(_ context.Context, visitID, saleID string, amount decimal.Decimal, paymentMethod string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.visits {
		if r.visits[i].ID == visitID {
			id := saleID
			r.visits[i].SaleID = &id
			r.visits[i].SaleAmount = amount
			r.visits[i].PaymentMethod = paymentMethod
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeVisitRepo) DeleteByStore(_ context.Context, storeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []entity.Visit
	var removed int64
	for _, v := range r.visits {
		if v.StoreID == storeID {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	r.visits = kept
	r.purged++
	return removed, nil
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales []entity.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	if cp.ID == "" {
		cp.ID = cp.ReceiptNumber
	}
	r.sales = append(r.sales, cp)
	return nil
}

func (r *fakeSaleRepo) ListByStore(_ context.Context, storeID string) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if s.StoreID == storeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListAll(_ context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Sale(nil), r.sales...), nil
}

func (r *fakeSaleRepo) SumInRange(_ context.Context, storeID, sellerID string, from, to time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, s := range r.sales {
		if s.StoreID != storeID || s.SellerID != sellerID {
			continue
		}
		if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
			continue
		}
		total = total.Add(s.TotalAmount)
	}
	return total, nil
}

type fakeShiftCache struct {
	mu     sync.Mutex
	shifts map[string]*entity.Shift
}

func newFakeShiftCache() *fakeShiftCache {
	return &fakeShiftCache{shifts: make(map[string]*entity.Shift)}
}

func (c *fakeShiftCache) SaveShift(_ context.Context, userID string, s *entity.Shift) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shifts[userID] = s
}

func (c *fakeShiftCache) Shift(_ context.Context, userID string) *entity.Shift {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shifts[userID]
}

func (c *fakeShiftCache) ClearShift(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.shifts, userID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	uc      *shift.UseCase
	shifts  *fakeShiftRepo
	visits  *fakeVisitRepo
	sales   *fakeSaleRepo
	cache   *fakeShiftCache
	monitor *connectivity.Monitor
	sess    *session.Session
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		shifts:  newFakeShiftRepo(),
		visits:  &fakeVisitRepo{},
		sales:   &fakeSaleRepo{},
		cache:   newFakeShiftCache(),
		monitor: connectivity.NewMonitor(logger.Nop()),
		now:     time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
	}
	h.uc = shift.NewUseCase(h.shifts, h.visits, h.sales, h.monitor, h.cache, nil, logger.Nop()).
		WithClock(func() time.Time { return h.now })
	h.sess = session.New(
		&entity.User{ID: "u1", StoreID: "store-1", Role: entity.RoleSeller},
		&entity.Store{ID: "store-1", Name: "Centro"},
	)
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Start / End
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_AbreTurnoYPurgaVisitas(t *testing.T) {
	h := newHarness(t)
	h.visits.visits = []entity.Visit{{ID: "vieja", StoreID: "store-1"}}
	h.sess.SetVisits([]entity.Visit{{ID: "vieja", StoreID: "store-1"}})

	sh, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)
	require.NotNil(t, sh)

	assert.True(t, sh.Active)
	assert.Equal(t, "u1", sh.UserID)
	assert.Equal(t, "store-1", sh.StoreID)
	assert.Empty(t, h.sess.Visits(), "el turno nuevo empieza con el tablero limpio")

	remaining, _ := h.visits.CountByStore(context.Background(), "store-1")
	assert.Zero(t, remaining, "las visitas persistidas de la tienda se purgan")
	assert.NotNil(t, h.cache.Shift(context.Background(), "u1"), "debe guardarse el snapshot de recuperación")
	h.sess.Close()
}

func TestStart_ConTurnoEnMemoria_Rechaza(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)

	_, err = h.uc.Start(context.Background(), h.sess)
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
	h.sess.Close()
}

func TestStart_Offline_Rechaza(t *testing.T) {
	h := newHarness(t)
	h.monitor.Set(false)

	_, err := h.uc.Start(context.Background(), h.sess)
	assert.ErrorIs(t, err, domain.ErrOffline)
	assert.Nil(t, h.sess.Shift(), "la sesión queda en NoShift")
}

func TestStart_AdoptaTurnoActivoExistente(t *testing.T) {
	// Turno abierto por una sesión anterior que el cliente perdió: abrir de
	// nuevo debe adoptarlo, no duplicar la fila.
	h := newHarness(t)
	existing := &entity.Shift{
		ID:        "shift-previo",
		StoreID:   "store-1",
		UserID:    "u1",
		StartTime: h.now.Add(-2 * time.Hour),
		Active:    true,
	}
	require.NoError(t, h.shifts.Create(context.Background(), existing))

	sh, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)
	assert.Equal(t, "shift-previo", sh.ID)

	h.shifts.mu.Lock()
	assert.Len(t, h.shifts.shifts, 1, "no debe crearse una segunda fila")
	h.shifts.mu.Unlock()
	h.sess.Close()
}

func TestEnd_RecalculaElTotalDesdeLasVentas(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)
	shiftID := h.sess.Shift().ID

	// Ventas dentro del turno más una vieja que no debe contar.
	h.sales.sales = []entity.Sale{
		{ID: "s1", StoreID: "store-1", SellerID: "u1", TotalAmount: decimal.RequireFromString("300"), CreatedAt: h.now.Add(30 * time.Minute)},
		{ID: "s2", StoreID: "store-1", SellerID: "u1", TotalAmount: decimal.RequireFromString("200"), CreatedAt: h.now.Add(time.Hour)},
		{ID: "vieja", StoreID: "store-1", SellerID: "u1", TotalAmount: decimal.RequireFromString("999"), CreatedAt: h.now.Add(-time.Hour)},
	}
	h.now = h.now.Add(2 * time.Hour)

	require.NoError(t, h.uc.End(context.Background(), h.sess))

	closed := h.shifts.shifts[shiftID]
	require.NotNil(t, closed.EndTime)
	assert.False(t, closed.Active)
	assert.True(t, closed.TotalSales.Equal(decimal.RequireFromString("500")),
		"el total se recalcula desde las ventas persistidas del rango")

	assert.Nil(t, h.sess.Shift())
	assert.False(t, h.sess.PendingAutoClose())
	assert.Nil(t, h.cache.Shift(context.Background(), "u1"), "el snapshot debe limpiarse al cerrar")
}

func TestEnd_SinTurno_Rechaza(t *testing.T) {
	h := newHarness(t)
	err := h.uc.End(context.Background(), h.sess)
	assert.ErrorIs(t, err, domain.ErrNoActiveShift)
}

func TestEnd_Offline_Rechaza(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)

	h.monitor.Set(false)
	err = h.uc.End(context.Background(), h.sess)
	assert.ErrorIs(t, err, domain.ErrOffline)
	assert.NotNil(t, h.sess.Shift(), "el turno sigue abierto si el cierre no llegó a la base")
	h.sess.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Restore
// ──────────────────────────────────────────────────────────────────────────────

func TestRestore_AdoptaTurnoActivo(t *testing.T) {
	h := newHarness(t)
	existing := &entity.Shift{
		ID:        "shift-activo",
		StoreID:   "store-1",
		UserID:    "u1",
		StartTime: h.now.Add(-time.Hour),
		Active:    true,
	}
	require.NoError(t, h.shifts.Create(context.Background(), existing))

	h.uc.Restore(context.Background(), h.sess)
	require.NotNil(t, h.sess.Shift())
	assert.Equal(t, "shift-activo", h.sess.Shift().ID)
	h.sess.Close()
}

func TestRestore_SinCandidato_QuedaEnNoShift(t *testing.T) {
	h := newHarness(t)
	h.uc.Restore(context.Background(), h.sess)
	assert.Nil(t, h.sess.Shift())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre automático
// ──────────────────────────────────────────────────────────────────────────────

func TestAutoCloseBoundary_MedianocheLocalSiguiente(t *testing.T) {
	start := time.Date(2024, 6, 1, 23, 30, 0, 0, time.Local)
	sh := &entity.Shift{StartTime: start}
	boundary := sh.AutoCloseBoundary()

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), boundary)
}

func TestScheduleAutoClose_FronteraVencidaOffline_QuedaPendiente(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)

	// El reloj salta más allá de la medianoche con el terminal offline: el
	// cierre no puede llegar a la base y queda pendiente.
	h.monitor.Set(false)
	h.now = h.now.Add(24 * time.Hour)
	h.uc.ScheduleAutoClose(h.sess)

	assert.Eventually(t, h.sess.PendingAutoClose, time.Second, 10*time.Millisecond,
		"el cierre vencido sin conexión debe marcar pending")
	assert.NotNil(t, h.sess.Shift(), "el turno sigue en memoria hasta poder cerrarse")
	h.sess.Close()
}

func TestRetryPendingCloses_CierraAlReconectar(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)
	shiftID := h.sess.Shift().ID

	h.sess.SetPendingAutoClose(true)
	manager := session.NewManager()
	manager.Put("u1", h.sess)

	h.monitor.Set(true)
	h.uc.RetryPendingCloses(manager)

	assert.Nil(t, h.sess.Shift(), "el reintento debe cerrar el turno")
	assert.False(t, h.sess.PendingAutoClose())
	assert.False(t, h.shifts.shifts[shiftID].Active)
	manager.Teardown()
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: abrir → vender → cerrar
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_AbrirVenderCerrar(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Start(context.Background(), h.sess)
	require.NoError(t, err)
	shiftID := h.sess.Shift().ID

	h.sales.sales = append(h.sales.sales, entity.Sale{
		ID: "s1", StoreID: "store-1", SellerID: "u1",
		TotalAmount: decimal.RequireFromString("500"),
		CreatedAt:   h.now.Add(time.Minute),
	})
	h.now = h.now.Add(8 * time.Hour)

	require.NoError(t, h.uc.End(context.Background(), h.sess))
	assert.True(t, h.shifts.shifts[shiftID].TotalSales.Equal(decimal.RequireFromString("500")))
}
