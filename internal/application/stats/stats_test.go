package stats_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/stats"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", s)
	require.NoError(t, err)
	return parsed
}

func sale(t *testing.T, seller, method, amount, created string, items int) entity.Sale {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	lineItems := make([]entity.SaleItem, items)
	return entity.Sale{
		ID:            "sale-" + created,
		StoreID:       "store-1",
		SellerID:      seller,
		TotalAmount:   amt,
		PaymentMethod: method,
		Items:         lineItems,
		CreatedAt:     day(t, created),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Daily
// ──────────────────────────────────────────────────────────────────────────────

func TestDaily_AgrupaPorFechaDescendente(t *testing.T) {
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-01-01 10:00", 1),
		sale(t, "s1", entity.PaymentCash, "200", "2024-01-03 12:00", 1),
		sale(t, "s2", entity.PaymentTerminal, "50", "2024-01-02 09:00", 1),
		sale(t, "s1", entity.PaymentCash, "25", "2024-01-03 18:00", 1),
	}

	out := stats.Daily(sales)
	require.Len(t, out, 3)

	assert.Equal(t, "2024-01-03", out[0].Date, "la fecha más reciente va primero")
	assert.Equal(t, "2024-01-02", out[1].Date)
	assert.Equal(t, "2024-01-01", out[2].Date)

	assert.True(t, out[0].Amount.Equal(decimal.RequireFromString("225")),
		"el día 03 debe sumar 200+25")
	assert.Equal(t, 2, out[0].Count)
}

func TestDaily_DesglosePorVendedor(t *testing.T) {
	sales := []entity.Sale{
		sale(t, "s2", entity.PaymentCash, "10", "2024-02-01 10:00", 1),
		sale(t, "s1", entity.PaymentCash, "30", "2024-02-01 11:00", 1),
		sale(t, "s1", entity.PaymentCash, "5", "2024-02-01 12:00", 1),
	}

	out := stats.Daily(sales)
	require.Len(t, out, 1)
	require.Len(t, out[0].Sellers, 2)

	// Orden estable por id de vendedor.
	assert.Equal(t, "s1", out[0].Sellers[0].SellerID)
	assert.True(t, out[0].Sellers[0].Amount.Equal(decimal.RequireFromString("35")))
	assert.Equal(t, 2, out[0].Sellers[0].Count)
	assert.Equal(t, "s2", out[0].Sellers[1].SellerID)
}

func TestDaily_EsDeterminista(t *testing.T) {
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-01-01 10:00", 1),
		sale(t, "s2", entity.PaymentTerminal, "200", "2024-01-02 12:00", 1),
		sale(t, "s3", entity.PaymentCash, "300", "2024-01-01 14:00", 1),
	}

	first := stats.Daily(sales)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, stats.Daily(sales),
			"mismo input debe producir exactamente el mismo output")
	}
}

func TestDaily_SinVentas(t *testing.T) {
	assert.Empty(t, stats.Daily(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Total
// ──────────────────────────────────────────────────────────────────────────────

func TestTotal_ResumenGlobal(t *testing.T) {
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-01-01 10:00", 1),
		sale(t, "s1", entity.PaymentTerminal, "200", "2024-01-02 12:00", 1),
		sale(t, "s2", entity.PaymentCash, "50", "2024-01-02 13:00", 1),
	}

	st := stats.Total(sales)
	assert.True(t, st.TotalAmount.Equal(decimal.RequireFromString("350")))
	assert.Equal(t, 3, st.Count)
	assert.True(t, st.AverageSale.Equal(decimal.RequireFromString("116.67")),
		"promedio redondeado a 2 decimales")
	assert.True(t, st.CashAmount.Equal(decimal.RequireFromString("150")))
	assert.True(t, st.TerminalAmount.Equal(decimal.RequireFromString("200")))
	assert.Equal(t, "2024-01-02", st.TopSellingDay)
	assert.True(t, st.TopDayAmount.Equal(decimal.RequireFromString("250")))
}

func TestTotal_EmpateDeMejorDia_GanaElPrimero(t *testing.T) {
	// Ambos días suman 100; el primero encontrado en el orden de la
	// colección debe ganar.
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-01-02 10:00", 1),
		sale(t, "s1", entity.PaymentCash, "100", "2024-01-01 10:00", 1),
	}

	st := stats.Total(sales)
	assert.Equal(t, "2024-01-02", st.TopSellingDay)
}

func TestTotal_SinVentas_PromedioCero(t *testing.T) {
	st := stats.Total(nil)
	assert.Equal(t, 0, st.Count)
	assert.True(t, st.AverageSale.IsZero(), "sin ventas el promedio es 0, no NaN")
	assert.Empty(t, st.TopSellingDay)
}

// ──────────────────────────────────────────────────────────────────────────────
// ForShift
// ──────────────────────────────────────────────────────────────────────────────

func TestForShift_SoloVentasDentroDelTurno(t *testing.T) {
	shift := &entity.Shift{
		ID:        "shift-1",
		StoreID:   "store-1",
		UserID:    "s1",
		StartTime: day(t, "2024-03-01 09:00"),
		Active:    true,
	}
	now := day(t, "2024-03-01 18:00")
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "40", "2024-03-01 08:00", 1),  // antes del turno
		sale(t, "s1", entity.PaymentCash, "100", "2024-03-01 10:00", 2), // dentro
		sale(t, "s1", entity.PaymentTerminal, "60", "2024-03-01 12:00", 1),
		sale(t, "s1", entity.PaymentCash, "80", "2024-03-01 19:00", 1), // después de now
	}

	owner := &entity.User{ID: "owner-1", Role: entity.RoleOwner}
	st := stats.ForShift(sales, shift, now, owner)
	require.NotNil(t, st)

	assert.True(t, st.TotalAmount.Equal(decimal.RequireFromString("160")))
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 3, st.TotalItems)
	assert.True(t, st.CashAmount.Equal(decimal.RequireFromString("100")))
	assert.True(t, st.TerminalAmount.Equal(decimal.RequireFromString("60")))
	assert.True(t, st.AvgCheck.Equal(decimal.RequireFromString("80")))
	assert.Equal(t, shift.StartTime, st.Start)
	assert.Equal(t, now, st.End)
}

func TestForShift_VendedorSoloVeSusVentas(t *testing.T) {
	shift := &entity.Shift{
		ID:        "shift-1",
		StoreID:   "store-1",
		UserID:    "s1",
		StartTime: day(t, "2024-03-01 09:00"),
		Active:    true,
	}
	now := day(t, "2024-03-01 18:00")
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-03-01 10:00", 1),
		sale(t, "s2", entity.PaymentCash, "500", "2024-03-01 11:00", 1), // de otro vendedor
	}

	seller := &entity.User{ID: "s1", StoreID: "store-1", Role: entity.RoleSeller}
	st := stats.ForShift(sales, shift, now, seller)
	require.NotNil(t, st)
	assert.Equal(t, 1, st.Count)
	assert.True(t, st.TotalAmount.Equal(decimal.RequireFromString("100")))
}

func TestForShift_TiempoTrabajadoYGananciaPorHora(t *testing.T) {
	shift := &entity.Shift{
		ID:        "shift-1",
		StoreID:   "store-1",
		UserID:    "s1",
		StartTime: day(t, "2024-03-01 09:00"),
		Active:    true,
	}
	now := day(t, "2024-03-01 11:00") // turno de 2 horas
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "60", "2024-03-01 09:30", 1),
		sale(t, "s1", entity.PaymentCash, "40", "2024-03-01 10:30", 1),
	}

	owner := &entity.User{ID: "owner-1", Role: entity.RoleOwner}
	st := stats.ForShift(sales, shift, now, owner)
	require.NotNil(t, st)
	assert.Equal(t, int64(120), st.WorkingMinutes)
	assert.True(t, st.HourlyEarnings.Equal(decimal.RequireFromString("50")), "100 en 2 horas son 50 por hora")
}

func TestForShift_DuracionCero_SinTasaHoraria(t *testing.T) {
	start := day(t, "2024-03-01 09:00")
	shift := &entity.Shift{
		ID:        "shift-1",
		StoreID:   "store-1",
		UserID:    "s1",
		StartTime: start,
		Active:    true,
	}
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-03-01 09:00", 1), // en el borde
	}

	owner := &entity.User{ID: "owner-1", Role: entity.RoleOwner}
	st := stats.ForShift(sales, shift, start, owner)
	require.NotNil(t, st)
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, int64(0), st.WorkingMinutes)
	assert.True(t, st.HourlyEarnings.IsZero(), "sin duración no hay tasa horaria")
}

func TestForShift_SinTurno_Nil(t *testing.T) {
	assert.Nil(t, stats.ForShift(nil, nil, time.Now(), nil))
}

func TestForShift_TurnoCerrado_UsaEndTime(t *testing.T) {
	end := day(t, "2024-03-01 17:00")
	shift := &entity.Shift{
		ID:        "shift-1",
		StoreID:   "store-1",
		UserID:    "s1",
		StartTime: day(t, "2024-03-01 09:00"),
		EndTime:   &end,
	}
	sales := []entity.Sale{
		sale(t, "s1", entity.PaymentCash, "100", "2024-03-01 17:30", 1), // después del cierre
	}

	owner := &entity.User{ID: "owner-1", Role: entity.RoleOwner}
	st := stats.ForShift(sales, shift, day(t, "2024-03-01 20:00"), owner)
	require.NotNil(t, st)
	assert.Equal(t, 0, st.Count, "ventas posteriores al cierre no cuentan")
	assert.Equal(t, end, st.End)
}
