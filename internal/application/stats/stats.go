// Package stats deriva estadísticas de la colección de ventas en memoria.
// Todas las funciones son puras y deterministas: mismo input, mismo output,
// sin mutación de estado ni llamadas de red.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// SellerStat acumulado de un vendedor dentro de un día.
type SellerStat struct {
	SellerID string          `json:"seller_id"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// DailyStat acumulado de un día calendario.
type DailyStat struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Amount  decimal.Decimal `json:"amount"`
	Count   int             `json:"count"`
	Sellers []SellerStat    `json:"sellers"`
}

// TotalStats resumen global de la colección de ventas.
type TotalStats struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Count          int             `json:"count"`
	AverageSale    decimal.Decimal `json:"average_sale"`
	TopSellingDay  string          `json:"top_selling_day"` // YYYY-MM-DD, "" si no hay ventas
	TopDayAmount   decimal.Decimal `json:"top_day_amount"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	TerminalAmount decimal.Decimal `json:"terminal_amount"`
}

// ShiftStats resumen del turno en curso. Los campos de tiempo trabajado y
// ganancia por hora se derivan de la ventana del turno, no se almacenan.
type ShiftStats struct {
	Start          time.Time       `json:"start"`
	End            time.Time       `json:"end"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	TerminalAmount decimal.Decimal `json:"terminal_amount"`
	Count          int             `json:"count"`
	TotalItems     int             `json:"total_items"`
	AvgCheck       decimal.Decimal `json:"avg_check"`
	WorkingMinutes int64           `json:"working_minutes"`
	HourlyEarnings decimal.Decimal `json:"hourly_earnings"`
}

// Daily agrupa las ventas por fecha calendario y dentro de cada fecha por
// vendedor, sumando monto y conteo. Resultado ordenado por fecha
// descendente; los vendedores de cada día van por id ascendente para que la
// salida sea estable.
func Daily(sales []entity.Sale) []DailyStat {
	byDate := make(map[string]*DailyStat)
	sellersByDate := make(map[string]map[string]*SellerStat)

	for i := range sales {
		date := sales[i].CreatedAt.Format(dateLayout)
		day, ok := byDate[date]
		if !ok {
			day = &DailyStat{Date: date, Amount: decimal.Zero}
			byDate[date] = day
			sellersByDate[date] = make(map[string]*SellerStat)
		}
		day.Amount = day.Amount.Add(sales[i].TotalAmount)
		day.Count++

		seller, ok := sellersByDate[date][sales[i].SellerID]
		if !ok {
			seller = &SellerStat{SellerID: sales[i].SellerID, Amount: decimal.Zero}
			sellersByDate[date][sales[i].SellerID] = seller
		}
		seller.Amount = seller.Amount.Add(sales[i].TotalAmount)
		seller.Count++
	}

	out := make([]DailyStat, 0, len(byDate))
	for date, day := range byDate {
		sellers := make([]SellerStat, 0, len(sellersByDate[date]))
		for _, st := range sellersByDate[date] {
			sellers = append(sellers, *st)
		}
		sort.Slice(sellers, func(i, j int) bool { return sellers[i].SellerID < sellers[j].SellerID })
		day.Sellers = sellers
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Total calcula el resumen global: ingreso, conteo, promedio (0 sin
// ventas), día de mayor venta (en empate gana el primero encontrado en el
// orden de la colección) y totales por método de pago.
func Total(sales []entity.Sale) TotalStats {
	st := TotalStats{
		TotalAmount:    decimal.Zero,
		AverageSale:    decimal.Zero,
		TopDayAmount:   decimal.Zero,
		CashAmount:     decimal.Zero,
		TerminalAmount: decimal.Zero,
	}

	dayTotals := make(map[string]decimal.Decimal)
	var dayOrder []string // orden de primera aparición, para desempate estable

	for i := range sales {
		st.TotalAmount = st.TotalAmount.Add(sales[i].TotalAmount)
		st.Count++
		switch sales[i].PaymentMethod {
		case entity.PaymentCash:
			st.CashAmount = st.CashAmount.Add(sales[i].TotalAmount)
		case entity.PaymentTerminal:
			st.TerminalAmount = st.TerminalAmount.Add(sales[i].TotalAmount)
		}

		date := sales[i].CreatedAt.Format(dateLayout)
		if _, seen := dayTotals[date]; !seen {
			dayOrder = append(dayOrder, date)
		}
		dayTotals[date] = dayTotals[date].Add(sales[i].TotalAmount)
	}

	if st.Count > 0 {
		st.AverageSale = st.TotalAmount.Div(decimal.NewFromInt(int64(st.Count))).Round(2)
	}

	for _, date := range dayOrder {
		if total := dayTotals[date]; total.GreaterThan(st.TopDayAmount) {
			st.TopDayAmount = total
			st.TopSellingDay = date
		}
	}
	return st
}

// ForShift calcula el resumen del turno en curso: ventas con timestamp en
// [shift.Start, now] (o el cierre del turno si ya terminó). Para un viewer
// que no es dueño se filtra además por su vendedor y tienda. Devuelve nil
// si no hay turno.
func ForShift(sales []entity.Sale, shift *entity.Shift, now time.Time, viewer *entity.User) *ShiftStats {
	if shift == nil {
		return nil
	}
	start := shift.StartTime
	end := now
	if shift.EndTime != nil {
		end = *shift.EndTime
	}

	st := &ShiftStats{
		Start:          start,
		End:            end,
		TotalAmount:    decimal.Zero,
		CashAmount:     decimal.Zero,
		TerminalAmount: decimal.Zero,
		AvgCheck:       decimal.Zero,
		HourlyEarnings: decimal.Zero,
	}

	for i := range sales {
		created := sales[i].CreatedAt
		if created.Before(start) || created.After(end) {
			continue
		}
		if viewer != nil && !viewer.IsOwner() {
			if sales[i].SellerID != viewer.ID || sales[i].StoreID != shift.StoreID {
				continue
			}
		}
		st.TotalAmount = st.TotalAmount.Add(sales[i].TotalAmount)
		st.Count++
		st.TotalItems += len(sales[i].Items)
		switch sales[i].PaymentMethod {
		case entity.PaymentCash:
			st.CashAmount = st.CashAmount.Add(sales[i].TotalAmount)
		case entity.PaymentTerminal:
			st.TerminalAmount = st.TerminalAmount.Add(sales[i].TotalAmount)
		}
	}

	if st.Count > 0 {
		st.AvgCheck = st.TotalAmount.Div(decimal.NewFromInt(int64(st.Count))).Round(2)
	}

	// Con duración cero no hay tiempo trabajado ni tasa horaria.
	if worked := end.Sub(start); worked > 0 {
		st.WorkingMinutes = int64(worked.Minutes())
		hours := decimal.NewFromFloat(worked.Hours())
		st.HourlyEarnings = st.TotalAmount.Div(hours).Round(2)
	}
	return st
}
