package shift

import (
	"context"
	"time"

	"github.com/tu-usuario/tienda-pos/internal/application/session"
)

// autoCloseTimeout acota el cierre automático disparado por timer.
const autoCloseTimeout = 30 * time.Second

// ScheduleAutoClose programa el cierre del turno en la medianoche local del
// día siguiente a su inicio. Si la frontera ya pasó (la app estuvo dormida)
// el cierre se intenta de inmediato. El timer queda en la sesión y se
// cancela con ella.
func (uc *UseCase) ScheduleAutoClose(s *session.Session) {
	shift := s.Shift()
	if shift == nil {
		return
	}
	boundary := shift.AutoCloseBoundary()
	delay := boundary.Sub(uc.now())
	if delay <= 0 {
		uc.log.Warn().
			Str("shift_id", shift.ID).
			Time("boundary", boundary).
			Msg("frontera de cierre ya vencida: cerrando ahora")
		go uc.autoClose(s)
		return
	}
	uc.log.Info().
		Str("shift_id", shift.ID).
		Time("boundary", boundary).
		Msg("cierre automático programado")
	s.SetAutoCloseTimer(time.AfterFunc(delay, func() { uc.autoClose(s) }))
}

// autoClose intenta cerrar el turno al vencer la frontera. Si el terminal
// está offline en ese momento no se pierde la obligación: queda la bandera
// de cierre pendiente y se reintenta en cada reconexión hasta lograrlo
// (garantía at-least-once diferida).
func (uc *UseCase) autoClose(s *session.Session) {
	if s.Shift() == nil {
		return
	}
	if !uc.monitor.IsOnline() {
		uc.log.Warn().Msg("cierre automático con terminal offline: quedará pendiente")
		s.SetPendingAutoClose(true)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), autoCloseTimeout)
	defer cancel()
	if err := uc.End(ctx, s); err != nil {
		uc.log.Error().Err(err).Msg("cierre automático falló: quedará pendiente")
		s.SetPendingAutoClose(true)
	}
}

// RetryPendingCloses recorre las sesiones y reintenta los cierres
// automáticos que quedaron pendientes por falta de conexión. Se invoca en
// cada evento de reconexión.
func (uc *UseCase) RetryPendingCloses(manager *session.Manager) {
	manager.Range(func(s *session.Session) {
		if !s.PendingAutoClose() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), autoCloseTimeout)
		defer cancel()
		if err := uc.End(ctx, s); err != nil {
			// Sigue pendiente: el próximo evento de reconexión vuelve a intentar.
			uc.log.Error().Err(err).Msg("reintento de cierre pendiente falló")
			return
		}
		uc.log.Info().Str("user_id", s.User().ID).Msg("cierre pendiente completado tras reconexión")
	})
}

// WatchConnectivity consume las transiciones de conectividad y, al volver la
// conexión, reintenta los cierres pendientes. Corre hasta que ctx se cancele.
func (uc *UseCase) WatchConnectivity(ctx context.Context, manager *session.Manager) {
	events := uc.monitor.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case online := <-events:
			if online {
				uc.RetryPendingCloses(manager)
			}
		}
	}
}
