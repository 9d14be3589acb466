// Package connectivity publica la señal online/offline del terminal.
// El núcleo trata "offline" como una compuerta global: toda operación de
// escritura se corta antes de tocar la red; las lecturas degradan a caché.
package connectivity

import (
	"sync"

	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// Monitor mantiene el estado booleano de conectividad y notifica las
// transiciones a los suscriptores. El shell del terminal lo alimenta con los
// eventos online/offline del runtime.
type Monitor struct {
	mu     sync.RWMutex
	online bool
	subs   []chan bool
	log    *logger.Logger
}

// NewMonitor construye el monitor. El terminal arranca asumiendo online.
func NewMonitor(log *logger.Logger) *Monitor {
	return &Monitor{online: true, log: log}
}

// IsOnline devuelve el estado actual.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Set actualiza el estado. Solo las transiciones reales se notifican.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]chan bool, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.log.Info().Bool("online", online).Msg("cambio de conectividad")
	for _, ch := range subs {
		// No bloquear si el suscriptor va atrasado: la señal es un booleano,
		// el último valor que lea seguirá siendo correcto.
		select {
		case ch <- online:
		default:
		}
	}
}

// Subscribe devuelve un canal que recibe cada transición de conectividad.
func (m *Monitor) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}
