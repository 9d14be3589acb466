package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// Event contexto estructurado de un error de gateway poco informativo.
type Event struct {
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id,omitempty"`
	StoreID   string    `json:"store_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

// Reporter envía eventos de diagnóstico por POST, fire-and-forget.
// El fallo de entrega se traga: el diagnóstico nunca interrumpe el flujo.
type Reporter struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

// New construye el reporter. URL vacía lo deja deshabilitado.
func New(cfg config.DiagnosticsConfig, log *logger.Logger) *Reporter {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Reporter{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Report envía el evento en segundo plano. Nunca bloquea ni devuelve error.
func (r *Reporter) Report(ev Event) {
	if r.url == "" {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	go r.post(ev)
}

func (r *Reporter) post(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debug().Err(err).Str("operation", ev.Operation).Msg("diagnóstico no entregado")
		return
	}
	_ = resp.Body.Close()
}
