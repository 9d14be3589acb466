package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReceiptNumber genera el número de recibo en el momento del envío:
// timestamp en milisegundos más un sufijo aleatorio. Es un string de
// presentación globalmente único; el id canónico lo devuelve el insert.
func NewReceiptNumber(now time.Time) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("RCP-%d-%s", now.UnixMilli(), suffix)
}
