package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
)

const localSession = "session"

// SessionMiddleware resuelve la sesión viva del usuario autenticado. La
// sesión se crea en el login; si no existe (reinicio del servicio, logout)
// el cliente debe volver a autenticarse.
func SessionMiddleware(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := manager.Get(GetUserID(c))
		if s == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sesión no iniciada: vuelva a autenticarse"})
		}
		c.Locals(localSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de sesión).
func GetSession(c *fiber.Ctx) *session.Session {
	v := c.Locals(localSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
