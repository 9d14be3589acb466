package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/auth"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
	"github.com/tu-usuario/tienda-pos/internal/application/shift"
)

// AuthHandler maneja login, logout y gestión de vendedores.
type AuthHandler struct {
	uc      *auth.UseCase
	shiftUC *shift.UseCase
	manager *session.Manager
	loader  *session.Loader
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, shiftUC *shift.UseCase, manager *session.Manager, loader *session.Loader) *AuthHandler {
	return &AuthHandler{uc: uc, shiftUC: shiftUC, manager: manager, loader: loader}
}

// Login autentica contra la tienda seleccionada, materializa la sesión con
// sus colecciones en memoria y restaura el turno activo si lo hay.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Login == "" || in.Password == "" || in.StoreID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "login, password y store_id son requeridos"})
	}

	out, err := h.uc.Login(c.Context(), in.Login, in.Password, in.StoreID)
	if err != nil {
		return respondError(c, err)
	}

	sess := session.New(out.User, out.Store)
	// La carga inicial es best-effort: sin red la sesión arranca vacía y se
	// rellena al reconectar.
	_ = h.loader.Load(c.Context(), sess)
	h.shiftUC.Restore(c.Context(), sess)
	h.manager.Put(out.User.ID, sess)

	return c.JSON(dto.LoginResponse{
		Token: out.Token,
		User:  dto.ToUserResponse(out.User),
		Store: dto.ToStoreResponse(out.Store),
	})
}

// Logout descarta la sesión del usuario y cancela sus timers.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.manager.Remove(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Register da de alta un vendedor (solo dueño).
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Login == "" || in.Password == "" || in.StoreID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "login, password y store_id son requeridos"})
	}
	user, err := h.uc.Register(c.Context(), GetSession(c).User(), auth.RegisterInput{
		Login:    in.Login,
		Password: in.Password,
		Name:     in.Name,
		StoreID:  in.StoreID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(user))
}

// ListUsers lista los usuarios (solo dueño).
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context(), GetSession(c).User())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	return c.JSON(out)
}

// DeleteUser elimina un vendedor (solo dueño).
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), GetSession(c).User(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
