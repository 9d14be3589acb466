// Package auth implementa autenticación y gestión de usuarios.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/jwt"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// UseCase casos de uso de autenticación: login, registro y baja de usuarios.
type UseCase struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	monitor *connectivity.Monitor
	jwtCfg  config.JWTConfig
	log     *logger.Logger
}

// NewUseCase crea el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, stores repository.StoreRepository, monitor *connectivity.Monitor, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, stores: stores, monitor: monitor, jwtCfg: jwtCfg, log: log}
}

// LoginResult resultado de un login exitoso.
type LoginResult struct {
	Token string
	User  *entity.User
	Store *entity.Store
}

// Login autentica por login y contraseña contra la tienda seleccionada.
// El login se normaliza (trim + minúsculas) antes de buscar. Un vendedor
// solo puede entrar a su propia tienda; el dueño a cualquiera.
func (uc *UseCase) Login(ctx context.Context, login, password, storeID string) (*LoginResult, error) {
	if !uc.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" || password == "" || storeID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.FindByLogin(ctx, login)
	if err != nil {
		uc.log.Error().Err(err).Str("login", login).Msg("error buscando usuario")
		return nil, domain.ErrGateway
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsOwner() && user.StoreID != storeID {
		return nil, domain.ErrForbidden
	}

	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		uc.log.Error().Err(err).Str("store_id", storeID).Msg("error cargando tienda")
		return nil, domain.ErrGateway
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, store.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		uc.log.Error().Err(err).Msg("error generando token")
		return nil, domain.ErrGateway
	}

	uc.log.Info().Str("user_id", user.ID).Str("store_id", store.ID).Str("role", user.Role).Msg("login exitoso")
	return &LoginResult{Token: token, User: user, Store: store}, nil
}

// RegisterInput datos para dar de alta un vendedor.
type RegisterInput struct {
	Login    string
	Password string
	Name     string
	StoreID  string
}

// Register da de alta un vendedor en una tienda. Solo el dueño puede
// registrar usuarios y el rol del nuevo usuario siempre es vendedor.
func (uc *UseCase) Register(ctx context.Context, actor *entity.User, in RegisterInput) (*entity.User, error) {
	if !uc.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	if actor == nil || !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}
	in.Login = strings.ToLower(strings.TrimSpace(in.Login))
	if in.Login == "" || len(in.Password) < 6 || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.users.FindByLogin(ctx, in.Login)
	if err != nil {
		uc.log.Error().Err(err).Msg("error verificando login existente")
		return nil, domain.ErrGateway
	}
	if existing != nil {
		return nil, domain.ErrLoginAlreadyTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrGateway
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		StoreID:      in.StoreID,
		Login:        in.Login,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         entity.RoleSeller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		uc.log.Error().Err(err).Str("login", in.Login).Msg("error creando usuario")
		return nil, domain.ErrGateway
	}

	uc.log.Info().Str("user_id", user.ID).Str("store_id", user.StoreID).Msg("vendedor registrado")
	return user, nil
}

// ListUsers lista los usuarios del sistema. Solo para el dueño.
func (uc *UseCase) ListUsers(ctx context.Context, actor *entity.User) ([]entity.User, error) {
	if actor == nil || !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}
	users, err := uc.users.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("error listando usuarios")
		return nil, domain.ErrGateway
	}
	return users, nil
}

// DeleteUser elimina un vendedor. Solo el dueño puede hacerlo y no puede
// eliminarse a sí mismo.
func (uc *UseCase) DeleteUser(ctx context.Context, actor *entity.User, userID string) error {
	if !uc.monitor.IsOnline() {
		return domain.ErrOffline
	}
	if actor == nil || !actor.IsOwner() {
		return domain.ErrForbidden
	}
	if userID == "" || userID == actor.ID {
		return domain.ErrInvalidInput
	}
	if err := uc.users.Delete(ctx, userID); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("error eliminando usuario")
		return domain.ErrGateway
	}
	uc.log.Info().Str("user_id", userID).Msg("usuario eliminado")
	return nil
}
