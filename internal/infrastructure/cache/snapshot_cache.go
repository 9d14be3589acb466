package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// Claves de snapshot. Blobs JSON best-effort, sin versionado de esquema.
const (
	keyStores      = "pos:snapshot:stores"
	keyShiftPrefix = "pos:snapshot:shift:" // + userID
)

// SnapshotCache guarda en Redis los dos snapshots de recuperación: la última
// lista de tiendas conocida y el turno activo por usuario. Todos los errores
// de Redis se registran y se tragan: el caché nunca bloquea una operación.
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New construye el caché de snapshots.
func New(cfg config.CacheConfig, log *logger.Logger) *SnapshotCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &SnapshotCache{
		rdb: rdb,
		ttl: time.Duration(cfg.TTLMinutes) * time.Minute,
		log: log,
	}
}

// SaveStores persiste la lista de tiendas.
func (c *SnapshotCache) SaveStores(ctx context.Context, stores []entity.Store) {
	c.save(ctx, keyStores, stores)
}

// Stores devuelve la última lista de tiendas conocida, o nil si no hay snapshot.
func (c *SnapshotCache) Stores(ctx context.Context) []entity.Store {
	var stores []entity.Store
	if !c.load(ctx, keyStores, &stores) {
		return nil
	}
	return stores
}

// SaveShift persiste el snapshot del turno activo del usuario.
func (c *SnapshotCache) SaveShift(ctx context.Context, userID string, shift *entity.Shift) {
	c.save(ctx, keyShiftPrefix+userID, shift)
}

// Shift devuelve el snapshot de turno del usuario, o nil si no hay.
func (c *SnapshotCache) Shift(ctx context.Context, userID string) *entity.Shift {
	var shift entity.Shift
	if !c.load(ctx, keyShiftPrefix+userID, &shift) {
		return nil
	}
	return &shift
}

// ClearShift borra el snapshot de turno del usuario (tras cerrar el turno).
func (c *SnapshotCache) ClearShift(ctx context.Context, userID string) {
	if err := c.rdb.Del(ctx, keyShiftPrefix+userID).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("caché: no se pudo borrar snapshot de turno")
	}
}

// Close cierra la conexión con Redis.
func (c *SnapshotCache) Close() error {
	return c.rdb.Close()
}

// Ping verifica la conexión (health check).
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *SnapshotCache) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("caché: no se pudo serializar snapshot")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("caché: no se pudo guardar snapshot")
	}
}

func (c *SnapshotCache) load(ctx context.Context, key string, out any) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("caché: no se pudo leer snapshot")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg(fmt.Sprintf("caché: snapshot corrupto en %s", key))
		return false
	}
	return true
}
