package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// fakeStoreRepo falla las primeras failUntil llamadas a List.
type fakeStoreRepo struct {
	mu        sync.Mutex
	calls     int
	failUntil int
	stores    []entity.Store
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	for i := range r.stores {
		if r.stores[i].ID == id {
			return &r.stores[i], nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) List(_ context.Context) ([]entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failUntil {
		return nil, errors.New("gateway caído")
	}
	return r.stores, nil
}

type fakeStoreCache struct {
	mu     sync.Mutex
	stores []entity.Store
	saves  int
}

func (c *fakeStoreCache) SaveStores(_ context.Context, stores []entity.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = stores
	c.saves++
}

func (c *fakeStoreCache) Stores(_ context.Context) []entity.Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stores
}

func TestLoadStores_ReintentaYRefrescaElSnapshot(t *testing.T) {
	repo := &fakeStoreRepo{
		failUntil: 2, // dos fallos transitorios, el tercer intento responde
		stores:    []entity.Store{{ID: "st-1", Name: "Centro"}},
	}
	cache := &fakeStoreCache{}
	uc := usecase.NewStoreUseCase(repo, connectivity.NewMonitor(logger.Nop()), cache, logger.Nop())

	stores, err := uc.LoadStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, 3, repo.calls, "los fallos transitorios deben reintentarse")
	assert.Equal(t, 1, cache.saves, "el snapshot debe refrescarse tras el éxito")
}

func TestLoadStores_GatewayAgotado_CaeAlSnapshot(t *testing.T) {
	repo := &fakeStoreRepo{failUntil: 100}
	cache := &fakeStoreCache{stores: []entity.Store{{ID: "st-1", Name: "Centro"}}}
	uc := usecase.NewStoreUseCase(repo, connectivity.NewMonitor(logger.Nop()), cache, logger.Nop())

	stores, err := uc.LoadStores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, 1, "con el gateway caído se sirve el último snapshot")
}

func TestLoadStores_SinGatewayNiSnapshot_Falla(t *testing.T) {
	repo := &fakeStoreRepo{failUntil: 100}
	uc := usecase.NewStoreUseCase(repo, connectivity.NewMonitor(logger.Nop()), &fakeStoreCache{}, logger.Nop())

	_, err := uc.LoadStores(context.Background())
	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestLoadStores_Offline_UsaSnapshot(t *testing.T) {
	repo := &fakeStoreRepo{stores: []entity.Store{{ID: "st-1"}}}
	cache := &fakeStoreCache{stores: []entity.Store{{ID: "st-cacheada"}}}
	monitor := connectivity.NewMonitor(logger.Nop())
	monitor.Set(false)
	uc := usecase.NewStoreUseCase(repo, monitor, cache, logger.Nop())

	stores, err := uc.LoadStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "st-cacheada", stores[0].ID, "offline se sirve el snapshot, no el gateway")
	assert.Zero(t, repo.calls)
}

func TestLoadStores_OfflineSinSnapshot_ErrOffline(t *testing.T) {
	monitor := connectivity.NewMonitor(logger.Nop())
	monitor.Set(false)
	uc := usecase.NewStoreUseCase(&fakeStoreRepo{}, monitor, &fakeStoreCache{}, logger.Nop())

	_, err := uc.LoadStores(context.Background())
	assert.ErrorIs(t, err, domain.ErrOffline)
}
