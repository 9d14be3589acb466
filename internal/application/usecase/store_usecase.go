// Package usecase agrupa los casos de uso de catálogo: tiendas y productos.
package usecase

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
	"github.com/tu-usuario/tienda-pos/pkg/retry"
)

// StoreCache snapshot de la lista de tiendas para arranques sin red.
type StoreCache interface {
	SaveStores(ctx context.Context, stores []entity.Store)
	Stores(ctx context.Context) []entity.Store
}

// StoreUseCase carga la lista de tiendas con reintentos y cae al snapshot
// cacheado cuando el gateway no responde.
type StoreUseCase struct {
	stores   repository.StoreRepository
	monitor  *connectivity.Monitor
	cache    StoreCache
	retryCfg retry.Config
	log      *logger.Logger
}

// NewStoreUseCase crea el caso de uso de tiendas.
func NewStoreUseCase(stores repository.StoreRepository, monitor *connectivity.Monitor, cache StoreCache, log *logger.Logger) *StoreUseCase {
	return &StoreUseCase{
		stores:   stores,
		monitor:  monitor,
		cache:    cache,
		retryCfg: retry.DefaultConfig(),
		log:      log,
	}
}

// LoadStores devuelve la lista de tiendas. Con conexión intenta el gateway
// con backoff y refresca el snapshot; sin conexión, o si los reintentos se
// agotan, devuelve el último snapshot conocido. Sin snapshot y sin gateway
// devuelve ErrGateway.
func (uc *StoreUseCase) LoadStores(ctx context.Context) ([]entity.Store, error) {
	if !uc.monitor.IsOnline() {
		if cached := uc.cache.Stores(ctx); cached != nil {
			uc.log.Info().Int("count", len(cached)).Msg("tiendas servidas desde snapshot (sin conexión)")
			return cached, nil
		}
		return nil, domain.ErrOffline
	}

	var stores []entity.Store
	err := retry.Do(ctx, uc.retryCfg, func() error {
		var err error
		stores, err = uc.stores.List(ctx)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo cargar tiendas del gateway, probando snapshot")
		if cached := uc.cache.Stores(ctx); cached != nil {
			return cached, nil
		}
		return nil, domain.ErrGateway
	}

	uc.cache.SaveStores(ctx, stores)
	return stores, nil
}

// GetStore devuelve una tienda por id.
func (uc *StoreUseCase) GetStore(ctx context.Context, id string) (*entity.Store, error) {
	if !uc.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	store, err := uc.stores.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("store_id", id).Msg("error cargando tienda")
		return nil, domain.ErrGateway
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return store, nil
}

// WatchConnectivity refresca el snapshot de tiendas cada vez que vuelve la
// conexión. Pensado para correr en su propia goroutine.
func (uc *StoreUseCase) WatchConnectivity(ctx context.Context) {
	ch := uc.monitor.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-ch:
			if !ok {
				return
			}
			if !online {
				continue
			}
			if _, err := uc.LoadStores(ctx); err != nil {
				uc.log.Warn().Err(err).Msg("recarga de tiendas tras reconexión falló")
			}
		}
	}
}
