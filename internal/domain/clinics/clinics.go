package clinics

import (
	"context"
	"errors"

	"vetconnect-client/internal/live"
	"vetconnect-client/internal/platform/logger"
)

var ErrNoData = errors.New("remote returned no data")

const scope = "clinics"

// Clinic es data de referencia sin scope: se mergea, no se reemplaza.
type Clinic struct {
	ID   int64
	Name string
}

// Remote es la porción de la API remota que necesita este dominio.
type Remote interface {
	FetchClinics(ctx context.Context) ([]Clinic, error)
}

// Cache es la tabla local de clínicas. Upsert mergea por id.
type Cache interface {
	List(ctx context.Context) ([]Clinic, error)
	Upsert(ctx context.Context, items []Clinic) error
}

// Repository sirve el catálogo de clínicas desde el cache local.
type Repository struct {
	remote    Remote
	cache     Cache
	hub       *live.Hub
	refresher *live.Refresher
	log       logger.Logger
}

func NewRepository(remote Remote, cache Cache, refresher *live.Refresher, log logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{
		remote:    remote,
		cache:     cache,
		hub:       live.NewHub(),
		refresher: refresher,
		log:       log.With(map[string]any{"component": "clinics"}),
	}
}

// Observe emite el catálogo cacheado y después cada cambio; agenda un
// refresh en background colapsado por scope.
func (r *Repository) Observe(ctx context.Context) (<-chan []Clinic, error) {
	r.ScheduleRefresh()

	return live.Stream(ctx, r.hub, scope, r.cache.List)
}

// ScheduleRefresh agenda el refresh del catálogo en background.
func (r *Repository) ScheduleRefresh() {
	r.refresher.Schedule(scope, r.Refresh)
}

// Refresh mergea el catálogo remoto sobre el local (upsert por id, sin
// borrar filas que el servidor no devolvió esta vez).
func (r *Repository) Refresh(ctx context.Context) error {
	fetched, err := r.remote.FetchClinics(ctx)
	if err != nil {
		return err
	}
	if len(fetched) == 0 {
		return ErrNoData
	}

	if err := r.cache.Upsert(ctx, fetched); err != nil {
		return err
	}
	r.hub.Notify(scope)
	return nil
}
