package vets

import (
	"context"
	"errors"

	"vetconnect-client/internal/live"
	"vetconnect-client/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoData       = errors.New("remote returned no data")
)

const scope = "veterinarians"

// Veterinarian es data de referencia sin scope, asociada a una clínica.
type Veterinarian struct {
	ID       int64
	Name     string
	ClinicID int64
}

// Remote es la porción de la API remota que necesita este dominio.
type Remote interface {
	FetchVeterinarians(ctx context.Context) ([]Veterinarian, error)
}

// Cache es la tabla local de veterinarios. Upsert mergea por id.
type Cache interface {
	List(ctx context.Context) ([]Veterinarian, error)
	ListByClinic(ctx context.Context, clinicID int64) ([]Veterinarian, error)
	Upsert(ctx context.Context, items []Veterinarian) error
}

// Repository sirve el catálogo de veterinarios desde el cache local.
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
		log:       log.With(map[string]any{"component": "vets"}),
	}
}

// Observe emite el catálogo cacheado y después cada cambio; agenda un
// refresh en background colapsado por scope.
func (r *Repository) Observe(ctx context.Context) (<-chan []Veterinarian, error) {
	r.ScheduleRefresh()

	return live.Stream(ctx, r.hub, scope, r.cache.List)
}

// ScheduleRefresh agenda el refresh del catálogo en background.
func (r *Repository) ScheduleRefresh() {
	r.refresher.Schedule(scope, r.Refresh)
}

// ByClinic filtra el cache local; no dispara refresh (la pantalla de agenda
// ya observó el catálogo completo).
func (r *Repository) ByClinic(ctx context.Context, clinicID int64) ([]Veterinarian, error) {
	if clinicID <= 0 {
		return nil, ErrInvalidInput
	}
	return r.cache.ListByClinic(ctx, clinicID)
}

// Refresh mergea el catálogo remoto sobre el local (upsert por id).
func (r *Repository) Refresh(ctx context.Context) error {
	fetched, err := r.remote.FetchVeterinarians(ctx)
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
