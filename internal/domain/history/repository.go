package history

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"vetconnect-client/internal/live"
	"vetconnect-client/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoData       = errors.New("remote returned no data")
)

// Repository sirve el historial médico de un animal desde el cache local.
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
		log:       log.With(map[string]any{"component": "history"}),
	}
}

func scopeKey(animalID int64) string {
	return "history:animal:" + strconv.FormatInt(animalID, 10)
}

// localKey genera la clave del cache. El historial mezcla variantes y el id
// del servidor solo es único dentro de cada variante, así que la clave sale
// de (kind, animal, id). UUID determinístico: refrescar el mismo payload dos
// veces no produce filas nuevas.
func localKey(it Item) string {
	seed := string(it.Kind) + ":" + strconv.FormatInt(it.AnimalID, 10) + ":" + strconv.FormatInt(it.ID, 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// Observe emite el historial cacheado del animal y después cada cambio.
// Agenda un refresh en background colapsado por animal.
func (r *Repository) Observe(ctx context.Context, animalID int64) (<-chan []Item, error) {
	if animalID <= 0 {
		return nil, ErrInvalidInput
	}

	r.ScheduleRefresh(animalID)

	return live.Stream(ctx, r.hub, scopeKey(animalID), func(ctx context.Context) ([]Item, error) {
		return r.cache.ListByAnimal(ctx, animalID)
	})
}

// ScheduleRefresh agenda el refresh del animal en background, colapsado con
// los que estén en vuelo para el mismo scope.
func (r *Repository) ScheduleRefresh(animalID int64) {
	if animalID <= 0 {
		return
	}
	r.refresher.Schedule(scopeKey(animalID), func(ctx context.Context) error {
		return r.Refresh(ctx, animalID)
	})
}

// Refresh reemplaza el historial local del animal con el remoto.
// Items con kind/payload incoherente se descartan (y se loguean); si el
// payload entero es inutilizable, el cache queda como estaba.
func (r *Repository) Refresh(ctx context.Context, animalID int64) error {
	fetched, err := r.remote.FetchByAnimal(ctx, animalID)
	if err != nil {
		return err
	}

	items := make([]Item, 0, len(fetched))
	for _, it := range fetched {
		if err := it.Validate(); err != nil {
			r.log.Warn("dropping malformed history item", map[string]any{
				"animal_id": animalID,
				"kind":      string(it.Kind),
				"id":        it.ID,
			})
			continue
		}
		it.Key = localKey(it)
		items = append(items, it)
	}
	if len(items) == 0 {
		return ErrNoData
	}

	if err := r.cache.ReplaceByAnimal(ctx, animalID, items); err != nil {
		return err
	}
	r.hub.Notify(scopeKey(animalID))
	return nil
}

// Vaccines filtra las vacunas cacheadas del animal (para la pantalla de
// vacunas y el recordatorio diario). No dispara refresh.
func (r *Repository) Vaccines(ctx context.Context, animalID int64) ([]Item, error) {
	if animalID <= 0 {
		return nil, ErrInvalidInput
	}

	all, err := r.cache.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0)
	for _, it := range all {
		if it.Kind == KindVaccine {
			out = append(out, it)
		}
	}
	return out, nil
}
