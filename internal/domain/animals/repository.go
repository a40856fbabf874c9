package animals

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"vetconnect-client/internal/live"
	"vetconnect-client/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData distingue "la respuesta vino sin filas" de un fetch fallido.
	// En el read-path ambos degradan a cache; solo cambia el log.
	ErrNoData = errors.New("remote returned no data")
)

// Repository sirve animales desde el cache local y lo mantiene eventualmente
// consistente con el servidor (stale-while-revalidate).
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
		log:       log.With(map[string]any{"component": "animals"}),
	}
}

func scopeKey(userID int64) string {
	return "animals:owner:" + strconv.FormatInt(userID, 10)
}

// Observe emite el snapshot cacheado del tutor y después cada cambio.
// Agenda un refresh en background (colapsado por scope); el caller no se
// entera del resultado salvo por una emisión nueva si el cache cambió.
func (r *Repository) Observe(ctx context.Context, userID int64) (<-chan []Animal, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}

	r.ScheduleRefresh(userID)

	return live.Stream(ctx, r.hub, scopeKey(userID), func(ctx context.Context) ([]Animal, error) {
		return r.cache.ListByOwner(ctx, userID)
	})
}

// ScheduleRefresh agenda el refresh del tutor en background, colapsado con
// los que estén en vuelo para el mismo scope.
func (r *Repository) ScheduleRefresh(userID int64) {
	if userID <= 0 {
		return
	}
	r.refresher.Schedule(scopeKey(userID), func(ctx context.Context) error {
		return r.Refresh(ctx, userID)
	})
}

// Refresh trae los animales del tutor y reemplaza el scope local.
// Payload vacío o fetch fallido dejan el cache como está.
func (r *Repository) Refresh(ctx context.Context, userID int64) error {
	fetched, err := r.remote.FetchByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if len(fetched) == 0 {
		return ErrNoData
	}

	if err := r.cache.ReplaceByOwner(ctx, userID, fetched); err != nil {
		return err
	}
	r.hub.Notify(scopeKey(userID))
	return nil
}

// Get devuelve la fila cacheada de un animal.
func (r *Repository) Get(ctx context.Context, id int64) (Animal, error) {
	if id <= 0 {
		return Animal{}, ErrInvalidInput
	}
	return r.cache.GetByID(ctx, id)
}

// Create da de alta el animal en el servidor y refleja la fila local solo
// si el alta remota fue exitosa. Sin escritura especulativa.
func (r *Repository) Create(ctx context.Context, in CreateInput) (Animal, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.UserID <= 0 || in.Name == "" || in.Species == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := r.remote.Create(ctx, in)
	if err != nil {
		return Animal{}, err
	}

	if err := r.cache.Insert(ctx, a); err != nil {
		return Animal{}, err
	}
	r.hub.Notify(scopeKey(a.UserID))
	return a, nil
}
