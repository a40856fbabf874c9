package consultations

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
	ErrNoData       = errors.New("remote returned no data")
)

// Repository orquesta el cache local de consultas y su refresh remoto.
//
// Lecturas: siempre desde el cache, sin bloquear en red. Escrituras: primero
// el servidor, y el espejo local solo si el servidor confirmó.
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
		log:       log.With(map[string]any{"component": "consultations"}),
	}
}

func scopeKey(userID int64) string {
	return "consultations:user:" + strconv.FormatInt(userID, 10)
}

// Observe emite el snapshot cacheado del usuario (posiblemente vacío) y
// después un snapshot nuevo por cada cambio del scope. Agenda un refresh en
// background, colapsado con los que ya estén en vuelo para el mismo usuario.
func (r *Repository) Observe(ctx context.Context, userID int64) (<-chan []Consultation, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}

	r.ScheduleRefresh(userID)

	return live.Stream(ctx, r.hub, scopeKey(userID), func(ctx context.Context) ([]Consultation, error) {
		return r.cache.ListByUser(ctx, userID)
	})
}

// ScheduleRefresh agenda el refresh del usuario en background, colapsado con
// los que estén en vuelo para el mismo scope.
func (r *Repository) ScheduleRefresh(userID int64) {
	if userID <= 0 {
		return
	}
	r.refresher.Schedule(scopeKey(userID), func(ctx context.Context) error {
		return r.Refresh(ctx, userID)
	})
}

// Refresh reemplaza el scope del usuario con lo que diga el servidor.
// Fallo de transporte, status no-2xx o payload vacío dejan el cache intacto;
// el Refresher ya se encarga de loguearlo.
func (r *Repository) Refresh(ctx context.Context, userID int64) error {
	fetched, err := r.remote.FetchByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(fetched) == 0 {
		return ErrNoData
	}

	if err := r.cache.ReplaceByUser(ctx, userID, fetched); err != nil {
		return err
	}
	r.hub.Notify(scopeKey(userID))
	return nil
}

// Schedule agenda la consulta en el servidor y la inserta en el cache del
// usuario sin esperar otro refresh. El error de vuelta lleva el status HTTP
// o la causa de transporte; la UI decide cómo mostrarlo.
func (r *Repository) Schedule(ctx context.Context, in ScheduleInput) (Consultation, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.UserID <= 0 || in.AnimalID <= 0 || in.ClinicID <= 0 || in.VetID <= 0 {
		return Consultation{}, ErrInvalidInput
	}
	if in.Date == "" || in.Time == "" {
		return Consultation{}, ErrInvalidInput
	}

	c, err := r.remote.Schedule(ctx, in)
	if err != nil {
		return Consultation{}, err
	}

	if err := r.cache.Insert(ctx, c); err != nil {
		return Consultation{}, err
	}
	r.hub.Notify(scopeKey(c.UserID))
	return c, nil
}

// Cancel cancela en el servidor y borra la fila local solo si el servidor
// confirmó. Si el servidor falla, el cache queda como estaba.
func (r *Repository) Cancel(ctx context.Context, id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return ErrInvalidInput
	}

	if err := r.remote.Cancel(ctx, id); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, id); err != nil {
		return err
	}
	r.hub.Notify(scopeKey(userID))
	return nil
}
