package reminder

import (
	"context"
	"time"

	"vetconnect-client/internal/domain/animals"
	"vetconnect-client/internal/domain/history"
	"vetconnect-client/internal/session"
)

const defaultLookahead = 7 * 24 * time.Hour

// VaccineParamSource deriva los parámetros del aviso desde el cache local:
// el animal activo de la sesión y su próxima vacuna dentro de la ventana.
// Trabaja solo sobre el cache (el refresh ya lo mantiene otro); si algo no
// está cacheado, los parámetros salen ausentes y la corrida reporta fallo.
type VaccineParamSource struct {
	Session   session.Store
	Animals   animals.Cache
	History   history.Cache
	Lookahead time.Duration

	now func() time.Time
}

func NewVaccineParamSource(sess session.Store, animalsCache animals.Cache, historyCache history.Cache) *VaccineParamSource {
	return &VaccineParamSource{
		Session:   sess,
		Animals:   animalsCache,
		History:   historyCache,
		Lookahead: defaultLookahead,
		now:       time.Now,
	}
}

func (s *VaccineParamSource) VaccineParams(ctx context.Context) (Params, error) {
	sess, err := s.Session.Load(ctx)
	if err != nil {
		return Params{}, err
	}
	if sess.AnimalID <= 0 {
		return Params{}, nil
	}

	animal, err := s.Animals.GetByID(ctx, sess.AnimalID)
	if err != nil {
		// animal no cacheado: parámetro ausente, no error
		return Params{}, nil
	}

	items, err := s.History.ListByAnimal(ctx, sess.AnimalID)
	if err != nil {
		return Params{}, err
	}

	lookahead := s.Lookahead
	if lookahead <= 0 {
		lookahead = defaultLookahead
	}
	now := s.now()
	limit := now.Add(lookahead)

	// próxima vacuna con vencimiento dentro de la ventana
	var next *history.Item
	for i := range items {
		it := items[i]
		if it.Kind != history.KindVaccine || it.Vaccine == nil || it.Vaccine.NextDue == nil {
			continue
		}
		due := *it.Vaccine.NextDue
		if due.Before(now) || due.After(limit) {
			continue
		}
		if next == nil || due.Before(*next.Vaccine.NextDue) {
			next = &items[i]
		}
	}
	if next == nil {
		return Params{}, nil
	}

	return Params{
		AnimalName:  animal.Name,
		VaccineType: next.Vaccine.VaccineType,
		DueDate:     *next.Vaccine.NextDue,
	}, nil
}
