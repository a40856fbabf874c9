package memory

import (
	"context"
	"sort"
	"sync"

	"vetconnect-client/internal/domain/clinics"
)

type clinicCache struct {
	mu   sync.RWMutex
	byID map[int64]clinics.Clinic
}

func NewClinicCache() clinics.Cache {
	return &clinicCache{
		byID: make(map[int64]clinics.Clinic),
	}
}

func (c *clinicCache) List(ctx context.Context) ([]clinics.Clinic, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]clinics.Clinic, 0, len(c.byID))
	for _, cl := range c.byID {
		out = append(out, cl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert mergea por id: data de referencia, no se borra lo que el servidor
// no devolvió esta vez.
func (c *clinicCache) Upsert(ctx context.Context, items []clinics.Clinic) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, cl := range items {
		c.byID[cl.ID] = cl
	}
	return nil
}
