package memory

import (
	"context"
	"sort"
	"sync"

	"vetconnect-client/internal/domain/vets"
)

type vetCache struct {
	mu   sync.RWMutex
	byID map[int64]vets.Veterinarian
}

func NewVetCache() vets.Cache {
	return &vetCache{
		byID: make(map[int64]vets.Veterinarian),
	}
}

func (c *vetCache) List(ctx context.Context) ([]vets.Veterinarian, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]vets.Veterinarian, 0, len(c.byID))
	for _, v := range c.byID {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *vetCache) ListByClinic(ctx context.Context, clinicID int64) ([]vets.Veterinarian, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]vets.Veterinarian, 0)
	for _, v := range c.byID {
		if v.ClinicID == clinicID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert mergea por id.
func (c *vetCache) Upsert(ctx context.Context, items []vets.Veterinarian) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range items {
		c.byID[v.ID] = v
	}
	return nil
}
