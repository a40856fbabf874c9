package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vetconnect-client/internal/domain/animals"
)

type animalCache struct {
	mu      sync.RWMutex
	byOwner map[int64][]animals.Animal
}

func NewAnimalCache() animals.Cache {
	return &animalCache{
		byOwner: make(map[int64][]animals.Animal),
	}
}

func (c *animalCache) ListByOwner(ctx context.Context, userID int64) ([]animals.Animal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]animals.Animal, len(c.byOwner[userID]))
	copy(out, c.byOwner[userID])

	// orden estable por id para snapshots deterministas
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *animalCache) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, list := range c.byOwner {
		for _, a := range list {
			if a.ID == id {
				return a, nil
			}
		}
	}
	return animals.Animal{}, ErrNotFound
}

// ReplaceByOwner intercambia el scope completo bajo un solo lock:
// un lector concurrente ve el snapshot viejo o el nuevo, nunca uno vacío.
func (c *animalCache) ReplaceByOwner(ctx context.Context, userID int64, items []animals.Animal) error {
	cloned := make([]animals.Animal, len(items))
	copy(cloned, items)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.byOwner[userID] = cloned
	return nil
}

func (c *animalCache) Insert(ctx context.Context, a animals.Animal) error {
	if a.ID <= 0 {
		return errors.New("animal id required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.byOwner[a.UserID]
	for i := range list {
		if list[i].ID == a.ID {
			list[i] = a
			return nil
		}
	}
	c.byOwner[a.UserID] = append(list, a)
	return nil
}

func (c *animalCache) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for owner, list := range c.byOwner {
		for i := range list {
			if list[i].ID == id {
				c.byOwner[owner] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}
