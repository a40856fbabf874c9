package memory

import (
	"context"
	"sort"
	"sync"

	"vetconnect-client/internal/domain/history"
)

type historyCache struct {
	mu       sync.RWMutex
	byAnimal map[int64][]history.Item
}

func NewHistoryCache() history.Cache {
	return &historyCache{
		byAnimal: make(map[int64][]history.Item),
	}
}

func (c *historyCache) ListByAnimal(ctx context.Context, animalID int64) ([]history.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]history.Item, len(c.byAnimal[animalID]))
	copy(out, c.byAnimal[animalID])

	// más reciente primero, desempate por key para que sea estable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// ReplaceByAnimal intercambia el historial del animal bajo un solo lock.
func (c *historyCache) ReplaceByAnimal(ctx context.Context, animalID int64, items []history.Item) error {
	cloned := make([]history.Item, len(items))
	copy(cloned, items)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.byAnimal[animalID] = cloned
	return nil
}
