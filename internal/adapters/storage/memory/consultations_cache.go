package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vetconnect-client/internal/domain/consultations"
)

type consultationCache struct {
	mu     sync.RWMutex
	byUser map[int64][]consultations.Consultation
}

func NewConsultationCache() consultations.Cache {
	return &consultationCache{
		byUser: make(map[int64][]consultations.Consultation),
	}
}

func (c *consultationCache) ListByUser(ctx context.Context, userID int64) ([]consultations.Consultation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]consultations.Consultation, len(c.byUser[userID]))
	copy(out, c.byUser[userID])

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReplaceByUser es el clear-then-insert del scope, atómico bajo el lock.
func (c *consultationCache) ReplaceByUser(ctx context.Context, userID int64, items []consultations.Consultation) error {
	cloned := make([]consultations.Consultation, len(items))
	copy(cloned, items)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.byUser[userID] = cloned
	return nil
}

func (c *consultationCache) Insert(ctx context.Context, item consultations.Consultation) error {
	if item.ID <= 0 {
		return errors.New("consultation id required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.byUser[item.UserID]
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = item
			return nil
		}
	}
	c.byUser[item.UserID] = append(list, item)
	return nil
}

func (c *consultationCache) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for user, list := range c.byUser {
		for i := range list {
			if list[i].ID == id {
				c.byUser[user] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}
