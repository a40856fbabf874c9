package memory

import (
	"context"
	"errors"
	"sync"

	"vetconnect-client/internal/domain/users"
)

var (
	ErrNotFound = errors.New("not found")
)

type userCache struct {
	mu   sync.RWMutex
	byID map[int64]users.User
}

func NewUserCache() users.Cache {
	return &userCache{
		byID: make(map[int64]users.User),
	}
}

func (c *userCache) Get(ctx context.Context, id int64) (users.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.byID[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (c *userCache) Save(ctx context.Context, u users.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if u.ID <= 0 {
		return errors.New("user id required")
	}
	c.byID[u.ID] = u
	return nil
}

func (c *userCache) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.byID, id)
	return nil
}
