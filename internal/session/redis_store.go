package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKey = "vetconnect:session:current"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore crea un Store sobre Redis. La sesión es una sola por proceso,
// así que vive bajo una key fija como JSON.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Load(ctx context.Context) (Session, error) {
	data, err := r.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Empty(), nil
		}
		return Empty(), fmt.Errorf("session: load: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		// payload corrupto: tratamos como sesión ausente, es solo cache de auth
		return Empty(), nil
	}
	return s, nil
}

func (r *redisStore) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := r.client.Set(ctx, redisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
