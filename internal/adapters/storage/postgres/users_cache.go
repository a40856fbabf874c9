package postgres

import (
	"context"
	"database/sql"

	"vetconnect-client/internal/domain/users"
)

type UserCache struct {
	db *sql.DB
}

func NewUserCache(db *sql.DB) *UserCache {
	return &UserCache{db: db}
}

// El token NO se persiste acá: vive solo en el session store.

func (c *UserCache) Get(ctx context.Context, id int64) (users.User, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, account_type
		FROM users_cache
		WHERE id = $1
	`, id)

	var u users.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.AccountType); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (c *UserCache) Save(ctx context.Context, u users.User) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO users_cache (id, name, email, phone, account_type)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			account_type = EXCLUDED.account_type
	`, u.ID, u.Name, u.Email, u.Phone, u.AccountType)
	return err
}

func (c *UserCache) Delete(ctx context.Context, id int64) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM users_cache WHERE id = $1`, id)
	return err
}
