package postgres

import (
	"context"
	"database/sql"

	"vetconnect-client/internal/domain/clinics"
	"vetconnect-client/internal/domain/vets"
)

// ClinicCache y VetCache son data de referencia: upsert por id, sin borrado.

type ClinicCache struct {
	db *sql.DB
}

func NewClinicCache(db *sql.DB) *ClinicCache {
	return &ClinicCache{db: db}
}

func (c *ClinicCache) List(ctx context.Context) ([]clinics.Clinic, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name FROM clinics_cache ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clinics.Clinic, 0)
	for rows.Next() {
		var cl clinics.Clinic
		if err := rows.Scan(&cl.ID, &cl.Name); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (c *ClinicCache) Upsert(ctx context.Context, items []clinics.Clinic) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, cl := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clinics_cache (id, name)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		`, cl.ID, cl.Name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type VetCache struct {
	db *sql.DB
}

func NewVetCache(db *sql.DB) *VetCache {
	return &VetCache{db: db}
}

func (c *VetCache) List(ctx context.Context) ([]vets.Veterinarian, error) {
	return c.list(ctx, `
		SELECT id, name, clinic_id FROM veterinarians_cache ORDER BY id ASC
	`)
}

func (c *VetCache) ListByClinic(ctx context.Context, clinicID int64) ([]vets.Veterinarian, error) {
	return c.list(ctx, `
		SELECT id, name, clinic_id FROM veterinarians_cache
		WHERE clinic_id = $1
		ORDER BY id ASC
	`, clinicID)
}

func (c *VetCache) list(ctx context.Context, query string, args ...any) ([]vets.Veterinarian, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Veterinarian, 0)
	for rows.Next() {
		var v vets.Veterinarian
		if err := rows.Scan(&v.ID, &v.Name, &v.ClinicID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *VetCache) Upsert(ctx context.Context, items []vets.Veterinarian) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, v := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO veterinarians_cache (id, name, clinic_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				clinic_id = EXCLUDED.clinic_id
		`, v.ID, v.Name, v.ClinicID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
