package postgres

import (
	"context"
	"database/sql"

	"vetconnect-client/internal/domain/consultations"
)

type ConsultationCache struct {
	db *sql.DB
}

func NewConsultationCache(db *sql.DB) *ConsultationCache {
	return &ConsultationCache{db: db}
}

func (c *ConsultationCache) ListByUser(ctx context.Context, userID int64) ([]consultations.Consultation, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT
			id, user_id, animal_id, clinic_id, veterinarian_id,
			date, time, reason, status, scheduled_at
		FROM consultations_cache
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]consultations.Consultation, 0)
	for rows.Next() {
		var item consultations.Consultation
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.AnimalID,
			&item.ClinicID,
			&item.VetID,
			&item.Date,
			&item.Time,
			&item.Reason,
			&item.Status,
			&item.ScheduledAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ReplaceByUser corre el clear-then-insert del scope en una sola transacción:
// un lector concurrente ve el snapshot viejo o el nuevo, nunca el hueco.
func (c *ConsultationCache) ReplaceByUser(ctx context.Context, userID int64, items []consultations.Consultation) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM consultations_cache WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO consultations_cache (
				id, user_id, animal_id, clinic_id, veterinarian_id,
				date, time, reason, status, scheduled_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			item.ID,
			item.UserID,
			item.AnimalID,
			item.ClinicID,
			item.VetID,
			item.Date,
			item.Time,
			item.Reason,
			item.Status,
			item.ScheduledAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (c *ConsultationCache) Insert(ctx context.Context, item consultations.Consultation) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO consultations_cache (
			id, user_id, animal_id, clinic_id, veterinarian_id,
			date, time, reason, status, scheduled_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			time = EXCLUDED.time,
			reason = EXCLUDED.reason,
			status = EXCLUDED.status
	`,
		item.ID,
		item.UserID,
		item.AnimalID,
		item.ClinicID,
		item.VetID,
		item.Date,
		item.Time,
		item.Reason,
		item.Status,
		item.ScheduledAt,
	)
	return err
}

func (c *ConsultationCache) Delete(ctx context.Context, id int64) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM consultations_cache WHERE id = $1`, id)
	return err
}
