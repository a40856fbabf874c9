package postgres

import (
	"context"
	"database/sql"
	"time"

	"vetconnect-client/internal/domain/animals"
)

type AnimalCache struct {
	db *sql.DB
}

func NewAnimalCache(db *sql.DB) *AnimalCache {
	return &AnimalCache{db: db}
}

const animalColumns = `
	id, user_id, name, species, breed,
	birth_date, photo_url, chip_number, code,
	owner_name, owner_email
`

func scanAnimal(scan func(...any) error) (animals.Animal, error) {
	var a animals.Animal
	var bd sql.NullTime
	err := scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&bd,
		&a.PhotoURL,
		&a.ChipNumber,
		&a.Code,
		&a.OwnerName,
		&a.OwnerEmail,
	)
	if err != nil {
		return animals.Animal{}, err
	}
	if bd.Valid {
		t := bd.Time
		a.BirthDate = &t
	}
	return a, nil
}

func (c *AnimalCache) ListByOwner(ctx context.Context, userID int64) ([]animals.Animal, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals_cache
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (c *AnimalCache) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals_cache
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row.Scan)
	if err == sql.ErrNoRows {
		return animals.Animal{}, ErrNotFound
	}
	return a, err
}

// ReplaceByOwner corre clear-then-insert del scope en una transacción.
func (c *AnimalCache) ReplaceByOwner(ctx context.Context, userID int64, items []animals.Animal) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM animals_cache WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, a := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO animals_cache (`+animalColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			a.ID, a.UserID, a.Name, a.Species, a.Breed,
			toNullDate(a.BirthDate), a.PhotoURL, a.ChipNumber, a.Code,
			a.OwnerName, a.OwnerEmail,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (c *AnimalCache) Insert(ctx context.Context, a animals.Animal) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO animals_cache (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			species = EXCLUDED.species,
			breed = EXCLUDED.breed,
			birth_date = EXCLUDED.birth_date,
			photo_url = EXCLUDED.photo_url,
			chip_number = EXCLUDED.chip_number
	`,
		a.ID, a.UserID, a.Name, a.Species, a.Breed,
		toNullDate(a.BirthDate), a.PhotoURL, a.ChipNumber, a.Code,
		a.OwnerName, a.OwnerEmail,
	)
	return err
}

func (c *AnimalCache) Delete(ctx context.Context, id int64) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM animals_cache WHERE id = $1`, id)
	return err
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
