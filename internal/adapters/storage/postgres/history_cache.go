package postgres

import (
	"context"
	"database/sql"

	"vetconnect-client/internal/domain/history"
)

// HistoryCache guarda la union {prescription, exam, vaccine} en una sola
// tabla genérica: columnas comunes + columnas de variante nullable, keyeada
// por la clave local que asigna el repositorio.
type HistoryCache struct {
	db *sql.DB
}

func NewHistoryCache(db *sql.DB) *HistoryCache {
	return &HistoryCache{db: db}
}

const historyColumns = `
	key, id, animal_id, kind, name, date,
	medication, dosage, instructions,
	exam_type, result, lab,
	vaccine_type, next_due, batch
`

func (c *HistoryCache) ListByAnimal(ctx context.Context, animalID int64) ([]history.Item, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM history_cache
		WHERE animal_id = $1
		ORDER BY date DESC, key ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Item, 0)
	for rows.Next() {
		var it history.Item
		var medication, dosage, instructions sql.NullString
		var examType, result, lab sql.NullString
		var vaccineType, batch sql.NullString
		var nextDue sql.NullTime

		if err := rows.Scan(
			&it.Key, &it.ID, &it.AnimalID, &it.Kind, &it.Name, &it.Date,
			&medication, &dosage, &instructions,
			&examType, &result, &lab,
			&vaccineType, &nextDue, &batch,
		); err != nil {
			return nil, err
		}

		switch it.Kind {
		case history.KindPrescription:
			it.Prescription = &history.Prescription{
				Medication:   medication.String,
				Dosage:       dosage.String,
				Instructions: instructions.String,
			}
		case history.KindExam:
			it.Exam = &history.Exam{
				ExamType: examType.String,
				Result:   result.String,
				Lab:      lab.String,
			}
		case history.KindVaccine:
			v := &history.Vaccine{
				VaccineType: vaccineType.String,
				Batch:       batch.String,
			}
			if nextDue.Valid {
				t := nextDue.Time
				v.NextDue = &t
			}
			it.Vaccine = v
		}

		out = append(out, it)
	}
	return out, rows.Err()
}

// ReplaceByAnimal corre clear-then-insert del scope en una transacción.
func (c *HistoryCache) ReplaceByAnimal(ctx context.Context, animalID int64, items []history.Item) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history_cache WHERE animal_id = $1`, animalID); err != nil {
		return err
	}

	for _, it := range items {
		var medication, dosage, instructions sql.NullString
		var examType, result, lab sql.NullString
		var vaccineType, batch sql.NullString
		var nextDue sql.NullTime

		switch it.Kind {
		case history.KindPrescription:
			medication = nullStr(it.Prescription.Medication)
			dosage = nullStr(it.Prescription.Dosage)
			instructions = nullStr(it.Prescription.Instructions)
		case history.KindExam:
			examType = nullStr(it.Exam.ExamType)
			result = nullStr(it.Exam.Result)
			lab = nullStr(it.Exam.Lab)
		case history.KindVaccine:
			vaccineType = nullStr(it.Vaccine.VaccineType)
			batch = nullStr(it.Vaccine.Batch)
			if it.Vaccine.NextDue != nil {
				nextDue = sql.NullTime{Time: *it.Vaccine.NextDue, Valid: true}
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO history_cache (`+historyColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		`,
			it.Key, it.ID, it.AnimalID, it.Kind, it.Name, it.Date,
			medication, dosage, instructions,
			examType, result, lab,
			vaccineType, nextDue, batch,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
