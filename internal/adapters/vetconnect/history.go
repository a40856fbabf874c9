package vetconnect

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vetconnect-client/internal/domain/history"
)

// historyDTO es el documento polimórfico del historial tal como lo manda el
// servidor: campos comunes + los de la variante que corresponda a "kind".
type historyDTO struct {
	ID       int64     `json:"id"`
	AnimalID int64     `json:"animal_id"`
	Kind     string    `json:"kind"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`

	// prescription
	Medication   string `json:"medication,omitempty"`
	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// exam
	ExamType string `json:"exam_type,omitempty"`
	Result   string `json:"result,omitempty"`
	Lab      string `json:"lab,omitempty"`

	// vaccine
	VaccineType string     `json:"vaccine_type,omitempty"`
	NextDue     *time.Time `json:"next_due,omitempty"`
	Batch       string     `json:"batch,omitempty"`
}

func (d historyDTO) toDomain() history.Item {
	it := history.Item{
		ID:       d.ID,
		AnimalID: d.AnimalID,
		Kind:     history.Kind(d.Kind),
		Name:     d.Name,
		Date:     d.Date,
	}

	switch it.Kind {
	case history.KindPrescription:
		it.Prescription = &history.Prescription{
			Medication:   d.Medication,
			Dosage:       d.Dosage,
			Instructions: d.Instructions,
		}
	case history.KindExam:
		it.Exam = &history.Exam{
			ExamType: d.ExamType,
			Result:   d.Result,
			Lab:      d.Lab,
		}
	case history.KindVaccine:
		it.Vaccine = &history.Vaccine{
			VaccineType: d.VaccineType,
			NextDue:     d.NextDue,
			Batch:       d.Batch,
		}
	}
	// kind desconocido queda sin payload; history.Item.Validate lo descarta

	return it
}

// FetchByAnimal trae el historial completo del animal (las tres variantes
// mezcladas, ordenadas por el servidor).
func (c *Client) FetchByAnimal(ctx context.Context, animalID int64) ([]history.Item, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	var out []historyDTO
	path := fmt.Sprintf("/api/v1/animals/%d/history", animalID)
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, &out, auth); err != nil {
		return nil, wrap("vetconnect: fetch history", err)
	}

	result := make([]history.Item, 0, len(out))
	for _, d := range out {
		result = append(result, d.toDomain())
	}
	return result, nil
}
