package vetconnect

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vetconnect-client/internal/domain/consultations"
)

type consultationDTO struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	AnimalID    int64     `json:"animal_id"`
	ClinicID    int64     `json:"clinic_id"`
	VetID       int64     `json:"veterinarian_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (d consultationDTO) toDomain() consultations.Consultation {
	return consultations.Consultation{
		ID:          d.ID,
		UserID:      d.UserID,
		AnimalID:    d.AnimalID,
		ClinicID:    d.ClinicID,
		VetID:       d.VetID,
		Date:        d.Date,
		Time:        d.Time,
		Reason:      d.Reason,
		Status:      consultations.Status(d.Status),
		ScheduledAt: d.ScheduledAt,
	}
}

// FetchByUser trae las consultas del usuario.
func (c *Client) FetchByUser(ctx context.Context, userID int64) ([]consultations.Consultation, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	var out []consultationDTO
	path := fmt.Sprintf("/api/v1/users/%d/consultations", userID)
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, &out, auth); err != nil {
		return nil, wrap("vetconnect: fetch consultations", err)
	}

	result := make([]consultations.Consultation, 0, len(out))
	for _, d := range out {
		result = append(result, d.toDomain())
	}
	return result, nil
}

// Schedule agenda la consulta; el servidor asigna id, status y timestamp.
func (c *Client) Schedule(ctx context.Context, in consultations.ScheduleInput) (consultations.Consultation, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return consultations.Consultation{}, err
	}

	body := consultationDTO{
		UserID:   in.UserID,
		AnimalID: in.AnimalID,
		ClinicID: in.ClinicID,
		VetID:    in.VetID,
		Date:     in.Date,
		Time:     in.Time,
		Reason:   in.Reason,
	}

	var out consultationDTO
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/v1/consultations", body, &out, auth); err != nil {
		return consultations.Consultation{}, wrap("vetconnect: schedule consultation", err)
	}
	return out.toDomain(), nil
}

// Cancel cancela la consulta en el servidor.
func (c *Client) Cancel(ctx context.Context, id int64) error {
	auth, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/v1/consultations/%d", id)
	if err := c.http.DoJSON(ctx, http.MethodDelete, path, nil, nil, auth); err != nil {
		return wrap("vetconnect: cancel consultation", err)
	}
	return nil
}
