package vetconnect

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vetconnect-client/internal/domain/animals"
)

type animalDTO struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Species    string     `json:"species"`
	Breed      string     `json:"breed"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	ChipNumber string     `json:"chip_number,omitempty"`
	Code       string     `json:"code"`
	OwnerName  string     `json:"owner_name"`
	OwnerEmail string     `json:"owner_email"`
}

func (d animalDTO) toDomain() animals.Animal {
	return animals.Animal{
		ID:         d.ID,
		UserID:     d.UserID,
		Name:       d.Name,
		Species:    animals.Species(d.Species),
		Breed:      d.Breed,
		BirthDate:  d.BirthDate,
		PhotoURL:   d.PhotoURL,
		ChipNumber: d.ChipNumber,
		Code:       d.Code,
		OwnerName:  d.OwnerName,
		OwnerEmail: d.OwnerEmail,
	}
}

// FetchByOwner trae los animales del tutor.
func (c *Client) FetchByOwner(ctx context.Context, userID int64) ([]animals.Animal, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	var out []animalDTO
	path := fmt.Sprintf("/api/v1/users/%d/animals", userID)
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, &out, auth); err != nil {
		return nil, wrap("vetconnect: fetch animals", err)
	}

	result := make([]animals.Animal, 0, len(out))
	for _, d := range out {
		result = append(result, d.toDomain())
	}
	return result, nil
}

// Create registra el animal; el servidor asigna id y code, y devuelve la
// fila completa (con los datos del tutor desnormalizados).
func (c *Client) Create(ctx context.Context, in animals.CreateInput) (animals.Animal, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return animals.Animal{}, err
	}

	body := animalDTO{
		UserID:     in.UserID,
		Name:       in.Name,
		Species:    string(in.Species),
		Breed:      in.Breed,
		BirthDate:  in.BirthDate,
		PhotoURL:   in.PhotoURL,
		ChipNumber: in.ChipNumber,
	}

	var out animalDTO
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/v1/animals", body, &out, auth); err != nil {
		return animals.Animal{}, wrap("vetconnect: create animal", err)
	}
	return out.toDomain(), nil
}
