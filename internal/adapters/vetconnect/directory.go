package vetconnect

import (
	"context"
	"net/http"

	"vetconnect-client/internal/domain/clinics"
	"vetconnect-client/internal/domain/vets"
)

type clinicDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type vetDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ClinicID int64  `json:"clinic_id"`
}

// FetchClinics trae el catálogo de clínicas.
func (c *Client) FetchClinics(ctx context.Context) ([]clinics.Clinic, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	var out []clinicDTO
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/clinics", nil, &out, auth); err != nil {
		return nil, wrap("vetconnect: fetch clinics", err)
	}

	result := make([]clinics.Clinic, 0, len(out))
	for _, d := range out {
		result = append(result, clinics.Clinic{ID: d.ID, Name: d.Name})
	}
	return result, nil
}

// FetchVeterinarians trae el catálogo de veterinarios.
func (c *Client) FetchVeterinarians(ctx context.Context) ([]vets.Veterinarian, error) {
	auth, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	var out []vetDTO
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/veterinarians", nil, &out, auth); err != nil {
		return nil, wrap("vetconnect: fetch veterinarians", err)
	}

	result := make([]vets.Veterinarian, 0, len(out))
	for _, d := range out {
		result = append(result, vets.Veterinarian{ID: d.ID, Name: d.Name, ClinicID: d.ClinicID})
	}
	return result, nil
}
