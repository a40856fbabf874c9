package consultations

import "time"

// Status es el estado de una consulta.
// @Enum scheduled, completed, cancelled
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Consultation es una consulta agendada en una clínica.
// Date y Time vienen como strings del servidor ("2026-09-03", "14:30");
// el cliente no los interpreta, solo los muestra y ordena.
type Consultation struct {
	ID       int64
	UserID   int64
	AnimalID int64
	ClinicID int64
	VetID    int64

	Date string
	Time string

	Reason string
	Status Status

	ScheduledAt time.Time
}
