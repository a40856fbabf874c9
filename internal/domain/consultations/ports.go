package consultations

import "context"

// Remote es la porción de la API remota que necesita este dominio.
type Remote interface {
	FetchByUser(ctx context.Context, userID int64) ([]Consultation, error)
	Schedule(ctx context.Context, in ScheduleInput) (Consultation, error)
	Cancel(ctx context.Context, id int64) error
}

// Cache es la tabla local de consultas, particionada por usuario.
// ReplaceByUser es clear-then-insert atómico para el scope: un lector
// concurrente nunca ve la colección transitoriamente vacía.
type Cache interface {
	ListByUser(ctx context.Context, userID int64) ([]Consultation, error)
	ReplaceByUser(ctx context.Context, userID int64, items []Consultation) error
	Insert(ctx context.Context, c Consultation) error
	Delete(ctx context.Context, id int64) error
}

type ScheduleInput struct {
	UserID   int64
	AnimalID int64
	ClinicID int64
	VetID    int64
	Date     string
	Time     string
	Reason   string
}
