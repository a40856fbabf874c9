package animals

import (
	"context"
	"time"
)

// Remote es la porción de la API remota que necesita este dominio.
type Remote interface {
	FetchByOwner(ctx context.Context, userID int64) ([]Animal, error)
	Create(ctx context.Context, in CreateInput) (Animal, error)
}

// Cache es la tabla local de animales, particionada por tutor.
// ReplaceByOwner es atómico respecto a lectores concurrentes: nunca se
// observa el scope transitoriamente vacío.
type Cache interface {
	ListByOwner(ctx context.Context, userID int64) ([]Animal, error)
	GetByID(ctx context.Context, id int64) (Animal, error)
	ReplaceByOwner(ctx context.Context, userID int64, items []Animal) error
	Insert(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id int64) error
}

type CreateInput struct {
	UserID     int64
	Name       string
	Species    Species
	Breed      string
	BirthDate  *time.Time
	PhotoURL   string
	ChipNumber string
}
