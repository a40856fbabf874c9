package animals

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// Animal es el perfil de un animal registrado por un tutor.
// OwnerName/OwnerEmail vienen desnormalizados del servidor para display.
type Animal struct {
	ID     int64
	UserID int64

	Name    string
	Species Species
	Breed   string

	BirthDate  *time.Time
	PhotoURL   string
	ChipNumber string

	// Code es el código único del animal (lo emite el servidor al crearlo).
	Code string

	OwnerName  string
	OwnerEmail string
}
