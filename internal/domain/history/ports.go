package history

import "context"

// Remote es la porción de la API remota que necesita este dominio.
// FetchByAnimal devuelve las tres variantes mezcladas, ya mapeadas a Item
// (sin Key: la clave local la asigna el repositorio al guardar).
type Remote interface {
	FetchByAnimal(ctx context.Context, animalID int64) ([]Item, error)
}

// Cache es la tabla local genérica de historial, particionada por animal y
// keyeada por Item.Key. ReplaceByAnimal es atómico para el scope.
type Cache interface {
	ListByAnimal(ctx context.Context, animalID int64) ([]Item, error)
	ReplaceByAnimal(ctx context.Context, animalID int64, items []Item) error
}
