package session

import "context"

// AbsentID es el sentinel para "sin usuario/animal seleccionado".
const AbsentID int64 = -1

// Session es el contexto de sesión del proceso: token de auth, usuario
// logueado y animal seleccionado. Se construye una vez en el arranque y se
// pasa por referencia a los colaboradores que lo necesitan; no hay estado
// global ambiente.
//
// Vive hasta que un logout explícito lo limpia.
type Session struct {
	Token    *string `json:"token"`
	UserID   int64   `json:"user_id"`
	AnimalID int64   `json:"animal_id"`
}

// Empty devuelve la sesión ausente: token nil, ids en -1.
func Empty() Session {
	return Session{UserID: AbsentID, AnimalID: AbsentID}
}

// LoggedIn indica si hay un usuario autenticado.
func (s Session) LoggedIn() bool {
	return s.Token != nil && *s.Token != "" && s.UserID > 0
}

// Store es el key-value persistente de sesión.
// Load sobre un store vacío (o tras Clear) devuelve Empty(), no error.
// Clear es completo e idempotente.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
