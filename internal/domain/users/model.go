package users

// AccountType distingue el tipo de cuenta registrado en VetConnect.
// @Enum tutor, veterinarian
type AccountType string

const (
	AccountTypeTutor AccountType = "tutor"
	AccountTypeVet   AccountType = "veterinarian"
)

// User es el perfil de usuario que devuelve la API.
// Token solo viene presente en respuestas de login/registro.
type User struct {
	ID    int64
	Name  string
	Email string
	Phone string

	AccountType AccountType

	Token *string
}
