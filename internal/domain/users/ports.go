package users

import "context"

// Remote es la porción de la API remota que necesita este dominio.
type Remote interface {
	Login(ctx context.Context, email, password string) (User, error)
	Register(ctx context.Context, in RegisterInput) (User, error)
}

// Cache es la tabla local de usuarios.
type Cache interface {
	Get(ctx context.Context, id int64) (User, error)
	Save(ctx context.Context, u User) error
	Delete(ctx context.Context, id int64) error
}

type RegisterInput struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	AccountType AccountType
}
