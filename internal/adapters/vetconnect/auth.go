package vetconnect

import (
	"context"
	"net/http"

	"vetconnect-client/internal/domain/users"
)

type userDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	AccountType string  `json:"account_type"`
	Token       *string `json:"token,omitempty"`
}

func (d userDTO) toDomain() users.User {
	return users.User{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		AccountType: users.AccountType(d.AccountType),
		Token:       d.Token,
	}
}

// Login autentica y devuelve el usuario con su token de sesión.
func (c *Client) Login(ctx context.Context, email, password string) (users.User, error) {
	in := map[string]string{
		"email":    email,
		"password": password,
	}

	var out userDTO
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/v1/auth/login", in, &out); err != nil {
		return users.User{}, wrap("vetconnect: login", err)
	}
	return out.toDomain(), nil
}

// Register da de alta la cuenta; el servidor asigna el id.
func (c *Client) Register(ctx context.Context, in users.RegisterInput) (users.User, error) {
	body := map[string]string{
		"name":         in.Name,
		"email":        in.Email,
		"phone":        in.Phone,
		"password":     in.Password,
		"account_type": string(in.AccountType),
	}

	var out userDTO
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/v1/auth/register", body, &out); err != nil {
		return users.User{}, wrap("vetconnect: register", err)
	}
	return out.toDomain(), nil
}
