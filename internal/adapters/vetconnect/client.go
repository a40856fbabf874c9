package vetconnect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vetconnect-client/internal/domain/animals"
	"vetconnect-client/internal/domain/clinics"
	"vetconnect-client/internal/domain/consultations"
	"vetconnect-client/internal/domain/history"
	"vetconnect-client/internal/domain/users"
	"vetconnect-client/internal/domain/vets"
	"vetconnect-client/internal/platform/httpclient"
	"vetconnect-client/internal/session"
)

var (
	ErrNotConfigured = errors.New("vetconnect client not configured")
	ErrNoSession     = errors.New("vetconnect: no authenticated session")
	ErrUnauthorized  = errors.New("vetconnect: unauthorized")
)

// Config del cliente VetConnect.
// BaseURL es la URL fija del deployment (viene de env en quien lo instancia).
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client habla con la API REST de VetConnect. Implementa los puertos Remote
// de cada dominio; el bearer token sale de la sesión en cada llamada.
type Client struct {
	http    *httpclient.Client
	session session.Store
}

// Asserts de los puertos que este adapter cubre.
var (
	_ users.Remote         = (*Client)(nil)
	_ animals.Remote       = (*Client)(nil)
	_ consultations.Remote = (*Client)(nil)
	_ clinics.Remote       = (*Client)(nil)
	_ vets.Remote          = (*Client)(nil)
	_ history.Remote       = (*Client)(nil)
)

func NewClient(cfg Config, sess session.Store) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, session: sess}, nil
}

// NewClientWithTransport inyecta un RoundTripper (tests).
func NewClientWithTransport(cfg Config, sess session.Store, tr http.RoundTripper) (*Client, error) {
	c, err := NewClient(cfg, sess)
	if err != nil {
		return nil, err
	}
	c.http = httpclient.NewWithTransport(cfg.Timeout, tr)
	c.http.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return c, nil
}

// bearer carga el token de la sesión; endpoints autenticados cortan con
// ErrNoSession si no hay login.
func (c *Client) bearer(ctx context.Context) (httpclient.Option, error) {
	sess, err := c.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.LoggedIn() {
		return nil, ErrNoSession
	}
	return httpclient.WithBearer(*sess.Token), nil
}

func wrap(op string, err error) error {
	switch httpclient.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w: %w", op, ErrUnauthorized, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
