package users

import (
	"context"
	"errors"
	"strings"

	"vetconnect-client/internal/platform/logger"
	"vetconnect-client/internal/session"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// Service maneja registro, login y logout contra la API, y mantiene la
// sesión + la fila local del usuario autenticado.
type Service struct {
	remote  Remote
	cache   Cache
	session session.Store
	log     logger.Logger
}

func NewService(remote Remote, cache Cache, sess session.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		remote:  remote,
		cache:   cache,
		session: sess,
		log:     log.With(map[string]any{"component": "users"}),
	}
}

// Register crea la cuenta en el servidor. El id lo asigna el servidor; la
// fila local se escribe solo si el alta remota fue exitosa.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") {
		return User{}, ErrInvalidInput
	}
	if in.AccountType == "" {
		in.AccountType = AccountTypeTutor
	}

	u, err := s.remote.Register(ctx, in)
	if err != nil {
		return User{}, err
	}

	cached := u
	cached.Token = nil
	if err := s.cache.Save(ctx, cached); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login autentica contra el servidor y persiste la sesión (token + user id).
// El animal seleccionado arranca ausente; se setea con SelectAnimal.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidInput
	}

	u, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	if u.Token == nil || strings.TrimSpace(*u.Token) == "" {
		return User{}, errors.New("login response missing token")
	}

	sess := session.Session{
		Token:    u.Token,
		UserID:   u.ID,
		AnimalID: session.AbsentID,
	}
	if err := s.session.Save(ctx, sess); err != nil {
		return User{}, err
	}

	// el token vive solo en el session store, la fila local va sin él
	cached := u
	cached.Token = nil
	if err := s.cache.Save(ctx, cached); err != nil {
		return User{}, err
	}

	s.log.Info("user logged in", map[string]any{"user_id": u.ID})
	return u, nil
}

// Logout limpia la sesión y borra la fila local del usuario: el cache es
// descartable y otro usuario puede loguearse después.
//
// La sesión se limpia primero: si el borrado local falla, el logout igual
// deja al usuario deslogueado (la fila huérfana es solo cache).
func (s *Service) Logout(ctx context.Context) error {
	sess, err := s.session.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	if sess.UserID > 0 {
		if err := s.cache.Delete(ctx, sess.UserID); err != nil {
			s.log.Warn("failed to delete cached user row", map[string]any{
				"user_id": sess.UserID,
				"error":   err.Error(),
			})
			return err
		}
	}
	s.log.Info("user logged out", nil)
	return nil
}

// CurrentUser devuelve la fila cacheada del usuario de la sesión.
func (s *Service) CurrentUser(ctx context.Context) (User, error) {
	sess, err := s.session.Load(ctx)
	if err != nil {
		return User{}, err
	}
	if !sess.LoggedIn() {
		return User{}, ErrNotLoggedIn
	}
	return s.cache.Get(ctx, sess.UserID)
}

// SelectAnimal fija el animal activo de la sesión.
func (s *Service) SelectAnimal(ctx context.Context, animalID int64) error {
	if animalID <= 0 {
		return ErrInvalidInput
	}
	sess, err := s.session.Load(ctx)
	if err != nil {
		return err
	}
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	sess.AnimalID = animalID
	return s.session.Save(ctx, sess)
}
