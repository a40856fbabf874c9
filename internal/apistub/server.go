package apistub

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server es el stub HTTP del backend. Exponerlo como struct permite
// sembrar datos (historial, consultas) desde tests y desde cmd/apistub.
type Server struct {
	store *store
}

func NewServer() *Server {
	return &Server{store: newStore()}
}

// SeedHistory agrega documentos de historial para un animal.
func (s *Server) SeedHistory(animalID int64, docs ...HistoryDoc) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.history[animalID] = append(s.store.history[animalID], docs...)
}

// Handler arma el router chi con todas las rutas del stub.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/api/v1/auth/register", s.handleRegister)
	r.Post("/api/v1/auth/login", s.handleLogin)

	// Rutas autenticadas
	r.Group(func(ar chi.Router) {
		ar.Use(s.requireToken)

		ar.Get("/api/v1/users/{userID}/animals", s.handleListAnimals)
		ar.Post("/api/v1/animals", s.handleCreateAnimal)

		ar.Get("/api/v1/users/{userID}/consultations", s.handleListConsultations)
		ar.Post("/api/v1/consultations", s.handleCreateConsultation)
		ar.Delete("/api/v1/consultations/{id}", s.handleCancelConsultation)

		ar.Get("/api/v1/clinics", s.handleListClinics)
		ar.Get("/api/v1/veterinarians", s.handleListVets)

		ar.Get("/api/v1/animals/{animalID}/history", s.handleListHistory)
	})

	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if _, ok := s.store.userForToken(token); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Password    string `json:"password"`
		AccountType string `json:"account_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	u, ok := s.store.register(req.Name, req.Email, req.Phone, req.Password, req.AccountType)
	if !ok {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	u, token, ok := s.store.login(req.Email, req.Password)
	if !ok {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	resp := struct {
		stubUser
		Token string `json:"token"`
	}{stubUser: *u, Token: token}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]*stubAnimal, 0)
	for _, a := range s.store.animals {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAnimal(w http.ResponseWriter, r *http.Request) {
	var req stubAnimal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "user_id and name required", http.StatusBadRequest)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	req.ID = s.store.newID()
	req.Code = uuid.NewString()
	for _, u := range s.store.usersByEmail {
		if u.ID == req.UserID {
			req.OwnerName = u.Name
			req.OwnerEmail = u.Email
			break
		}
	}
	s.store.animals[req.ID] = &req
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleListConsultations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]*stubConsultation, 0)
	for _, c := range s.store.consultations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req stubConsultation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || req.AnimalID <= 0 || req.Date == "" || req.Time == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	req.ID = s.store.newID()
	req.Status = "scheduled"
	req.ScheduledAt = s.store.now().UTC().Truncate(time.Second)
	s.store.consultations[req.ID] = &req
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleCancelConsultation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.consultations[id]; !ok {
		http.Error(w, "consultation not found", http.StatusNotFound)
		return
	}
	delete(s.store.consultations, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListClinics(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, s.store.clinics)
}

func (s *Server) handleListVets(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, s.store.vets)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	animalID, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid animal id", http.StatusBadRequest)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	docs := s.store.history[animalID]
	if docs == nil {
		docs = []HistoryDoc{}
	}
	writeJSON(w, http.StatusOK, docs)
}
