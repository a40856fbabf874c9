package apistub

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Stub in-memory del backend VetConnect para dev y tests end-to-end.
// Emula el contrato JSON de la API real; no valida nada más que lo mínimo
// para que el cliente se pueda ejercitar contra él.

type stubUser struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AccountType string `json:"account_type"`
	Password    string `json:"-"`
}

type stubAnimal struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Species    string     `json:"species"`
	Breed      string     `json:"breed"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	ChipNumber string     `json:"chip_number,omitempty"`
	Code       string     `json:"code"`
	OwnerName  string     `json:"owner_name"`
	OwnerEmail string     `json:"owner_email"`
}

type stubConsultation struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	AnimalID    int64     `json:"animal_id"`
	ClinicID    int64     `json:"clinic_id"`
	VetID       int64     `json:"veterinarian_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type stubClinic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type stubVet struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ClinicID int64  `json:"clinic_id"`
}

// HistoryDoc es el documento polimórfico del historial (campos de variante
// planos, como los manda el backend real).
type HistoryDoc struct {
	ID       int64     `json:"id"`
	AnimalID int64     `json:"animal_id"`
	Kind     string    `json:"kind"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`

	Medication   string `json:"medication,omitempty"`
	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	ExamType string `json:"exam_type,omitempty"`
	Result   string `json:"result,omitempty"`
	Lab      string `json:"lab,omitempty"`

	VaccineType string     `json:"vaccine_type,omitempty"`
	NextDue     *time.Time `json:"next_due,omitempty"`
	Batch       string     `json:"batch,omitempty"`
}

type store struct {
	mu sync.Mutex

	nextID        int64
	usersByEmail  map[string]*stubUser
	tokens        map[string]int64 // token -> user id
	animals       map[int64]*stubAnimal
	consultations map[int64]*stubConsultation
	clinics       []stubClinic
	vets          []stubVet
	history       map[int64][]HistoryDoc // por animal

	now func() time.Time
}

func newStore() *store {
	return &store{
		nextID:        1000,
		usersByEmail:  make(map[string]*stubUser),
		tokens:        make(map[string]int64),
		animals:       make(map[int64]*stubAnimal),
		consultations: make(map[int64]*stubConsultation),
		clinics: []stubClinic{
			{ID: 1, Name: "Clinica Central"},
			{ID: 2, Name: "PetCare Norte"},
		},
		vets: []stubVet{
			{ID: 1, Name: "Dra. Souza", ClinicID: 1},
			{ID: 2, Name: "Dr. Lima", ClinicID: 1},
			{ID: 3, Name: "Dra. Ferreyra", ClinicID: 2},
		},
		history: make(map[int64][]HistoryDoc),
		now:     time.Now,
	}
}

func (s *store) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) register(name, email, phone, password, accountType string) (*stubUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.usersByEmail[email]; exists {
		return nil, false
	}

	u := &stubUser{
		ID:          s.newID(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		AccountType: accountType,
		Password:    password,
	}
	s.usersByEmail[email] = u
	return u, true
}

func (s *store) login(email, password string) (*stubUser, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usersByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok || u.Password != password {
		return nil, "", false
	}

	token := uuid.NewString()
	s.tokens[token] = u.ID
	return u, token, true
}

func (s *store) userForToken(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[token]
	return id, ok
}
