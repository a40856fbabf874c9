package vetconnect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vetconnect-client/internal/apistub"
	"vetconnect-client/internal/domain/animals"
	"vetconnect-client/internal/domain/consultations"
	"vetconnect-client/internal/domain/history"
	"vetconnect-client/internal/domain/users"
	"vetconnect-client/internal/platform/httpclient"
	"vetconnect-client/internal/session"
)

// Tests de integración del cliente contra el stub del backend.

type env struct {
	stub   *apistub.Server
	client *Client
	store  session.Store
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	stub := apistub.NewServer()
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	client, err := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return &env{stub: stub, client: client, store: store}
}

// registerAndLogin deja una sesión autenticada en el store.
func (e *env) registerAndLogin(t *testing.T) users.User {
	t.Helper()
	ctx := context.Background()

	_, err := e.client.Register(ctx, users.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "1234", Password: "secret",
		AccountType: users.AccountTypeTutor,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	u, err := e.client.Login(ctx, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if u.Token == nil || *u.Token == "" {
		t.Fatalf("expected token on login")
	}

	if err := e.store.Save(ctx, session.Session{Token: u.Token, UserID: u.ID, AnimalID: session.AbsentID}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return u
}

func TestClient_LoginBadCredentials(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.client.Login(context.Background(), "nobody@example.com", "nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if httpclient.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 on error chain, got %d", httpclient.StatusOf(err))
	}
}

func TestClient_AuthedCallWithoutSession(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.client.FetchByOwner(context.Background(), 1)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestClient_AuthedCallWithBadToken(t *testing.T) {
	e := newTestEnv(t)

	bad := "not-a-real-token"
	_ = e.store.Save(context.Background(), session.Session{Token: &bad, UserID: 1, AnimalID: session.AbsentID})

	_, err := e.client.FetchClinics(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_AnimalsRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	u := e.registerAndLogin(t)
	ctx := context.Background()

	created, err := e.client.Create(ctx, animals.CreateInput{
		UserID: u.ID, Name: "Luna", Species: animals.SpeciesDog, Breed: "mestiza",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID <= 0 || created.Code == "" {
		t.Fatalf("expected server-assigned id and code, got %+v", created)
	}
	if created.OwnerName != "Ana" || created.OwnerEmail != "ana@example.com" {
		t.Fatalf("expected denormalized owner fields, got %+v", created)
	}

	list, err := e.client.FetchByOwner(ctx, u.ID)
	if err != nil {
		t.Fatalf("FetchByOwner returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected the created animal, got %v", list)
	}
	if list[0].Species != animals.SpeciesDog {
		t.Fatalf("expected species dog, got %s", list[0].Species)
	}
}

func TestClient_ConsultationsRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	u := e.registerAndLogin(t)
	ctx := context.Background()

	c, err := e.client.Schedule(ctx, consultations.ScheduleInput{
		UserID: u.ID, AnimalID: 2, ClinicID: 1, VetID: 1,
		Date: "2026-09-03", Time: "14:30", Reason: "control",
	})
	if err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	if c.Status != consultations.StatusScheduled {
		t.Fatalf("expected scheduled status, got %s", c.Status)
	}

	list, err := e.client.FetchByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("FetchByUser returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("expected the scheduled consultation, got %v", list)
	}

	if err := e.client.Cancel(ctx, c.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	// cancelar dos veces: el servidor responde 404 y el error lo expone
	err = e.client.Cancel(ctx, c.ID)
	if httpclient.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 on double cancel, got %v", err)
	}
}

func TestClient_DirectoryCatalogs(t *testing.T) {
	e := newTestEnv(t)
	e.registerAndLogin(t)
	ctx := context.Background()

	cls, err := e.client.FetchClinics(ctx)
	if err != nil {
		t.Fatalf("FetchClinics returned error: %v", err)
	}
	if len(cls) == 0 {
		t.Fatalf("expected seeded clinics")
	}

	vs, err := e.client.FetchVeterinarians(ctx)
	if err != nil {
		t.Fatalf("FetchVeterinarians returned error: %v", err)
	}
	if len(vs) == 0 {
		t.Fatalf("expected seeded veterinarians")
	}
	if vs[0].ClinicID == 0 {
		t.Fatalf("expected vets linked to a clinic, got %+v", vs[0])
	}
}

func TestClient_HistoryMapsVariants(t *testing.T) {
	e := newTestEnv(t)
	e.registerAndLogin(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	e.stub.SeedHistory(42,
		apistub.HistoryDoc{ID: 1, AnimalID: 42, Kind: "vaccine", Name: "Rabia", Date: due.AddDate(-1, 0, 0), VaccineType: "rabia", NextDue: &due, Batch: "L-9"},
		apistub.HistoryDoc{ID: 1, AnimalID: 42, Kind: "prescription", Name: "Amoxi", Date: due.AddDate(0, -1, 0), Medication: "amoxicilina", Dosage: "250mg", Instructions: "cada 12h"},
		apistub.HistoryDoc{ID: 2, AnimalID: 42, Kind: "exam", Name: "Sangre", Date: due.AddDate(0, -2, 0), ExamType: "hemograma", Result: "normal", Lab: "LabVet"},
	)

	items, err := e.client.FetchByAnimal(ctx, 42)
	if err != nil {
		t.Fatalf("FetchByAnimal returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 history items, got %d", len(items))
	}

	byKind := map[history.Kind]history.Item{}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			t.Fatalf("mapped item failed validation: %v (%+v)", err, it)
		}
		byKind[it.Kind] = it
	}

	v := byKind[history.KindVaccine]
	if v.Vaccine == nil || v.Vaccine.VaccineType != "rabia" || v.Vaccine.NextDue == nil || !v.Vaccine.NextDue.Equal(due) {
		t.Fatalf("vaccine payload mismapped: %+v", v.Vaccine)
	}
	p := byKind[history.KindPrescription]
	if p.Prescription == nil || p.Prescription.Medication != "amoxicilina" {
		t.Fatalf("prescription payload mismapped: %+v", p.Prescription)
	}
	x := byKind[history.KindExam]
	if x.Exam == nil || x.Exam.Lab != "LabVet" {
		t.Fatalf("exam payload mismapped: %+v", x.Exam)
	}
}

func TestClient_RegisterDuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	in := users.RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret", AccountType: users.AccountTypeTutor}
	if _, err := e.client.Register(ctx, in); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	_, err := e.client.Register(ctx, in)
	if httpclient.StatusOf(err) != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %v", err)
	}
}
