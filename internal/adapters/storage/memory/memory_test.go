package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vetconnect-client/internal/domain/animals"
	"vetconnect-client/internal/domain/clinics"
	"vetconnect-client/internal/domain/consultations"
	"vetconnect-client/internal/domain/history"
	"vetconnect-client/internal/domain/vets"
)

func TestClinicCache_UpsertMergesById(t *testing.T) {
	cache := NewClinicCache()
	ctx := context.Background()

	if err := cache.Upsert(ctx, []clinics.Clinic{
		{ID: 1, Name: "Clinica Central"},
		{ID: 2, Name: "PetCare Norte"},
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	// segundo fetch: renombra la 1, trae una 3, no menciona la 2
	if err := cache.Upsert(ctx, []clinics.Clinic{
		{ID: 1, Name: "Clinica Central Renovada"},
		{ID: 3, Name: "VetSur"},
	}); err != nil {
		t.Fatalf("Upsert #2 returned error: %v", err)
	}

	got, err := cache.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 clinics after merge, got %d", len(got))
	}
	if got[0].Name != "Clinica Central Renovada" {
		t.Fatalf("expected updated name for clinic 1, got %q", got[0].Name)
	}
	if got[1].ID != 2 {
		t.Fatalf("clinic 2 must survive a fetch that omits it, got %+v", got[1])
	}
}

func TestVetCache_ListByClinic(t *testing.T) {
	cache := NewVetCache()
	ctx := context.Background()

	if err := cache.Upsert(ctx, []vets.Veterinarian{
		{ID: 1, Name: "Dra. Souza", ClinicID: 1},
		{ID: 2, Name: "Dr. Lima", ClinicID: 1},
		{ID: 3, Name: "Dra. Ferreyra", ClinicID: 2},
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, err := cache.ListByClinic(ctx, 1)
	if err != nil {
		t.Fatalf("ListByClinic returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 vets for clinic 1, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected vets ordered by id, got %+v", got)
	}
}

func TestConsultationCache_ReplaceIsScoped(t *testing.T) {
	cache := NewConsultationCache()
	ctx := context.Background()

	_ = cache.Insert(ctx, consultations.Consultation{ID: 1, UserID: 1, Status: consultations.StatusScheduled})
	_ = cache.Insert(ctx, consultations.Consultation{ID: 2, UserID: 2, Status: consultations.StatusScheduled})

	if err := cache.ReplaceByUser(ctx, 1, []consultations.Consultation{
		{ID: 3, UserID: 1, Status: consultations.StatusScheduled},
	}); err != nil {
		t.Fatalf("ReplaceByUser returned error: %v", err)
	}

	u1, _ := cache.ListByUser(ctx, 1)
	if len(u1) != 1 || u1[0].ID != 3 {
		t.Fatalf("expected user 1 scope replaced, got %v", u1)
	}

	// el scope de otro usuario no se toca
	u2, _ := cache.ListByUser(ctx, 2)
	if len(u2) != 1 || u2[0].ID != 2 {
		t.Fatalf("replace leaked into another user scope: %v", u2)
	}
}

func TestConsultationCache_InsertUpserts(t *testing.T) {
	cache := NewConsultationCache()
	ctx := context.Background()

	_ = cache.Insert(ctx, consultations.Consultation{ID: 1, UserID: 1, Status: consultations.StatusScheduled})
	_ = cache.Insert(ctx, consultations.Consultation{ID: 1, UserID: 1, Status: consultations.StatusCancelled})

	got, _ := cache.ListByUser(ctx, 1)
	if len(got) != 1 {
		t.Fatalf("expected upsert on same id, got %d rows", len(got))
	}
	if got[0].Status != consultations.StatusCancelled {
		t.Fatalf("expected updated status, got %s", got[0].Status)
	}
}

func TestAnimalCache_GetByIDAcrossOwners(t *testing.T) {
	cache := NewAnimalCache()
	ctx := context.Background()

	_ = cache.Insert(ctx, animals.Animal{ID: 10, UserID: 1, Name: "Luna"})
	_ = cache.Insert(ctx, animals.Animal{ID: 20, UserID: 2, Name: "Rocky"})

	a, err := cache.GetByID(ctx, 20)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if a.Name != "Rocky" {
		t.Fatalf("expected Rocky, got %q", a.Name)
	}

	if _, err := cache.GetByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// El replace de un scope es atómico: un lector concurrente ve el snapshot
// viejo o el nuevo, nunca la colección transitoriamente vacía.

func TestConsultationCache_ConcurrentReplaceNeverEmpty(t *testing.T) {
	cache := NewConsultationCache()
	ctx := context.Background()

	_ = cache.ReplaceByUser(ctx, 1, []consultations.Consultation{
		{ID: 1, UserID: 1, Status: consultations.StatusScheduled},
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			_ = cache.ReplaceByUser(ctx, 1, []consultations.Consultation{
				{ID: int64(i + 1), UserID: 1, Status: consultations.StatusScheduled},
			})
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			snap, err := cache.ListByUser(ctx, 1)
			if err != nil {
				t.Fatalf("ListByUser returned error: %v", err)
			}
			if len(snap) == 0 {
				t.Fatalf("reader observed an empty intermediate state during replace")
			}
		}
	}
}

func TestAnimalCache_ConcurrentReplaceNeverEmpty(t *testing.T) {
	cache := NewAnimalCache()
	ctx := context.Background()

	_ = cache.ReplaceByOwner(ctx, 1, []animals.Animal{{ID: 1, UserID: 1, Name: "Luna"}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			_ = cache.ReplaceByOwner(ctx, 1, []animals.Animal{
				{ID: int64(i + 1), UserID: 1, Name: "Luna"},
			})
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			snap, err := cache.ListByOwner(ctx, 1)
			if err != nil {
				t.Fatalf("ListByOwner returned error: %v", err)
			}
			if len(snap) == 0 {
				t.Fatalf("reader observed an empty intermediate state during replace")
			}
		}
	}
}

func TestHistoryCache_ConcurrentReplaceNeverEmpty(t *testing.T) {
	cache := NewHistoryCache()
	ctx := context.Background()

	seed := []history.Item{
		{Key: "seed", AnimalID: 9, Kind: history.KindVaccine, Vaccine: &history.Vaccine{VaccineType: "rabia"}},
	}
	_ = cache.ReplaceByAnimal(ctx, 9, seed)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			_ = cache.ReplaceByAnimal(ctx, 9, []history.Item{
				{Key: "k", ID: int64(i + 1), AnimalID: 9, Kind: history.KindVaccine, Vaccine: &history.Vaccine{VaccineType: "rabia"}},
			})
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			snap, err := cache.ListByAnimal(ctx, 9)
			if err != nil {
				t.Fatalf("ListByAnimal returned error: %v", err)
			}
			if len(snap) == 0 {
				t.Fatalf("reader observed an empty intermediate state during replace")
			}
		}
	}
}

func TestHistoryCache_ListOrdersNewestFirst(t *testing.T) {
	cache := NewHistoryCache()
	ctx := context.Background()

	d1 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	if err := cache.ReplaceByAnimal(ctx, 9, []history.Item{
		{Key: "a", AnimalID: 9, Kind: history.KindExam, Date: d1, Exam: &history.Exam{ExamType: "sangre"}},
		{Key: "b", AnimalID: 9, Kind: history.KindVaccine, Date: d2, Vaccine: &history.Vaccine{VaccineType: "rabia"}},
	}); err != nil {
		t.Fatalf("ReplaceByAnimal returned error: %v", err)
	}

	got, err := cache.ListByAnimal(ctx, 9)
	if err != nil {
		t.Fatalf("ListByAnimal returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if !got[0].Date.Equal(d2) {
		t.Fatalf("expected newest first, got %v", got[0].Date)
	}
}
