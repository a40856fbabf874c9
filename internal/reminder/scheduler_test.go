package reminder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"vetconnect-client/internal/platform/logger"
)

// -------------------------
// Fakes
// -------------------------

type testSource struct {
	mu     sync.Mutex
	params Params
	err    error
}

func (s *testSource) VaccineParams(ctx context.Context) (Params, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params, s.err
}

type testNotifier struct {
	mu   sync.Mutex
	sent []Notification
	got  chan Notification
}

func newTestNotifier() *testNotifier {
	return &testNotifier{got: make(chan Notification, 16)}
}

func (n *testNotifier) Notify(ctx context.Context, notif Notification) error {
	n.mu.Lock()
	n.sent = append(n.sent, notif)
	n.mu.Unlock()
	n.got <- notif
	return nil
}

func (n *testNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func waitForResult(t *testing.T, task *Task, want error) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("task never reported result %v (last: %v)", want, task.LastResult())
		case <-time.After(5 * time.Millisecond):
			got := task.LastResult()
			if want == nil && got == nil {
				return
			}
			if want != nil && errors.Is(got, want) {
				return
			}
		}
	}
}

// -------------------------
// Tests
// -------------------------

func TestScheduler_Register_InvalidConfig(t *testing.T) {
	sched := NewScheduler(logger.Nop())
	ctx := context.Background()

	cases := []TaskConfig{
		{Name: "", Source: &testSource{}, Notifier: newTestNotifier()},
		{Name: "x", Source: nil, Notifier: newTestNotifier()},
		{Name: "x", Source: &testSource{}, Notifier: nil},
	}
	for _, cfg := range cases {
		if _, err := sched.Register(ctx, cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %+v, got %v", cfg, err)
		}
	}
}

func TestScheduler_Register_KeepsExistingTask(t *testing.T) {
	sched := NewScheduler(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := newTestNotifier()
	t1, err := sched.Register(ctx, TaskConfig{
		Name: "vaccine-reminder", Interval: time.Hour,
		Source: &testSource{}, Notifier: first,
	})
	if err != nil {
		t.Fatalf("Register #1 returned error: %v", err)
	}

	// mismo nombre, config distinta: se descarta y vuelve la existente
	t2, err := sched.Register(ctx, TaskConfig{
		Name: "vaccine-reminder", Interval: time.Minute,
		Source: &testSource{}, Notifier: newTestNotifier(),
	})
	if err != nil {
		t.Fatalf("Register #2 returned error: %v", err)
	}
	if t1 != t2 {
		t.Fatalf("expected keep-existing dedup to return the same task")
	}
}

func TestTask_RunNotifiesWithParams(t *testing.T) {
	sched := NewScheduler(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	source := &testSource{params: Params{AnimalName: "Luna", VaccineType: "rabia", DueDate: due}}
	notifier := newTestNotifier()

	task, err := sched.Register(ctx, TaskConfig{
		Name: "vaccine-reminder", Interval: 10 * time.Millisecond,
		Source: source, Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	select {
	case n := <-notifier.got:
		if n.Title != "Vaccine reminder" {
			t.Fatalf("unexpected title %q", n.Title)
		}
		if !strings.Contains(n.Body, "Luna") || !strings.Contains(n.Body, "rabia") || !strings.Contains(n.Body, "2026-09-15") {
			t.Fatalf("unexpected body %q", n.Body)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no notification")
	}
	waitForResult(t, task, nil)
}

func TestTask_MissingParamsIsFailure(t *testing.T) {
	sched := NewScheduler(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// fecha presente pero animal/vacuna ausentes
	source := &testSource{params: Params{DueDate: time.Now()}}
	notifier := newTestNotifier()

	task, err := sched.Register(ctx, TaskConfig{
		Name: "vaccine-reminder", Interval: 10 * time.Millisecond,
		Source: source, Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	waitForResult(t, task, ErrMissingParams)
	if notifier.count() != 0 {
		t.Fatalf("missing params must not notify, got %d notifications", notifier.count())
	}
}

func TestTask_OfflineSkipsRun(t *testing.T) {
	sched := NewScheduler(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	source := &testSource{params: Params{AnimalName: "Luna", VaccineType: "rabia", DueDate: due}}
	notifier := newTestNotifier()

	_, err := sched.Register(ctx, TaskConfig{
		Name: "vaccine-reminder", Interval: 10 * time.Millisecond,
		Online:   func(context.Context) bool { return false },
		Source:   source,
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// varios ticks offline: ninguna notificación, y el skip no cuenta como fallo
	time.Sleep(100 * time.Millisecond)
	if notifier.count() != 0 {
		t.Fatalf("offline run must skip, got %d notifications", notifier.count())
	}
}

func TestTask_StopsOnContextCancel(t *testing.T) {
	sched := NewScheduler(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	task, err := sched.Register(ctx, TaskConfig{
		Name: "vaccine-reminder", Interval: time.Hour,
		Source: &testSource{}, Notifier: newTestNotifier(),
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cancel()
	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("task did not stop after cancel")
	}

	// el nombre quedó libre: un Register nuevo crea otra tarea
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	t2, err := sched.Register(ctx2, TaskConfig{
		Name: "vaccine-reminder", Interval: time.Hour,
		Source: &testSource{}, Notifier: newTestNotifier(),
	})
	if err != nil {
		t.Fatalf("Register after stop returned error: %v", err)
	}
	if t2 == task {
		t.Fatalf("expected a fresh task after the old one stopped")
	}
}
