package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"vetconnect-client/internal/platform/logger"
)

var (
	ErrInvalidConfig = errors.New("reminder: invalid task config")

	// ErrMissingParams: el ciclo corrió pero faltó algún parámetro
	// requerido (nombre del animal, tipo de vacuna o fecha). El run
	// reporta fallo, no se emite notificación.
	ErrMissingParams = errors.New("reminder: missing required params")
)

const defaultInterval = 24 * time.Hour

// Params son los datos que necesita el aviso de vacuna.
type Params struct {
	AnimalName  string
	VaccineType string
	DueDate     time.Time
}

// ParamSource provee los parámetros de cada corrida. Campos en cero
// significan "parámetro ausente".
type ParamSource interface {
	VaccineParams(ctx context.Context) (Params, error)
}

// ConnectivityFunc es la precondición de red del scheduler: si devuelve
// false la corrida se saltea (no cuenta como fallo).
type ConnectivityFunc func(ctx context.Context) bool

type TaskConfig struct {
	Name     string
	Interval time.Duration    // default 24h
	Online   ConnectivityFunc // nil => siempre online
	Source   ParamSource
	Notifier Notifier
}

// Scheduler corre tareas recurrentes con dedup por nombre.
type Scheduler struct {
	mu    sync.Mutex
	log   logger.Logger
	tasks map[string]*Task
}

func NewScheduler(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		log:   log.With(map[string]any{"component": "reminder"}),
		tasks: make(map[string]*Task),
	}
}

// Register arranca la tarea recurrente. Política keep-existing: si ya hay
// una tarea corriendo con ese nombre, se devuelve la existente y la config
// nueva se descarta.
func (s *Scheduler) Register(ctx context.Context, cfg TaskConfig) (*Task, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" || cfg.Source == nil || cfg.Notifier == nil {
		return nil, ErrInvalidConfig
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.tasks[cfg.Name]; ok {
		s.log.Debug("task already registered, keeping existing", map[string]any{"task": cfg.Name})
		return existing, nil
	}

	t := &Task{
		name: cfg.Name,
		cfg:  cfg,
		log:  s.log.With(map[string]any{"task": cfg.Name}),
		done: make(chan struct{}),
	}
	s.tasks[cfg.Name] = t

	go t.run(ctx, func() {
		s.mu.Lock()
		delete(s.tasks, cfg.Name)
		s.mu.Unlock()
	})

	s.log.Info("task registered", map[string]any{"task": cfg.Name, "interval": cfg.Interval.String()})
	return t, nil
}

// Task es una tarea recurrente en vuelo.
type Task struct {
	name string
	cfg  TaskConfig
	log  logger.Logger
	done chan struct{}

	mu      sync.Mutex
	lastErr error
}

// Done se cierra cuando la tarea terminó (ctx cancelado).
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// LastResult devuelve el error de la última corrida (nil si fue exitosa
// o todavía no corrió).
func (t *Task) LastResult() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

func (t *Task) run(ctx context.Context, onStop func()) {
	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()
	defer close(t.done)
	defer onStop()

	t.log.Debug("task running", nil)
	for {
		select {
		case <-ctx.Done():
			t.log.Info("task stopped", nil)
			return
		case <-ticker.C:
			err := t.runOnce(ctx)

			t.mu.Lock()
			t.lastErr = err
			t.mu.Unlock()

			if err != nil {
				t.log.Warn("run failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// runOnce ejecuta un ciclo completo: precondición de red, parámetros,
// notificación. Parámetro ausente => ErrMissingParams.
func (t *Task) runOnce(ctx context.Context) error {
	if t.cfg.Online != nil && !t.cfg.Online(ctx) {
		t.log.Debug("offline, skipping run", nil)
		return nil
	}

	p, err := t.cfg.Source.VaccineParams(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(p.AnimalName) == "" || strings.TrimSpace(p.VaccineType) == "" || p.DueDate.IsZero() {
		return ErrMissingParams
	}

	n := Notification{
		Title: "Vaccine reminder",
		Body:  fmt.Sprintf("%s is due for %s on %s", p.AnimalName, p.VaccineType, p.DueDate.Format("2006-01-02")),
	}
	if err := t.cfg.Notifier.Notify(ctx, n); err != nil {
		return err
	}

	t.log.Info("reminder sent", map[string]any{
		"animal":  p.AnimalName,
		"vaccine": p.VaccineType,
		"due":     p.DueDate.Format("2006-01-02"),
	})
	return nil
}
