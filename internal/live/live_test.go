package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vetconnect-client/internal/platform/logger"
)

func TestHub_NotifyCoalesces(t *testing.T) {
	hub := NewHub()
	sig, cancel := hub.Subscribe("scope-a")
	defer cancel()

	// señales consecutivas sin consumir colapsan en una
	hub.Notify("scope-a")
	hub.Notify("scope-a")
	hub.Notify("scope-a")

	select {
	case <-sig:
	default:
		t.Fatalf("expected a pending signal")
	}
	select {
	case <-sig:
		t.Fatalf("expected signals to coalesce into one")
	default:
	}
}

func TestHub_NotifyOtherScopeDoesNotWake(t *testing.T) {
	hub := NewHub()
	sig, cancel := hub.Subscribe("scope-a")
	defer cancel()

	hub.Notify("scope-b")

	select {
	case <-sig:
		t.Fatalf("signal leaked across scopes")
	default:
	}
}

func TestStream_EmitsInitialSnapshot(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := Stream(ctx, hub, "s", func(context.Context) ([]int, error) {
		return []int{}, nil
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	select {
	case snap := <-out:
		if len(snap) != 0 {
			t.Fatalf("expected empty initial snapshot, got %v", snap)
		}
	case <-time.After(time.Second):
		t.Fatalf("no initial emission")
	}
}

func TestStream_InitialReadErrorFails(t *testing.T) {
	hub := NewHub()

	_, err := Stream(context.Background(), hub, "s", func(context.Context) ([]int, error) {
		return nil, errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected error from failing initial read")
	}
}

func TestStream_EmitsOnChangeAndSuppressesEqual(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	data := []int{1}

	out, err := Stream(ctx, hub, "s", func(context.Context) ([]int, error) {
		mu.Lock()
		defer mu.Unlock()
		cp := make([]int, len(data))
		copy(cp, data)
		return cp, nil
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	<-out // inicial

	// notificación sin cambio real: no debe emitir
	hub.Notify("s")
	select {
	case snap := <-out:
		t.Fatalf("unexpected emission for unchanged snapshot: %v", snap)
	case <-time.After(100 * time.Millisecond):
	}

	// cambio real: emite el snapshot nuevo
	mu.Lock()
	data = []int{1, 2}
	mu.Unlock()
	hub.Notify("s")

	select {
	case snap := <-out:
		if len(snap) != 2 {
			t.Fatalf("expected snapshot [1 2], got %v", snap)
		}
	case <-time.After(time.Second):
		t.Fatalf("no emission after change")
	}
}

func TestStream_ClosesOnContextCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	out, err := Stream(ctx, hub, "s", func(context.Context) ([]int, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	<-out

	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel did not close after cancel")
	}
}

func TestRefresher_CoalescesPerScope(t *testing.T) {
	r := NewRefresher(logger.Nop())

	var mu sync.Mutex
	runs := 0
	started := make(chan struct{})
	release := make(chan struct{})

	// primer refresh queda colgado hasta release
	r.Schedule("scope", func(context.Context) error {
		close(started)
		<-release
		mu.Lock()
		runs++
		mu.Unlock()
		return nil
	})
	<-started

	// los siguientes se cuelgan del que está en vuelo
	for i := 0; i < 3; i++ {
		r.Schedule("scope", func(context.Context) error {
			mu.Lock()
			runs++
			mu.Unlock()
			return nil
		})
	}
	// margen para que los duplicados lleguen al vuelo antes de soltarlo
	time.Sleep(50 * time.Millisecond)

	close(release)
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	if runs != 1 {
		t.Fatalf("expected 1 run (coalesced), got %d", runs)
	}
}

func TestRefresher_ErrorsDoNotPropagate(t *testing.T) {
	r := NewRefresher(logger.Nop())

	r.Schedule("scope", func(context.Context) error {
		return errors.New("fetch failed")
	})
	r.Wait() // no panic, no error a nadie
}
