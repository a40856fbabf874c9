package live

import "sync"

// Hub reparte señales de cambio por scope key.
// Los repositorios notifican después de cada escritura local; los streams
// suscritos releen su snapshot al recibir la señal.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan struct{}]struct{}),
	}
}

// Subscribe registra un suscriptor para el scope. El canal tiene buffer 1:
// señales consecutivas sin consumir colapsan en una sola.
func (h *Hub) Subscribe(scope string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	set, ok := h.subs[scope]
	if !ok {
		set = make(map[chan struct{}]struct{})
		h.subs[scope] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[scope]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, scope)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Notify despierta a todos los suscriptores del scope. Nunca bloquea.
func (h *Hub) Notify(scope string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[scope] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
