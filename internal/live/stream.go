package live

import (
	"context"
	"reflect"
)

// Stream abre una secuencia viva sobre el snapshot cacheado de un scope.
//
// Emite de inmediato el contenido actual (posiblemente vacío) y después un
// snapshot nuevo cada vez que el hub señala el scope y el contenido releído
// difiere del último emitido. El canal se cierra cuando ctx se cancela.
//
// La lectura inicial falla => error; fallos de relectura posteriores no
// cortan la secuencia (el local store se trata como fiable, un fallo ahí es
// inesperado y simplemente omite la emisión).
func Stream[T any](ctx context.Context, hub *Hub, scope string, read func(context.Context) ([]T, error)) (<-chan []T, error) {
	// Suscribirse antes de la lectura inicial: una escritura entre lectura y
	// suscripción no puede perderse (a lo sumo provoca una relectura igual,
	// que se suprime).
	sig, cancel := hub.Subscribe(scope)

	first, err := read(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan []T, 1)
	out <- first

	go func() {
		defer close(out)
		defer cancel()

		last := first
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				cur, err := read(ctx)
				if err != nil {
					continue
				}
				if snapshotsEqual(last, cur) {
					continue
				}
				last = cur
				select {
				case out <- cur:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func snapshotsEqual[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}
