package live

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"vetconnect-client/internal/platform/logger"
)

// Refresher agenda refreshes en background, colapsados por scope key.
//
// Cada Observe agenda uno; si ya hay un refresh en vuelo para el mismo scope,
// el nuevo se cuelga del resultado del que corre en vez de duplicar el fetch.
// El refresh corre con context.Background(): desmontar la pantalla que lo
// originó no lo cancela, y escribir al cache igual es inofensivo.
//
// Los errores no se propagan a nadie: el read-path degrada a cache y el fallo
// solo queda en el log.
type Refresher struct {
	log   logger.Logger
	group singleflight.Group
	wg    sync.WaitGroup
}

func NewRefresher(log logger.Logger) *Refresher {
	if log == nil {
		log = logger.Nop()
	}
	return &Refresher{log: log}
}

// Schedule dispara fn para el scope sin bloquear al caller.
func (r *Refresher) Schedule(scope string, fn func(context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_, _, _ = r.group.Do(scope, func() (any, error) {
			if err := fn(context.Background()); err != nil {
				r.log.Warn("refresh failed, serving cached data", map[string]any{
					"scope": scope,
					"error": err.Error(),
				})
			}
			return nil, nil
		})
	}()
}

// Wait drena los refreshes en vuelo. Para shutdown ordenado y tests.
func (r *Refresher) Wait() {
	r.wg.Wait()
}
