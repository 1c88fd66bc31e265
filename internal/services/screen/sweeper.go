package screen

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper unmounts idle sessions in the background
type Sweeper struct {
	store     *Store
	ttl       time.Duration
	pollEvery time.Duration
}

// NewSweeper creates a sweeper. pollEvery defaults to a quarter of ttl.
func NewSweeper(store *Store, ttl, pollEvery time.Duration) *Sweeper {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if pollEvery <= 0 {
		pollEvery = ttl / 4
	}
	return &Sweeper{store: store, ttl: ttl, pollEvery: pollEvery}
}

// Run sweeps until context is cancelled
func (w *Sweeper) Run(ctx context.Context) {
	log.Info().
		Dur("ttl", w.ttl).
		Dur("poll_every", w.pollEvery).
		Msg("session sweeper started")

	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session sweeper stopping")
			return
		case <-ticker.C:
			if n := w.store.UnmountIdle(w.ttl); n > 0 {
				log.Info().Int("unmounted", n).Int("remaining", w.store.Len()).Msg("swept idle sessions")
			}
		}
	}
}
