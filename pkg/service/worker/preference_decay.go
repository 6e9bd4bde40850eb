package worker

import (
	"context"
	"time"

	"github.com/vigil-lab/argus/pkg/usecase"
	"github.com/vigil-lab/argus/pkg/utils/logging"
)

// PreferenceDecayWorker periodically decays the confidence of preferences
// that have not been reinforced within the staleness window, so old signals
// lose authority instead of lingering at full weight forever.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - The scope list is fixed at startup; a new scope is picked up on restart
type PreferenceDecayWorker struct {
	preferences *usecase.PreferenceUseCase
	scopes      []string
	interval    time.Duration
	staleAfter  time.Duration
	factor      float64
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewPreferenceDecayWorker creates a new worker sweeping the given scopes
func NewPreferenceDecayWorker(preferences *usecase.PreferenceUseCase, scopes []string, interval, staleAfter time.Duration, factor float64) *PreferenceDecayWorker {
	return &PreferenceDecayWorker{
		preferences: preferences,
		scopes:      scopes,
		interval:    interval,
		staleAfter:  staleAfter,
		factor:      factor,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the background decay loop without blocking server startup
func (w *PreferenceDecayWorker) Start(ctx context.Context) error {
	logging.Default().Info("Preference decay worker starting",
		"interval", w.interval.String(),
		"stale_after", w.staleAfter.String(),
		"factor", w.factor,
		"scopes", len(w.scopes))

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *PreferenceDecayWorker) Stop() {
	logging.Default().Info("Preference decay worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Preference decay worker stopped")
}

func (w *PreferenceDecayWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Preference decay worker context cancelled")
			return
		}
	}
}

// sweep runs one decay cycle over all configured scopes. A failing scope is
// logged and skipped; the next interval retries it.
func (w *PreferenceDecayWorker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.staleAfter)

	for _, scope := range w.scopes {
		n, err := w.preferences.Decay(ctx, scope, cutoff, w.factor)
		if err != nil {
			logging.Default().Error("Preference decay failed (will retry next interval)",
				"scope", scope,
				"error", err.Error())
			continue
		}
		if n > 0 {
			logging.Default().Info("Decayed stale preferences",
				"scope", scope,
				"count", n)
		}
	}
}
