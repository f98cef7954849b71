package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/metrics"
)

// RecoverRunnable resumes instances that sit in a runnable state for longer
// than the configured staleness, e.g. approved but not granted when the
// process stopped. It returns how many instances were driven without error.
func (e *Engine) RecoverRunnable(ctx context.Context) (int, error) {
	staleBefore := e.now().Add(-e.cfg.StaleAfter)
	ids, err := e.instances.ListRunnable(ctx, staleBefore, e.cfg.RecoveryBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list runnable instances: %w", err)
	}

	recovered := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if _, err := e.Run(ctx, id); err != nil {
			e.log.WarnContext(ctx, "recovery run failed",
				slog.String("instance_id", id.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		recovered++
	}

	if recovered > 0 {
		metrics.RecordRecovered(recovered)
		e.log.InfoContext(ctx, "recovered instances", slog.Int("count", recovered), slog.Int("listed", len(ids)))
	}
	return recovered, ctx.Err()
}

// Sweep calls RecoverRunnable every RecoveryInterval until ctx is done.
func (e *Engine) Sweep(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.RecoveryInterval)
	defer ticker.Stop()

	e.log.InfoContext(ctx, "recovery sweeper started", slog.Duration("interval", e.cfg.RecoveryInterval))
	for {
		select {
		case <-ctx.Done():
			e.log.InfoContext(ctx, "recovery sweeper stopped")
			return nil
		case <-ticker.C:
			if _, err := e.RecoverRunnable(ctx); err != nil && ctx.Err() == nil {
				e.log.ErrorContext(ctx, "recovery sweep failed", slog.String("error", err.Error()))
			}
			if err := e.reportStates(ctx); err != nil && ctx.Err() == nil {
				e.log.WarnContext(ctx, "instance state gauge refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

var allStates = []domain.InstanceState{
	domain.StateDeriveOwnerNamespace, domain.StateFetchClassification, domain.StateRequestApproval,
	domain.StateAwaitingApproval, domain.StateGrant, domain.StateNotifyOwningDomain,
	domain.StateMarkRejected, domain.StateGranted, domain.StateRejected, domain.StateFailed,
}

// reportStates publishes how many instances sit in each state.
func (e *Engine) reportStates(ctx context.Context) error {
	counts, err := e.instances.CountByState(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(allStates))
	byName := make(map[string]int, len(counts))
	for i, st := range allStates {
		names[i] = st.String()
	}
	for st, n := range counts {
		byName[st.String()] = n
	}
	metrics.SetInstancesByState(names, byName)
	return nil
}
