package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// requestApproval opens an approval request and suspends the instance. The
// continuation, the request row, the counter increment, the pending mapping
// and the move to AWAITING_APPROVAL commit together. A transaction conflict
// retries the whole group with a fresh request id.
func (e *Engine) requestApproval(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	sel, err := inst.Context.Selector()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	retries := max(e.cfg.MaxConflictRetries, 0)
	for attempt := 0; ; attempt++ {
		next, err := e.openRequest(ctx, inst, sel)
		if err == nil {
			e.log.InfoContext(ctx, "approval requested",
				slog.String("instance_id", inst.ID.String()),
				slog.String("owner_domain_id", next.Context.OwnerDomainID),
				slog.String("request_id", next.Context.RequestID),
			)
			return next, nil
		}
		if !errors.Is(err, domain.ErrTransactionConflict) || attempt >= retries {
			return nil, err
		}

		e.log.WarnContext(ctx, "approval request conflict, retrying",
			slog.String("instance_id", inst.ID.String()),
			slog.Int("attempt", attempt+1),
		)
		if err := sleepCtx(ctx, e.retryDelay<<attempt); err != nil {
			return nil, err
		}
	}
}

func (e *Engine) openRequest(ctx context.Context, inst *domain.WorkflowInstance, sel domain.Selector) (*domain.WorkflowInstance, error) {
	c := inst.Context
	var next *domain.WorkflowInstance

	err := e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		token, err := e.tokens.Issue(txCtx, inst.ID)
		if err != nil {
			return fmt.Errorf("issue continuation: %w", err)
		}

		createdAt := e.now().UTC()
		req := domain.ApprovalRequest{
			OwnerDomainID:      c.OwnerDomainID,
			RequestID:          domain.NewRequestID(createdAt),
			Mode:               c.Mode,
			ContinuationToken:  token,
			TargetDomainID:     c.TargetDomainID,
			SourceResourceKey:  sel.ResourceKey(),
			ResourceMappingKey: c.ResourceMappingKey,
			InstanceID:         inst.ID,
			CreatedAt:          createdAt,
		}
		if err := e.ledger.CreateRequest(txCtx, req); err != nil {
			return fmt.Errorf("create approval request: %w", err)
		}
		if _, err := e.ledger.AddPending(txCtx, c.OwnerDomainID, 1); err != nil {
			return fmt.Errorf("increment pending counter: %w", err)
		}

		err = e.mappings.Upsert(txCtx, domain.ShareMapping{
			OwnerDomainID:      c.OwnerDomainID,
			ResourceMappingKey: c.ResourceMappingKey,
			TargetDomainID:     c.TargetDomainID,
			Mode:               c.Mode,
			Status:             domain.ShareStatusPending,
		})
		if err != nil {
			return fmt.Errorf("mark mapping pending: %w", err)
		}

		next, err = e.advance(txCtx, inst, domain.StateAwaitingApproval, func(sc *domain.ShareContext) {
			sc.RequestID = req.RequestID
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// ApplyOutcome moves an instance waiting for approval to GRANT or
// MARK_REJECTED. It persists the transition only; drive the instance with
// Resume afterwards. ctx may carry the caller's transaction.
func (e *Engine) ApplyOutcome(ctx context.Context, id uuid.UUID, outcome domain.Outcome) (*domain.WorkflowInstance, error) {
	inst, err := e.instances.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load instance: %w", err)
	}
	if !inst.State.IsSuspended() {
		return nil, fmt.Errorf("instance %s in state %s: %w", id, inst.State, domain.ErrConflict)
	}

	state := domain.StateMarkRejected
	if outcome.Success {
		state = domain.StateGrant
	}

	next, err := e.advance(ctx, inst, state, func(c *domain.ShareContext) {
		c.ReviewOutput = outcome.Output
	})
	if errors.Is(err, errSuperseded) {
		return nil, fmt.Errorf("instance %s: %w", id, domain.ErrConflict)
	}
	return next, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
