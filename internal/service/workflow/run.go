package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/metrics"
)

// errSuperseded means another driver persisted a transition first.
var errSuperseded = errors.New("instance advanced by another driver")

// Run drives the instance from its persisted state until it suspends for
// approval, terminates, or hits a non-fatal error. Fatal step errors move the
// instance to FAILED and are not returned. Resuming after a restart is Run.
func (e *Engine) Run(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	inst, err := e.instances.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load instance: %w", err)
	}

	for !inst.State.IsTerminal() && !inst.State.IsSuspended() {
		next, err := e.step(ctx, inst)
		switch {
		case err == nil:
			inst = next
		case errors.Is(err, errSuperseded):
			e.log.DebugContext(ctx, "instance superseded",
				slog.String("instance_id", id.String()),
				slog.String("state", inst.State.String()),
			)
			return e.instances.Get(ctx, id)
		case isFatal(err):
			failed, failErr := e.fail(ctx, inst, err)
			if failErr != nil {
				return inst, failErr
			}
			inst = failed
		default:
			return inst, fmt.Errorf("step %s: %w", inst.State, err)
		}
	}
	return inst, nil
}

// Resume is Run for an instance whose continuation was just redeemed.
func (e *Engine) Resume(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	return e.Run(ctx, id)
}

func (e *Engine) step(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	switch inst.State {
	case domain.StateDeriveOwnerNamespace:
		return e.deriveOwnerNamespace(ctx, inst)
	case domain.StateFetchClassification:
		return e.fetchClassification(ctx, inst)
	case domain.StateRequestApproval:
		return e.requestApproval(ctx, inst)
	case domain.StateGrant:
		return e.grant(ctx, inst)
	case domain.StateNotifyOwningDomain:
		return e.notifyOwningDomain(ctx, inst)
	case domain.StateMarkRejected:
		return e.markRejected(ctx, inst)
	default:
		return nil, fmt.Errorf("%w: no step for state %q", domain.ErrValidation, inst.State)
	}
}

// isFatal reports whether err ends the instance instead of pausing it.
func isFatal(err error) bool {
	return errors.Is(err, domain.ErrClassificationLookup) ||
		errors.Is(err, domain.ErrGrantFailure) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation)
}

// advance persists a copy of inst moved to state, with mutate applied to the
// copy's context. ctx may carry a transaction.
func (e *Engine) advance(
	ctx context.Context,
	inst *domain.WorkflowInstance,
	state domain.InstanceState,
	mutate func(c *domain.ShareContext),
) (*domain.WorkflowInstance, error) {
	next := *inst
	next.State = state
	if mutate != nil {
		mutate(&next.Context)
	}

	if err := e.instances.Transition(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, errSuperseded
		}
		return nil, fmt.Errorf("persist %s -> %s: %w", inst.State, state, err)
	}

	metrics.RecordTransition(inst.State.String(), state.String())
	e.log.DebugContext(ctx, "instance transitioned",
		slog.String("instance_id", inst.ID.String()),
		slog.String("from", inst.State.String()),
		slog.String("to", state.String()),
		slog.Int64("revision", next.Revision),
	)
	return &next, nil
}

func (e *Engine) fail(ctx context.Context, inst *domain.WorkflowInstance, cause error) (*domain.WorkflowInstance, error) {
	e.log.ErrorContext(ctx, "share workflow failed",
		slog.String("instance_id", inst.ID.String()),
		slog.String("state", inst.State.String()),
		slog.String("error", cause.Error()),
	)

	next := *inst
	next.State = domain.StateFailed
	next.Failure = fmt.Sprintf("%s: %s", inst.State, cause)

	// A request that went through approval left its mapping pending; release
	// it so the share can be requested again.
	c := inst.Context
	release := c.RequestID != "" && c.ResourceMappingKey != ""

	err := e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.instances.Transition(txCtx, &next); err != nil {
			return err
		}
		if !release {
			return nil
		}
		err := e.mappings.Upsert(txCtx, domain.ShareMapping{
			OwnerDomainID:      c.OwnerDomainID,
			ResourceMappingKey: c.ResourceMappingKey,
			TargetDomainID:     c.TargetDomainID,
			Mode:               c.Mode,
			Status:             domain.ShareStatusRejected,
		})
		if err != nil {
			return fmt.Errorf("release pending mapping: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return e.instances.Get(ctx, inst.ID)
		}
		return nil, fmt.Errorf("persist failure: %w", err)
	}
	metrics.RecordTransition(inst.State.String(), domain.StateFailed.String())
	return &next, nil
}
