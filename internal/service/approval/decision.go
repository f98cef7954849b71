package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/metrics"
	"github.com/heartmarshall/domainshare-backend/pkg/ctxutil"
)

// SubmitDecision applies the caller's verdict on a pending request. The
// caller must administer the owning domain.
func (s *Service) SubmitDecision(ctx context.Context, input DecisionInput) (*domain.WorkflowInstance, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if !p.Administers(input.OwnerDomainID) {
		s.log.WarnContext(ctx, "decision by non-owner rejected",
			slog.String("principal", p.ID),
			slog.String("owner_domain_id", input.OwnerDomainID),
		)
		return nil, domain.ErrForbidden
	}

	return s.ProcessApproval(ctx, input.OwnerDomainID, input.RequestID, input.Action, p.ID)
}

// ProcessApproval resolves one approval request. Deleting the request,
// decrementing the counter, marking a rejected mapping, redeeming the
// continuation and moving the instance out of AWAITING_APPROVAL commit
// together. The instance is then driven to its terminal state.
//
// A request that no longer exists returns domain.ErrNotFound, so a second
// decision on the same request fails.
func (s *Service) ProcessApproval(
	ctx context.Context,
	ownerDomainID, requestID string,
	action domain.DecisionAction,
	reviewer string,
) (*domain.WorkflowInstance, error) {
	req, err := s.ledger.GetRequest(ctx, ownerDomainID, requestID)
	if err != nil {
		return nil, fmt.Errorf("get approval request: %w", err)
	}

	outcome := domain.OutcomeFor(action, reviewer)
	var (
		instanceID uuid.UUID
		applied    *domain.WorkflowInstance
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ledger.DeleteRequest(txCtx, ownerDomainID, requestID); err != nil {
			return fmt.Errorf("delete approval request: %w", err)
		}
		if _, err := s.ledger.AddPending(txCtx, ownerDomainID, -1); err != nil {
			return fmt.Errorf("decrement pending counter: %w", err)
		}

		if action == domain.DecisionReject {
			err := s.mappings.Upsert(txCtx, domain.ShareMapping{
				OwnerDomainID:      ownerDomainID,
				ResourceMappingKey: req.ResourceMappingKey,
				TargetDomainID:     req.TargetDomainID,
				Mode:               req.Mode,
				Status:             domain.ShareStatusRejected,
			})
			if err != nil {
				return fmt.Errorf("mark mapping rejected: %w", err)
			}
		}

		id, err := s.tokens.Redeem(txCtx, req.ContinuationToken, outcome)
		if errors.Is(err, domain.ErrInvalidToken) {
			return fmt.Errorf("approval request %s: %w: %w", requestID, domain.ErrNotFound, err)
		}
		if err != nil {
			return fmt.Errorf("redeem continuation: %w", err)
		}
		if id != req.InstanceID {
			return fmt.Errorf("continuation resumes %s, request names %s: %w", id, req.InstanceID, domain.ErrConflict)
		}
		instanceID = id

		applied, err = s.engine.ApplyOutcome(txCtx, id, outcome)
		if err != nil {
			return fmt.Errorf("apply outcome: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDecision(action.String())
	s.log.InfoContext(ctx, "approval decided",
		slog.String("owner_domain_id", ownerDomainID),
		slog.String("request_id", requestID),
		slog.String("action", action.String()),
		slog.String("reviewer", reviewer),
		slog.String("instance_id", instanceID.String()),
	)

	// The decision is committed; finishing the instance must not depend on
	// the caller staying connected.
	final, err := s.engine.Resume(context.WithoutCancel(ctx), instanceID)
	if err != nil {
		s.log.WarnContext(ctx, "resume after decision failed",
			slog.String("instance_id", instanceID.String()),
			slog.String("error", err.Error()),
		)
		return applied, nil
	}
	return final, nil
}
