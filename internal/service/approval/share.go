package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/workflow"
	"github.com/heartmarshall/domainshare-backend/pkg/ctxutil"
)

// SubmitShareRequest starts a share workflow on behalf of the target domain,
// which the caller must administer.
//
// The duplicate check reads the share mapping before the workflow writes
// it. Two concurrent submissions can both pass it and both open a pending
// request; that race is accepted.
func (s *Service) SubmitShareRequest(ctx context.Context, input ShareRequestInput) (*domain.WorkflowInstance, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	input.OwnerDomainID = strings.TrimSpace(input.OwnerDomainID)
	input.TargetDomainID = strings.TrimSpace(input.TargetDomainID)

	sel, err := input.Selector()
	if err != nil {
		return nil, err
	}
	start := workflow.StartInput{
		OwnerDomainID:  input.OwnerDomainID,
		TargetDomainID: input.TargetDomainID,
		RequestedBy:    p.ID,
		Selector:       sel,
	}
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if !p.Administers(input.TargetDomainID) {
		return nil, domain.ErrForbidden
	}

	key := domain.MappingKey(sel, input.TargetDomainID)
	existing, err := s.mappings.Get(ctx, input.OwnerDomainID, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("check share mapping: %w", err)
	case existing.Status == domain.ShareStatusPending:
		return nil, fmt.Errorf("share %s already awaiting approval: %w", key, domain.ErrConflict)
	case existing.Status == domain.ShareStatusShared:
		return nil, fmt.Errorf("share %s: %w", key, domain.ErrAlreadyExists)
	}

	inst, err := s.engine.Start(ctx, start)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "share request submitted",
		slog.String("instance_id", inst.ID.String()),
		slog.String("principal", p.ID),
		slog.String("state", inst.State.String()),
	)
	return inst, nil
}

// GetInstance returns a workflow instance whose owner or target domain the
// caller administers.
func (s *Service) GetInstance(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	inst, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Administers(inst.Context.OwnerDomainID) && !p.Administers(inst.Context.TargetDomainID) {
		return nil, domain.ErrForbidden
	}
	return inst, nil
}

// ListShares returns the sharing history of a domain the caller administers.
func (s *Service) ListShares(ctx context.Context, input ListSharesInput) ([]domain.ShareMapping, int, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}
	if !p.Administers(input.DomainID) {
		return nil, 0, domain.ErrForbidden
	}

	items, total, err := s.mappings.List(ctx, input.DomainID, pageSize(input.Limit), input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list shares: %w", err)
	}
	return items, total, nil
}
