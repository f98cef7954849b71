package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// OwnerNamespace is the owning domain's catalog namespace for a share:
// "{db}_{owner}" for a resource, the owner itself for a tag set.
func OwnerNamespace(c domain.ShareContext) (string, error) {
	sel, err := c.Selector()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	switch s := sel.(type) {
	case domain.ResourceSelector:
		return s.Database + "_" + c.OwnerDomainID, nil
	case domain.TagSelector:
		return c.OwnerDomainID, nil
	default:
		return "", fmt.Errorf("%w: unsupported selector %T", domain.ErrValidation, sel)
	}
}

func (e *Engine) deriveOwnerNamespace(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	ns, err := OwnerNamespace(inst.Context)
	if err != nil {
		return nil, err
	}
	return e.advance(ctx, inst, domain.StateFetchClassification, func(c *domain.ShareContext) {
		c.OwnerNamespace = ns
	})
}

func (e *Engine) fetchClassification(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	sel, err := inst.Context.Selector()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	owner := inst.Context.OwnerDomainID

	var cls *domain.Classification
	switch s := sel.(type) {
	case domain.ResourceSelector:
		cls, err = e.catalog.GetClassification(ctx, owner, s)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: resource %s not found in domain %s", domain.ErrClassificationLookup, s.ResourceKey(), owner)
		}
		if err != nil {
			if errors.Is(err, domain.ErrClassificationLookup) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrClassificationLookup, err)
		}
	case domain.TagSelector:
		cls = &domain.Classification{Tags: s.Tags, OwnerDomainID: owner}
	default:
		return nil, fmt.Errorf("%w: unsupported selector %T", domain.ErrValidation, sel)
	}

	if cls.OwnerDomainID != owner {
		return nil, fmt.Errorf("resource %s owned by %q, not %q: %w", sel.ResourceKey(), cls.OwnerDomainID, owner, domain.ErrNotFound)
	}

	required := domain.RequiresApproval(cls.Tags)
	next := domain.StateGrant
	if required {
		next = domain.StateRequestApproval
	}

	e.log.InfoContext(ctx, "classification resolved",
		slog.String("instance_id", inst.ID.String()),
		slog.String("resource_key", sel.ResourceKey()),
		slog.Bool("approval_required", required),
		slog.Bool("pii", cls.PII),
	)

	return e.advance(ctx, inst, next, func(c *domain.ShareContext) {
		c.Classification = cls
		c.ApprovalRequired = required
	})
}

func (e *Engine) grant(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	sel, err := inst.Context.Selector()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	c := inst.Context

	if err := e.grants.Grant(ctx, c.OwnerDomainID, c.TargetDomainID, sel); err != nil {
		return nil, err
	}

	switch sel.(type) {
	case domain.TagSelector:
		err := e.mappings.Upsert(ctx, domain.ShareMapping{
			OwnerDomainID:      c.OwnerDomainID,
			ResourceMappingKey: c.ResourceMappingKey,
			TargetDomainID:     c.TargetDomainID,
			Mode:               domain.ModeTagBased,
			Status:             domain.ShareStatusShared,
		})
		if err != nil {
			return nil, fmt.Errorf("mark tag mapping shared: %w", err)
		}
	case domain.ResourceSelector:
		// The grant service marks resource mappings itself.
	}

	return e.advance(ctx, inst, domain.StateNotifyOwningDomain, nil)
}

func (e *Engine) notifyOwningDomain(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	c := inst.Context
	ev := domain.ShareGrantedEvent{
		OwnerDomainID:  c.OwnerDomainID,
		ResourceKey:    c.ResourceMappingKey,
		TargetDomainID: c.TargetDomainID,
		OwnerNamespace: c.OwnerNamespace,
		Mode:           c.Mode,
		OccurredAt:     e.now(),
	}
	if sel, err := c.Selector(); err == nil {
		ev.ResourceKey = sel.ResourceKey()
	}

	if err := e.events.PublishShareGranted(ctx, ev); err != nil {
		e.log.WarnContext(ctx, "notify owning domain failed",
			slog.String("instance_id", inst.ID.String()),
			slog.String("owner_domain_id", c.OwnerDomainID),
			slog.String("error", err.Error()),
		)
	}

	next, err := e.advance(ctx, inst, domain.StateGranted, nil)
	if err != nil {
		return nil, err
	}
	e.log.InfoContext(ctx, "share granted",
		slog.String("instance_id", inst.ID.String()),
		slog.String("owner_domain_id", c.OwnerDomainID),
		slog.String("target_domain_id", c.TargetDomainID),
	)
	return next, nil
}

func (e *Engine) markRejected(ctx context.Context, inst *domain.WorkflowInstance) (*domain.WorkflowInstance, error) {
	next, err := e.advance(ctx, inst, domain.StateRejected, nil)
	if err != nil {
		return nil, err
	}
	e.log.InfoContext(ctx, "share rejected",
		slog.String("instance_id", inst.ID.String()),
		slog.String("owner_domain_id", inst.Context.OwnerDomainID),
		slog.String("target_domain_id", inst.Context.TargetDomainID),
	)
	return next, nil
}
