package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/metrics"
)

// StartInput holds the parameters of a new share workflow.
type StartInput struct {
	OwnerDomainID  string
	TargetDomainID string
	RequestedBy    string
	Selector       domain.Selector
}

// Validate checks all fields and collects all errors.
func (i StartInput) Validate() error {
	var errs []domain.FieldError

	owner := strings.TrimSpace(i.OwnerDomainID)
	target := strings.TrimSpace(i.TargetDomainID)
	if owner == "" {
		errs = append(errs, domain.FieldError{Field: "ownerDomainId", Message: "required"})
	}
	if target == "" {
		errs = append(errs, domain.FieldError{Field: "targetDomainId", Message: "required"})
	}
	if owner != "" && owner == target {
		errs = append(errs, domain.FieldError{Field: "targetDomainId", Message: "must differ from ownerDomainId"})
	}
	if strings.Contains(target, "#") {
		errs = append(errs, domain.FieldError{Field: "targetDomainId", Message: "must not contain '#'"})
	}

	if i.Selector == nil {
		errs = append(errs, domain.FieldError{Field: "selector", Message: "resource or tags required"})
	} else if err := i.Selector.Validate(); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		} else {
			errs = append(errs, domain.FieldError{Field: "selector", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Start persists a new instance and drives it until it suspends for approval
// or terminates. A non-fatal error while driving leaves the instance in its
// last persisted state for the sweeper to pick up; the instance is still
// returned.
func (e *Engine) Start(ctx context.Context, input StartInput) (*domain.WorkflowInstance, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := e.now()
	inst := &domain.WorkflowInstance{
		ID:    uuid.New(),
		State: domain.StateDeriveOwnerNamespace,
		Context: domain.NewShareContext(
			input.Selector,
			strings.TrimSpace(input.OwnerDomainID),
			strings.TrimSpace(input.TargetDomainID),
			input.RequestedBy,
		),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.instances.Create(ctx, inst); err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	metrics.RecordShareRequest(inst.Context.Mode.String())
	e.log.InfoContext(ctx, "share workflow started",
		slog.String("instance_id", inst.ID.String()),
		slog.String("owner_domain_id", inst.Context.OwnerDomainID),
		slog.String("target_domain_id", inst.Context.TargetDomainID),
		slog.String("mode", inst.Context.Mode.String()),
	)

	driven, err := e.Run(ctx, inst.ID)
	if err != nil {
		e.log.WarnContext(ctx, "share workflow paused on error",
			slog.String("instance_id", inst.ID.String()),
			slog.String("error", err.Error()),
		)
		if driven != nil {
			return driven, nil
		}
		return inst, nil
	}
	return driven, nil
}
