package approval

import (
	"strings"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// ListPendingInput selects one page of a domain's pending approvals.
type ListPendingInput struct {
	DomainID string
	Limit    int
	// Cursor is the last request id of the previous page.
	Cursor string
}

func (i ListPendingInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.DomainID) == "" {
		errs = append(errs, domain.FieldError{Field: "domainId", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Cursor != "" && !domain.IsPendingRequestID(i.Cursor) {
		errs = append(errs, domain.FieldError{Field: "cursor", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DecisionInput is a reviewer's verdict on one approval request.
type DecisionInput struct {
	OwnerDomainID string
	RequestID     string
	Action        domain.DecisionAction
}

func (i DecisionInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.OwnerDomainID) == "" {
		errs = append(errs, domain.FieldError{Field: "ownerDomainId", Message: "required"})
	}
	if strings.TrimSpace(i.RequestID) == "" {
		errs = append(errs, domain.FieldError{Field: "requestId", Message: "required"})
	}
	if !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "actionType", Message: "must be approve or reject"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ShareRequestInput asks to share an owner domain's data with a target
// domain. Exactly one of Resource and Tags must be set.
type ShareRequestInput struct {
	OwnerDomainID  string
	TargetDomainID string
	Resource       *domain.ResourceSelector
	Tags           []domain.Tag
}

// Selector returns the selector the input addresses.
func (i ShareRequestInput) Selector() (domain.Selector, error) {
	switch {
	case i.Resource != nil && len(i.Tags) > 0:
		return nil, domain.NewValidationError("selector", "resource and tags are mutually exclusive")
	case i.Resource != nil:
		return *i.Resource, nil
	case len(i.Tags) > 0:
		return domain.TagSelector{Tags: i.Tags}, nil
	default:
		return nil, domain.NewValidationError("selector", "resource or tags required")
	}
}

// ListSharesInput selects one page of an owner domain's share mappings.
type ListSharesInput struct {
	DomainID string
	Limit    int
	Offset   int
}

func (i ListSharesInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.DomainID) == "" {
		errs = append(errs, domain.FieldError{Field: "domainId", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return min(limit, MaxPageSize)
}
