package approval

import (
	"context"
	"fmt"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/pkg/ctxutil"
)

// PendingPage is one page of pending approval requests.
type PendingPage struct {
	Items []domain.ApprovalRequest
	// NextCursor is empty on the last page.
	NextCursor string
}

// ListPending returns the pending requests of a domain the caller
// administers, oldest first.
func (s *Service) ListPending(ctx context.Context, input ListPendingInput) (*PendingPage, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if !p.Administers(input.DomainID) {
		return nil, domain.ErrForbidden
	}

	limit := pageSize(input.Limit)
	items, err := s.ledger.ListPending(ctx, input.DomainID, limit+1, input.Cursor)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	page := &PendingPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.NextCursor = page.Items[limit-1].RequestID
	}
	return page, nil
}

// PendingCount sums the pending counters of every domain the caller
// administers, or of domainID alone when it is given.
func (s *Service) PendingCount(ctx context.Context, domainID string) (int, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	domains := p.Domains
	if domainID != "" {
		if !p.Administers(domainID) {
			return 0, domain.ErrForbidden
		}
		domains = []string{domainID}
	}
	if len(domains) == 0 {
		return 0, nil
	}

	n, err := s.ledger.SumCounters(ctx, domains)
	if err != nil {
		return 0, fmt.Errorf("sum pending counters: %w", err)
	}
	return n, nil
}
