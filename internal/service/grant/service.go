package grant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

type grantClient interface {
	GrantAccess(ctx context.Context, req domain.GrantRequest) error
}

type mappingRepo interface {
	Upsert(ctx context.Context, m domain.ShareMapping) error
}

// Service gives a target domain read access to an owner domain's data.
type Service struct {
	client   grantClient
	mappings mappingRepo
	log      *slog.Logger
}

// NewService creates a new grant Service.
func NewService(log *slog.Logger, client grantClient, mappings mappingRepo) *Service {
	return &Service{
		client:   client,
		mappings: mappings,
		log:      log.With("service", "grant"),
	}
}

// Grant gives targetDomainID read permissions on the data sel addresses.
//
// Resource mode issues one grant on the table (or database wildcard) and then
// marks the share mapping shared. Tag mode associates every tag with the
// target first and then grants read permissions on the tag expression; the
// tag-mode mapping is left to the caller.
func (s *Service) Grant(ctx context.Context, ownerDomainID, targetDomainID string, sel domain.Selector) error {
	principal := domain.GrantPrincipal(targetDomainID)

	switch v := sel.(type) {
	case domain.ResourceSelector:
		res := v
		if err := s.grant(ctx, domain.GrantRequest{
			Principal:   principal,
			Resource:    &res,
			Permissions: domain.ReadPermissions,
		}); err != nil {
			return err
		}

		err := s.mappings.Upsert(ctx, domain.ShareMapping{
			OwnerDomainID:      ownerDomainID,
			ResourceMappingKey: domain.MappingKey(sel, targetDomainID),
			TargetDomainID:     targetDomainID,
			Mode:               domain.ModeResourceBased,
			Status:             domain.ShareStatusShared,
		})
		if err != nil {
			return fmt.Errorf("mark mapping shared: %w", err)
		}

	case domain.TagSelector:
		for _, tag := range v.Tags {
			if err := s.grant(ctx, domain.GrantRequest{
				Principal:   principal,
				Tag:         &tag,
				Permissions: []domain.Permission{domain.PermissionAssociate},
			}); err != nil {
				return err
			}
		}
		if err := s.grant(ctx, domain.GrantRequest{
			Principal:     principal,
			TagExpression: v.Tags,
			Permissions:   domain.ReadPermissions,
		}); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: unsupported selector %T", domain.ErrGrantFailure, sel)
	}

	s.log.InfoContext(ctx, "access granted",
		slog.String("owner_domain_id", ownerDomainID),
		slog.String("target_domain_id", targetDomainID),
		slog.String("mode", sel.Mode().String()),
		slog.String("resource_key", sel.ResourceKey()),
	)
	return nil
}

func (s *Service) grant(ctx context.Context, req domain.GrantRequest) error {
	err := s.client.GrantAccess(ctx, req)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrGrantFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrGrantFailure, err)
}
