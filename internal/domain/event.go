package domain

import "time"

// ShareGrantedEvent tells an owning domain that one of its resources is now
// readable by a target domain.
type ShareGrantedEvent struct {
	OwnerDomainID  string
	ResourceKey    string
	TargetDomainID string
	OwnerNamespace string
	Mode           ApprovalMode
	OccurredAt     time.Time
}
